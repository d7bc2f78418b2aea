package dashboard

import (
	"log/slog"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

const recentLimit = 6

type RepositoryAPI interface {
	SumByTransactionType(userID int64, txType expense.TransactionType) (decimal.Decimal, error)
	SumByDateRange(userID int64, from, to time.Time) (decimal.Decimal, error)
	RecentExpenses(userID int64, limit int) ([]RecentExpense, error)
	RecentRuleUpdates(limit int) ([]RecentRuleUpdate, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// BuildSummary assembles the dashboard block for one user: lifetime
// credit/debit sums, spend over the trailing and upcoming thirty days, the
// six latest movements and the six latest rule changes.
func (s *Service) BuildSummary(userID int64) (*Summary, error) {
	creditSum, err := s.repo.SumByTransactionType(userID, expense.TransactionCredit)
	if err != nil {
		s.logger.Error("failed to sum credits", "error", err, "user_id", userID)
		return nil, err
	}

	debitSum, err := s.repo.SumByTransactionType(userID, expense.TransactionDebit)
	if err != nil {
		s.logger.Error("failed to sum debits", "error", err, "user_id", userID)
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	last30, err := s.repo.SumByDateRange(userID, today.AddDate(0, 0, -30), today)
	if err != nil {
		s.logger.Error("failed to sum last 30 days", "error", err, "user_id", userID)
		return nil, err
	}

	next30, err := s.repo.SumByDateRange(userID, today, today.AddDate(0, 0, 30))
	if err != nil {
		s.logger.Error("failed to sum next 30 days", "error", err, "user_id", userID)
		return nil, err
	}

	recentExpenses, err := s.repo.RecentExpenses(userID, recentLimit)
	if err != nil {
		s.logger.Error("failed to load recent expenses", "error", err, "user_id", userID)
		return nil, err
	}

	ruleUpdates, err := s.repo.RecentRuleUpdates(recentLimit)
	if err != nil {
		s.logger.Error("failed to load recent rule updates", "error", err)
		return nil, err
	}

	return &Summary{
		KPIs: KPIs{
			CreditSum:     creditSum,
			DebitSum:      debitSum,
			Last30DaysSum: last30,
			Next30DaysSum: next30,
		},
		RecentExpenses:    recentExpenses,
		RecentRuleUpdates: ruleUpdates,
	}, nil
}
