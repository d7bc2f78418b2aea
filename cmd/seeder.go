package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"document_validations", "expenses", "fiscal_rules", "income_tax_categories", "users"} {
				if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		seedUser(db, "Ana Admin", "ana@declarafacil.com.br", string(hash), "admin")
		seedUser(db, "Bruno Silva", "bruno@mail.com", string(hash), "standard")

		categories := []struct {
			Name       string
			Deductible bool
			Desc       string
		}{
			{"Saúde", true, "Despesas médicas, hospitalares e planos de saúde"},
			{"Educação", true, "Mensalidades escolares e cursos reconhecidos"},
			{"Previdência Privada", true, "Contribuições a planos PGBL"},
			{"Dependentes", true, "Gastos com dependentes declarados"},
			{"Lazer", false, "Entretenimento e recreação"},
			{"Alimentação", false, "Supermercado e refeições"},
		}

		for _, c := range categories {
			var exists int
			if err := db.Raw("SELECT 1 FROM income_tax_categories WHERE name = ?", c.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO income_tax_categories (name, deductible, description) VALUES (?, ?, ?)", c.Name, c.Deductible, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Println("Seeded category:", c.Name)
		}

		year := time.Now().Year()
		limits := map[string]string{
			"Saúde":               "8000.00",
			"Educação":            "3561.50",
			"Previdência Privada": "5000.00",
		}

		for name, limit := range limits {
			var categoryID int64
			if err := db.Raw("SELECT id FROM income_tax_categories WHERE name = ?", name).Row().Scan(&categoryID); err != nil {
				log.Fatalf("category not found after insert %s: %v", name, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM fiscal_rules WHERE fiscal_year = ? AND income_tax_category_id = ?", year, categoryID).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO fiscal_rules (fiscal_year, income_tax_category_id, annual_limit, last_updated) VALUES (?, ?, ?, now())", year, categoryID, limit).Error; err != nil {
				log.Fatalf("failed to insert fiscal rule for %s: %v", name, err)
			}
			fmt.Printf("Seeded fiscal rule: %s %d limit %s\n", name, year, limit)
		}
	},
}

func seedUser(db *gorm.DB, name, email, hash, userType string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&exists); err == nil {
		fmt.Println("user already exists:", email)
		return
	}

	if err := db.Exec("INSERT INTO users (name, email, password_hash, user_type, registered_at) VALUES (?, ?, ?, ?, now())", name, email, hash, userType).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}
