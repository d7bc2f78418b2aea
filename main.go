package main

import "github.com/declarafacil/fiscal-tracker/cmd"

func main() {
	cmd.Execute()
}
