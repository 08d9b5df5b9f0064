package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bentancorlucia/admin-edificios/internal/catalog"
	"github.com/bentancorlucia/admin-edificios/migration"
	"github.com/bentancorlucia/admin-edificios/migration/commands"
)

func init() {
	migration.GlobalModelRegistry = catalog.ModelRegistry{}
}

func main() {
	_ = godotenv.Load()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
