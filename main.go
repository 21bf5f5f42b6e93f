package main

import (
	"github.com/joho/godotenv"

	"github.com/guardianshield/shieldplan/cmd"
	_ "github.com/guardianshield/shieldplan/internal/store/postgres"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()
	cmd.Execute()
}
