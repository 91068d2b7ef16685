package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/jsvantner/minca/internal/commands"
)

func main() {
	// Optional .env for local development, ignored when absent.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
