package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A local .env complements the shell environment; missing files are fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
