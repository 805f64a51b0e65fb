package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BartekS5/odevalidator/internal/cli"
	"github.com/BartekS5/odevalidator/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := cli.NewRootCmd()
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, cli.ErrInvalidRecords) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
