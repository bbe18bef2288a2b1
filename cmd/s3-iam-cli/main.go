// cmd/s3-iam-cli/main.go
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"s3-iam-cli/cmd"
	"s3-iam-cli/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️  failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Dispatch(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err == nil || errors.Is(err, cli.ErrHelp) {
		return
	}
	cmd.Report(os.Stdout, err)
	os.Exit(1)
}
