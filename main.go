package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/pdf2md/cmd/inspect"
	"fjacquet/pdf2md/cmd/root"
	"fjacquet/pdf2md/cmd/validate"
	"fjacquet/pdf2md/internal/config"
)

func init() {
	// 1. Load .env before viper reads the environment
	config.LoadEnv()

	// 2. Register persistent flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(inspect.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cobra already reported the error on stderr; stdout stays reserved for the result.
	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
