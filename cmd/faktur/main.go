package main

import (
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/faktur/cmd/faktur/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
