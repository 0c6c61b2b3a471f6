package main

import (
	"context"
	"os"

	"github.com/agbru/revfile/internal/app"
	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/pool"
)

func main() {
	// Process-pool workers re-execute this binary with a hidden sub-command.
	if pool.IsWorkerInvocation(os.Args) {
		os.Exit(pool.RunWorker(os.Args[2:], os.Stderr))
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
