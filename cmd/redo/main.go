// Package main is the entry point for the redo build tool.
//
// The same binary serves redo, redo-ifchange and redo-ifcreate; the name it
// is invoked under selects the mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/cmd/redo/commands"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/core/domain"
	_ "go.trai.ch/redo/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:]))
}

func run(program string, args []string) int {
	mode, err := domain.ParseCommand(program)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if closeErr := components.App.Close(); closeErr != nil {
			components.Logger.Error(closeErr)
		}
	}()

	cli := commands.New(components.App, mode)
	cli.SetVerboseHook(func() { commands.EnableDebug(components.Logger) })
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrNoTargetsSpecified) {
			_, _ = fmt.Fprintln(os.Stderr, cli.Usage())
			return 2
		}
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		if errors.Is(err, domain.ErrNoRecipe) {
			return 2
		}
		return 1
	}
	return 0
}
