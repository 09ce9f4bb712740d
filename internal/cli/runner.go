package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tracker/internal/core"
	"tracker/internal/services"
	"tracker/internal/view"
)

// ErrUsage is returned for unknown commands and missing arguments.
var ErrUsage = errors.New("usage: tracker-cli add <name> <amount> | list | delete <index> | clear [-yes] | total")

// ClearPrompt is asked before clearing unless -yes is given.
const ClearPrompt = "Are you sure you want to clear all expenses? [y/N] "

// Runner executes one tracker-cli command against a ledger service.
type Runner struct {
	Ledger    *services.LedgerService
	Formatter view.Formatter
	In        io.Reader
	Out       io.Writer
}

// Run dispatches args, e.g. ["add", "Coffee", "3.50"].
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "add":
		return r.add(ctx, rest)
	case "list", "ls":
		return view.RenderText(r.Out, view.Build(r.Ledger.Snapshot(), r.Formatter))
	case "delete", "rm":
		return r.delete(ctx, rest)
	case "clear":
		return r.clear(ctx, rest)
	case "total":
		_, err := fmt.Fprintln(r.Out, r.Formatter.Amount(r.Ledger.Snapshot().Total()))
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}

// add takes the last argument as the amount; everything before it is the
// name, so names with spaces need no quoting.
func (r *Runner) add(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	name := strings.Join(args[:len(args)-1], " ")

	amount, err := core.ParseAmount(args[len(args)-1])
	if err != nil {
		return err
	}
	e, err := r.Ledger.Add(ctx, name, amount)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Added %s (%s)\n", e.Name, r.Formatter.Amount(e.Amount))
	return err
}

func (r *Runner) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[0], ErrUsage)
	}

	removed, ok, err := r.Ledger.DeleteAt(ctx, index)
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintf(r.Out, "No expense at index %d\n", index)
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Deleted %s (%s)\n", removed.Name, r.Formatter.Amount(removed.Amount))
	return err
}

func (r *Runner) clear(ctx context.Context, args []string) error {
	assumeYes := false
	for _, a := range args {
		switch a {
		case "-yes", "--yes", "-y":
			assumeYes = true
		default:
			return ErrUsage
		}
	}

	cleared, err := r.Ledger.ClearAll(ctx, func() bool {
		return assumeYes || r.confirm(ClearPrompt)
	})
	if err != nil {
		return err
	}
	if cleared {
		_, err = fmt.Fprintln(r.Out, "All expenses cleared")
	} else {
		_, err = fmt.Fprintln(r.Out, "Nothing cleared")
	}
	return err
}

// confirm asks question and accepts y or yes, in any case.
func (r *Runner) confirm(question string) bool {
	fmt.Fprint(r.Out, question)
	if r.In == nil {
		return false
	}
	line, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
