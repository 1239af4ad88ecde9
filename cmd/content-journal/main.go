package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/cmd/internal/bootstrap"
	"github.com/goliatone/go-contentkit/internal/journal"
)

var moduleBuilder = bootstrap.BuildModule

var stdout io.Writer = os.Stdout

var errJournalDisabled = errors.New("no journal configured; pass -journal or set journal.dsn")

func main() {
	if err := runJournal(os.Args[1:]); err != nil {
		log.Fatalf("content journal: %v", err)
	}
}

func runJournal(args []string) error {
	fs := flag.NewFlagSet("content-journal", flag.ExitOnError)
	opts := bootstrap.Options{}
	bootstrap.BindFlags(fs, &opts)
	limit := fs.Int("limit", 20, "Number of recent runs to list")
	runID := fs.String("run", "", "Run id whose outcomes should be listed")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	repo := module.Module.Journal()
	if repo == nil {
		return errJournalDisabled
	}

	ctx := context.Background()
	if *runID != "" {
		id, err := uuid.Parse(*runID)
		if err != nil {
			return fmt.Errorf("parse run: %w", err)
		}
		return printOutcomes(ctx, repo, id)
	}
	return printRuns(ctx, repo, *limit)
}

func printRuns(ctx context.Context, repo journal.Repository, limit int) error {
	runs, err := repo.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEP\tSTARTED\tOUTCOMES\tCHANGED\tFAILED\tDRY RUN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%t\n",
			run.ID, run.Step, run.StartedAt.Format(time.RFC3339),
			run.Outcomes, run.Changed, run.Failed, run.DryRun)
	}
	return w.Flush()
}

func printOutcomes(ctx context.Context, repo journal.Repository, id uuid.UUID) error {
	entries, err := repo.Outcomes(ctx, id)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTATUS\tREASON\tPATH\tTARGET\tDETAIL")
	for _, entry := range entries {
		detail := entry.Outcome.Detail
		if entry.Error != "" {
			detail = entry.Error
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			entry.Sequence, entry.Outcome.Status, entry.Outcome.Reason,
			entry.Outcome.Path, entry.Outcome.Target, detail)
	}
	return w.Flush()
}
