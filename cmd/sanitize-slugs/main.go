package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-contentkit/cmd/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSanitize(os.Args[1:]); err != nil {
		log.Fatalf("sanitize slugs: %v", err)
	}
}

func runSanitize(args []string) error {
	fs := flag.NewFlagSet("sanitize-slugs", flag.ExitOnError)
	opts := bootstrap.Options{}
	bootstrap.BindFlags(fs, &opts)
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Report planned renames without touching the filesystem")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	// Per-file failures are in the report; only a step that could not run fails.
	if _, err := module.Module.SanitizeSlugs(context.Background()); err != nil {
		return err
	}
	return nil
}
