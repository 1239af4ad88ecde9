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
	if err := runOrganize(os.Args[1:]); err != nil {
		log.Fatalf("organize blogs: %v", err)
	}
}

func runOrganize(args []string) error {
	fs := flag.NewFlagSet("organize-blogs", flag.ExitOnError)
	opts := bootstrap.Options{}
	bootstrap.BindFlags(fs, &opts)
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Report planned moves without touching the filesystem")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	_, err = module.Module.OrganizeBlog(context.Background())
	return err
}
