package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	contentkit "github.com/goliatone/go-contentkit"
	"github.com/goliatone/go-contentkit/cmd/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

var errContentInvalid = errors.New("content tree has violations")

func main() {
	if err := runVerify(os.Args[1:]); err != nil {
		log.Fatalf("verify content: %v", err)
	}
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify-content", flag.ExitOnError)
	opts := bootstrap.Options{}
	bootstrap.BindFlags(fs, &opts)

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	report, err := module.Module.VerifyContent(context.Background())
	if err != nil {
		return err
	}
	if !contentkit.Clean(report) {
		return errContentInvalid
	}
	return nil
}
