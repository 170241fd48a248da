package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Adda-Baaj/shabd-relay/internal/app"
	"github.com/Adda-Baaj/shabd-relay/internal/config"
	"github.com/Adda-Baaj/shabd-relay/internal/logger"
	"github.com/Adda-Baaj/shabd-relay/pkg/httpclient"
	"github.com/Adda-Baaj/shabd-relay/pkg/urban"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "define failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("define", flag.ContinueOnError)
	index := fs.Int("index", 0, "0-based position of the definition to print")
	all := fs.Bool("all", false, "print every definition for the term")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: define [-index N] [-all] <term...> (use -- before a term that starts with -)\n")
		fs.PrintDefaults()
	}
	words, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	term := strings.Join(words, " ")
	if strings.TrimSpace(term) == "" {
		fs.Usage()
		return urban.ErrEmptyTerm
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.InitTo(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := urban.NewClient(cfg.LookupBaseURL, httpclient.NewRestyClient(cfg.LookupTimeout), log)
	return app.Define(ctx, client, app.DefineOptions{Term: term, Index: *index, All: *all}, os.Stdout)
}

// parseInterspersed accepts flags before, between or after the term words.
// Everything after "--" is taken as term words.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var tail []string
	for i, a := range args {
		if a == "--" {
			args, tail = args[:i], args[i+1:]
			break
		}
	}

	var words []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		words = append(words, args[0])
		args = args[1:]
	}
	return append(words, tail...), nil
}
