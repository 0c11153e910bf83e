package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/japaniel/kanastudy/pkg/app"
	"github.com/japaniel/kanastudy/pkg/article"
	"github.com/japaniel/kanastudy/pkg/config"
	"github.com/japaniel/kanastudy/pkg/db"
	"github.com/japaniel/kanastudy/pkg/dictionary"
	"github.com/japaniel/kanastudy/pkg/vocab"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// optionalString is a flag that remembers whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	return &o.value
}

// stringList collects a repeatable flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("kanastudy", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Path to YAML config (default $KANASTUDY_CONFIG or ./kanastudy.yaml)")
	global.Usage = func() { app.Usage(stderr) }

	// Flag-style command aliases (-pa, --test) come first and must not be
	// taken for global flags.
	rest := args
	if len(args) == 0 || !isCommand(args[0]) {
		if err := global.Parse(args); err != nil {
			return 1
		}
		rest = global.Args()
	}
	if len(rest) == 0 {
		fmt.Fprintln(stderr, "Not enough args. Try kanastudy help to learn about kanastudy.")
		return 1
	}

	cmd, err := app.ParseCommand(rest[0])
	if err != nil {
		fmt.Fprintln(stderr, err)
		app.Usage(stderr)
		return 1
	}
	req, err := parseRequest(cmd, rest[1:], stderr)
	if err != nil {
		return 1
	}
	if cmd == app.CommandHelp {
		app.Usage(stdout)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		repo  db.Repository
		store *vocab.Store
	)
	if cmd.NeedsStore() {
		repo, err = db.Open(cfg.Store.Backend, cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "error", err)
			return 1
		}
		defer repo.Close()

		store, err = db.LoadStore(repo)
		if err != nil {
			logger.Error("failed to load store", "path", cfg.Store.Path, "error", err)
			return 1
		}
		logger.Debug("store loaded", "path", cfg.Store.Path, "words", store.Len())
	}

	a := app.New(cfg, store, stdout, app.NewLinePrompter(stdin, stdout), logger)
	a.Fetcher = article.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.MaxBodyBytes)
	a.Downloader = dictionary.NewDownloader(logger)
	if cmd.NeedsSuggester() {
		tagger, err := dictionary.NewTagger()
		if err != nil {
			logger.Warn("word type suggestions unavailable", "error", err)
		} else {
			a.Suggester = tagger
		}
	}

	if err := a.Run(ctx, req); err != nil {
		report(stderr, logger, cmd, err)
		return 1
	}

	if cmd.Mutates() {
		if err := db.SaveStore(repo, store); err != nil {
			logger.Error("failed to save store", "path", cfg.Store.Path, "error", err)
			return 1
		}
		logger.Debug("store saved", "path", cfg.Store.Path, "words", store.Len())
	}
	return 0
}

func isCommand(s string) bool {
	_, err := app.ParseCommand(s)
	return err == nil
}

// parseRequest reads the flags of one command.
func parseRequest(cmd app.Command, args []string, stderr io.Writer) (app.Request, error) {
	req := app.Request{Command: cmd}
	fs := flag.NewFlagSet(string(cmd), flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		urls       stringList
		word       string
		typ        optionalString
		definition optionalString
	)
	switch cmd {
	case app.CommandIngest:
		fs.Var(&urls, "url", "URL of a page to ingest (repeatable)")
	case app.CommandSample:
		fs.IntVar(&req.N, "n", 0, "Number of words to print (default study.sample_size)")
	case app.CommandDefine, app.CommandAdd:
		fs.StringVar(&word, "word", "", "Word to change")
		fs.Var(&typ, "type", "Word type, by number (0 to skip) or name")
		fs.Var(&definition, "definition", "Definition text")
	case app.CommandRemove, app.CommandTest:
		fs.StringVar(&word, "word", "", "Word to use instead of asking or picking")
	}
	if err := fs.Parse(args); err != nil {
		return req, err
	}

	req.Paths = fs.Args()
	req.URLs = urls
	req.Word = strings.TrimSpace(word)
	req.Type = typ.ptr()
	req.Definition = definition.ptr()
	return req, nil
}

// report prints expected failures as plain messages and logs the rest.
func report(stderr io.Writer, logger *slog.Logger, cmd app.Command, err error) {
	switch {
	case errors.Is(err, vocab.ErrNotFound):
		fmt.Fprintf(stderr, "Could not find that word! (%v)\n", err)
	case errors.Is(err, vocab.ErrAlreadyExists):
		fmt.Fprintf(stderr, "Sorry, that word is already in the list! (%v)\n", err)
	case errors.Is(err, vocab.ErrEmptyStore):
		fmt.Fprintln(stderr, "No words available. Ingest some text first, or wait until a word is due.")
	case errors.Is(err, app.ErrInvalidInput):
		fmt.Fprintln(stderr, err)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted.")
	default:
		logger.Error("command failed", "command", cmd, "error", err)
	}
}
