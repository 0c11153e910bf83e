// Package app dispatches kanastudy commands against a loaded vocabulary
// store.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/japaniel/kanastudy/pkg/config"
	"github.com/japaniel/kanastudy/pkg/dictionary"
	"github.com/japaniel/kanastudy/pkg/ingest"
	"github.com/japaniel/kanastudy/pkg/vocab"
)

// Request carries the command and its arguments. Type and Definition are nil
// when the user did not supply them and should be asked.
type Request struct {
	Command    Command
	Paths      []string
	URLs       []string
	Word       string
	Type       *string
	Definition *string
	N          int
}

// App holds everything a command needs. The caller loads Store before Run
// and saves it afterwards when the command mutates it.
type App struct {
	Config     *config.Config
	Store      *vocab.Store
	Out        io.Writer
	Prompter   Prompter
	Logger     *slog.Logger
	Now        func() time.Time
	Rand       *rand.Rand
	Suggester  dictionary.TypeSuggester
	Fetcher    ingest.PageFetcher
	Downloader *dictionary.Downloader
}

// New returns an App with the default clock and a randomly seeded source.
func New(cfg *config.Config, store *vocab.Store, out io.Writer, prompter Prompter, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		Config:   cfg,
		Store:    store,
		Out:      out,
		Prompter: prompter,
		Logger:   logger,
		Now:      time.Now,
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run performs req.Command.
func (a *App) Run(ctx context.Context, req Request) error {
	if req.Command.NeedsStore() && a.Store == nil {
		return errors.New("store not loaded")
	}
	a.Logger.Debug("running command", "command", req.Command)

	switch req.Command {
	case CommandIngest:
		return a.ingest(ctx, req)
	case CommandList:
		return a.list()
	case CommandSample:
		return a.sample(req)
	case CommandDefine:
		return a.define(req)
	case CommandAdd:
		return a.add(req)
	case CommandRemove:
		return a.remove(req)
	case CommandTest:
		return a.test(req)
	case CommandDue:
		return a.due()
	case CommandFillDefinitions:
		return a.fillDefinitions()
	case CommandFetchDictionary:
		return a.fetchDictionary(ctx)
	case CommandHelp:
		Usage(a.Out)
		return nil
	}
	return fmt.Errorf("unknown command %q: %w", req.Command, ErrInvalidInput)
}

func (a *App) ingest(ctx context.Context, req Request) error {
	if len(req.Paths) == 0 && len(req.URLs) == 0 {
		return fmt.Errorf("no file or url given: %w", ErrInvalidInput)
	}
	ig := ingest.NewIngester(a.Logger, a.Fetcher)
	ig.Now = a.Now
	ig.Workers = a.Config.Fetch.Workers
	ig.OnProgress = func(current, total int) {
		a.Logger.Info("source processed", "current", current, "total", total)
	}

	texts, err := ig.Load(ctx, req.Paths, req.URLs)
	if err != nil {
		return err
	}
	res, err := ig.Ingest(ctx, a.Store, texts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Added %d new words from %d sources (%d words in list)\n", res.Added, res.Sources, a.Store.Len())
	return nil
}

func (a *App) list() error {
	for _, w := range a.Store.Words() {
		fmt.Fprintln(a.Out, w)
	}
	return nil
}

func (a *App) sample(req Request) error {
	n := req.N
	if n <= 0 {
		n = a.Config.Study.SampleSize
	}
	entries, err := a.Store.Sample(n, a.Rand)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(a.Out, e.Word)
	}
	return nil
}

func (a *App) define(req Request) error {
	word := req.Word
	if word == "" {
		var err error
		if word, err = askWord(a.Prompter, "Please enter the word you'd like to define:"); err != nil {
			return err
		}
	}
	if !a.Store.Contains(word) {
		return fmt.Errorf("%q: %w", word, vocab.ErrNotFound)
	}
	fmt.Fprintln(a.Out, "I found the word! Let's add some definition to it!")
	return a.setMetadata(word, req)
}

func (a *App) add(req Request) error {
	word := req.Word
	if word == "" {
		var err error
		if word, err = askWord(a.Prompter, "What word would you like to add?"); err != nil {
			return err
		}
	}
	if err := a.Store.Add(word, a.Now()); err != nil {
		return err
	}
	return a.setMetadata(word, req)
}

// setMetadata resolves the type and definition from req, asking for what is
// missing, and stores them on word.
func (a *App) setMetadata(word string, req Request) error {
	var (
		typ vocab.WordType
		err error
	)
	if req.Type != nil {
		typ, err = parseWordType(*req.Type)
	} else {
		typ, err = askWordType(a.Prompter, a.Out, a.suggest(word))
	}
	if err != nil {
		return err
	}

	var def string
	if req.Definition != nil {
		def = *req.Definition
	} else if def, err = askDefinition(a.Prompter); err != nil {
		return err
	}

	if err := a.Store.SetMetadata(word, typ, def); err != nil {
		return err
	}
	a.Logger.Info("metadata set", "word", word, "type", typ)
	return nil
}

func (a *App) suggest(word string) vocab.WordType {
	if a.Suggester == nil {
		return vocab.WordTypeNone
	}
	return a.Suggester.Suggest(word)
}

func (a *App) remove(req Request) error {
	word := req.Word
	if word == "" {
		var err error
		if word, err = askWord(a.Prompter, "What word would you like to remove?"); err != nil {
			return err
		}
	}
	if err := a.Store.Remove(word); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "Successfully removed the word!")
	return nil
}

func (a *App) test(req Request) error {
	now := a.Now()
	a.Store.RecomputeDue(now)

	var (
		entry vocab.Entry
		err   error
	)
	if req.Word != "" {
		entry, err = a.Store.Get(req.Word)
	} else {
		entry, err = a.Store.PickDue(a.Rand)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out, "Here is a test!")
	fmt.Fprintf(a.Out, "What is %s ?\n", entry.Word)
	if _, err := a.Prompter.Prompt(""); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	def := entry.Definition
	if def == "" {
		def = "No Definition"
	}
	fmt.Fprintf(a.Out, "\nThe answer is:\n%s\n", def)

	correct, err := askYesNo(a.Prompter, "Did you get it right? (y/n)")
	if err != nil {
		return err
	}
	graduated, err := a.Store.RecordOutcome(entry.Word, correct, now)
	if err != nil {
		return err
	}
	if graduated {
		updated, err := a.Store.Get(entry.Word)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Well done! Next review of %s on %s\n", updated.Word, updated.Review.NextReview.Local().Format(time.DateTime))
	}
	a.Logger.Info("recall recorded", "word", entry.Word, "correct", correct, "graduated", graduated)
	return nil
}

func (a *App) due() error {
	n := a.Store.RecomputeDue(a.Now())
	fmt.Fprintf(a.Out, "%d words due for review\n", n)
	for _, e := range a.Store.Due() {
		fmt.Fprintln(a.Out, e.Word)
	}
	return nil
}

func (a *App) fillDefinitions() error {
	path := a.Config.Dictionary.Path
	entries, err := dictionary.LoadJMdictSimplified(path)
	if err != nil {
		return fmt.Errorf("load dictionary %s (try %s): %w", path, CommandFetchDictionary, err)
	}
	a.Logger.Info("dictionary loaded", "path", path, "entries", len(entries))

	res := dictionary.NewImporter(entries, a.Logger).FillDefinitions(a.Store, a.Suggester)
	fmt.Fprintf(a.Out, "Filled %d definitions and %d word types\n", res.Definitions, res.Types)
	return nil
}

func (a *App) fetchDictionary(ctx context.Context) error {
	d := a.Downloader
	if d == nil {
		d = dictionary.NewDownloader(a.Logger)
	}
	path := a.Config.Dictionary.Path
	downloaded, err := d.EnsureDictionary(ctx, path)
	if err != nil {
		return err
	}
	if downloaded {
		fmt.Fprintf(a.Out, "Downloaded dictionary to %s\n", path)
	} else {
		fmt.Fprintf(a.Out, "Dictionary already present at %s\n", path)
	}
	return nil
}
