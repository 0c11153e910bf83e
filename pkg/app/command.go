package app

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for unusable user input: an unknown command,
// an empty word, an unrecognised word type or answer.
var ErrInvalidInput = errors.New("invalid input")

// Command selects the operation Run performs.
type Command string

const (
	CommandIngest          Command = "ingest"
	CommandList            Command = "list"
	CommandSample          Command = "sample"
	CommandDefine          Command = "define"
	CommandAdd             Command = "add"
	CommandRemove          Command = "remove"
	CommandTest            Command = "test"
	CommandDue             Command = "due"
	CommandFillDefinitions Command = "fill-definitions"
	CommandFetchDictionary Command = "fetch-dictionary"
	CommandHelp            Command = "help"
)

// Commands lists every command in help order.
var Commands = []Command{
	CommandIngest,
	CommandList,
	CommandSample,
	CommandDefine,
	CommandAdd,
	CommandRemove,
	CommandTest,
	CommandDue,
	CommandFillDefinitions,
	CommandFetchDictionary,
	CommandHelp,
}

// Older flag-style spellings still accepted on the command line.
var commandAliases = map[string]Command{
	"-h":             CommandHelp,
	"--help":         CommandHelp,
	"-pa":            CommandList,
	"--print-all":    CommandList,
	"-pr":            CommandSample,
	"--print-random": CommandSample,
	"-s":             CommandDefine,
	"--set-meaning":  CommandDefine,
	"-aw":            CommandAdd,
	"--add-word":     CommandAdd,
	"-rw":            CommandRemove,
	"--remove-word":  CommandRemove,
	"-t":             CommandTest,
	"--test":         CommandTest,
}

// ParseCommand resolves a command name or one of its aliases.
func ParseCommand(s string) (Command, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Commands {
		if string(c) == name {
			return c, nil
		}
	}
	if c, ok := commandAliases[name]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown command %q: %w", s, ErrInvalidInput)
}

// Mutates reports whether the command changes the store and must save it.
func (c Command) Mutates() bool {
	switch c {
	case CommandIngest, CommandDefine, CommandAdd, CommandRemove,
		CommandTest, CommandDue, CommandFillDefinitions:
		return true
	}
	return false
}

// NeedsStore reports whether the command operates on the vocabulary.
func (c Command) NeedsStore() bool {
	return c != CommandHelp && c != CommandFetchDictionary
}

// NeedsSuggester reports whether the command uses word-type suggestions.
func (c Command) NeedsSuggester() bool {
	return c == CommandDefine || c == CommandAdd || c == CommandFillDefinitions
}
