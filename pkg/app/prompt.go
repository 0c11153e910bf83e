package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// Prompter asks the user one question and returns the line they typed,
// without the trailing newline.
type Prompter interface {
	Prompt(question string) (string, error)
}

// LinePrompter reads answers line by line from r and writes questions to w.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter returns a Prompter over r and w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Prompt writes question, if any, and reads one line. A final line without
// a newline is returned as is; io.EOF is returned only when nothing was read.
func (p *LinePrompter) Prompt(question string) (string, error) {
	if question != "" {
		fmt.Fprintln(p.w, question)
	}
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// askWord prompts for a word and rejects blank answers.
func askWord(p Prompter, question string) (string, error) {
	answer, err := p.Prompt(question)
	if err != nil {
		return "", err
	}
	word := strings.TrimSpace(answer)
	if word == "" {
		return "", fmt.Errorf("no word entered: %w", ErrInvalidInput)
	}
	return word, nil
}

// askWordType shows the type menu and reads a number or name. A blank answer
// takes suggested, which may be WordTypeNone.
func askWordType(p Prompter, out io.Writer, suggested vocab.WordType) (vocab.WordType, error) {
	fmt.Fprintln(out, "What type of word is it?")
	fmt.Fprintln(out, "Please enter the corresponding number, or 0 to skip")
	for i, t := range vocab.WordTypes {
		fmt.Fprintf(out, "%-2d -> %s\n", i+1, t)
	}
	question := ""
	if suggested != vocab.WordTypeNone {
		question = fmt.Sprintf("Press enter for %s", suggested)
	}
	answer, err := p.Prompt(question)
	if err != nil {
		return vocab.WordTypeNone, err
	}
	if strings.TrimSpace(answer) == "" {
		return suggested, nil
	}
	return parseWordType(answer)
}

// parseWordType accepts a menu number or a type name. Out-of-range numbers
// leave the entry unclassified; anything else is invalid.
func parseWordType(s string) (vocab.WordType, error) {
	if strings.TrimSpace(s) == "" {
		return vocab.WordTypeNone, nil
	}
	t, ok := vocab.ParseWordType(s)
	if !ok {
		return vocab.WordTypeNone, fmt.Errorf("word type %q: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// askDefinition reads a one-line definition. Blank means no definition.
func askDefinition(p Prompter) (string, error) {
	answer, err := p.Prompt("Alright, what does this word mean?")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// askYesNo reads a y/n answer.
func askYesNo(p Prompter, question string) (bool, error) {
	answer, err := p.Prompt(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("answer %q: %w", answer, ErrInvalidInput)
}
