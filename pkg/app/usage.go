package app

import (
	"fmt"
	"io"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// Usage writes the help text.
func Usage(w io.Writer) {
	fmt.Fprint(w, `kanastudy pulls hiragana and katakana words out of reading material
and quizzes you on them.

Usage:
  kanastudy [-config FILE] <command> [flags] [args]

Commands:
  ingest [-url URL]... [FILE]...   add every new kana word found in the files and pages
  list                             print every word
  sample [-n N]                    print N random words
  define [-word W] [-type T] [-definition D]
                                   set the type and definition of a word
  add [-word W] [-type T] [-definition D]
                                   add a word
  remove [-word W]                 remove a word
  test [-word W]                   quiz yourself on a word that is due for review
  due                              list the words due for review
  fill-definitions                 fill missing definitions from the JMdict file
  fetch-dictionary                 download the JMdict file if it is missing
  help                             print this text

Word types may be given by number or name:
`)
	fmt.Fprintln(w, "  0  -> skip")
	for i, t := range vocab.WordTypes {
		fmt.Fprintf(w, "  %-2d -> %s\n", i+1, t)
	}
}
