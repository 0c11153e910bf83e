package app

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/kanastudy/pkg/config"
	"github.com/japaniel/kanastudy/pkg/review"
	"github.com/japaniel/kanastudy/pkg/vocab"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

// scriptedPrompter answers questions from a fixed list and records them.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Prompt(question string) (string, error) {
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type fixedSuggester vocab.WordType

func (f fixedSuggester) Suggest(string) vocab.WordType { return vocab.WordType(f) }

func testConfig() *config.Config {
	return &config.Config{
		Store:      config.StoreConfig{Backend: "json", Path: "unused.json"},
		Log:        config.LogConfig{Level: "info", Format: "text"},
		Dictionary: config.DictionaryConfig{Path: "missing-dictionary.json"},
		Fetch:      config.FetchConfig{Timeout: time.Second, MaxBodyBytes: 1024, Workers: 2},
		Study:      config.StudyConfig{SampleSize: 2},
	}
}

func newTestApp(t *testing.T, words []string, answers ...string) (*App, *bytes.Buffer, *scriptedPrompter) {
	t.Helper()
	store := vocab.NewStore()
	store.Merge(words, testNow)
	out := &bytes.Buffer{}
	p := &scriptedPrompter{answers: answers}
	a := New(testConfig(), store, out, p, nil)
	a.Now = func() time.Time { return testNow }
	a.Rand = rand.New(rand.NewPCG(1, 2))
	return a, out, p
}

func ptr(s string) *string { return &s }

func outputLines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestRunList(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"ねこ", "いぬ", "テレビ"})
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandList}))
	assert.Equal(t, []string{"いぬ", "ねこ", "テレビ"}, outputLines(out))
}

func TestRunSample(t *testing.T) {
	words := []string{"あめ", "いぬ", "うみ", "えき", "おか"}

	t.Run("configured size", func(t *testing.T) {
		a, out, _ := newTestApp(t, words)
		require.NoError(t, a.Run(context.Background(), Request{Command: CommandSample}))
		lines := outputLines(out)
		assert.Len(t, lines, 2)
		assert.NotEqual(t, lines[0], lines[1])
		assert.Subset(t, words, lines)
	})

	t.Run("more than the store holds", func(t *testing.T) {
		a, out, _ := newTestApp(t, words)
		require.NoError(t, a.Run(context.Background(), Request{Command: CommandSample, N: 50}))
		assert.ElementsMatch(t, words, outputLines(out))
	})

	t.Run("empty store", func(t *testing.T) {
		a, _, _ := newTestApp(t, nil)
		err := a.Run(context.Background(), Request{Command: CommandSample, N: 3})
		assert.ErrorIs(t, err, vocab.ErrEmptyStore)
	})
}

func TestRunDefineWithFlags(t *testing.T) {
	a, _, p := newTestApp(t, []string{"ねこ"})
	err := a.Run(context.Background(), Request{
		Command:    CommandDefine,
		Word:       "ねこ",
		Type:       ptr("1"),
		Definition: ptr("  cat \n"),
	})
	require.NoError(t, err)
	assert.Empty(t, p.asked)

	e, err := a.Store.Get("ねこ")
	require.NoError(t, err)
	assert.Equal(t, vocab.WordTypeNoun, e.Type)
	assert.Equal(t, "cat", e.Definition)
}

func TestRunDefinePrompts(t *testing.T) {
	a, out, p := newTestApp(t, []string{"はしる"}, "はしる", "", "to run")
	a.Suggester = fixedSuggester(vocab.WordTypeVerb)

	require.NoError(t, a.Run(context.Background(), Request{Command: CommandDefine}))
	assert.Contains(t, out.String(), "12 -> phrase")
	assert.Contains(t, p.asked, "Press enter for verb")

	e, err := a.Store.Get("はしる")
	require.NoError(t, err)
	assert.Equal(t, vocab.WordTypeVerb, e.Type)
	assert.Equal(t, "to run", e.Definition)
}

func TestRunDefineTypeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    vocab.WordType
		wantErr bool
	}{
		{"number", "3", vocab.WordTypeVerb, false},
		{"name", "Adverb", vocab.WordTypeAdverb, false},
		{"zero skips", "0", vocab.WordTypeNone, false},
		{"out of range", "13", vocab.WordTypeNone, false},
		{"garbage", "banana", vocab.WordTypeNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t, []string{"ねこ"})
			require.NoError(t, a.Store.SetMetadata("ねこ", vocab.WordTypeNoun, "cat"))

			err := a.Run(context.Background(), Request{Command: CommandDefine, Word: "ねこ", Type: ptr(tt.input), Definition: ptr("kitty")})
			e, getErr := a.Store.Get("ねこ")
			require.NoError(t, getErr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Equal(t, vocab.WordTypeNoun, e.Type)
				assert.Equal(t, "cat", e.Definition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Type)
			assert.Equal(t, "kitty", e.Definition)
		})
	}
}

func TestRunDefineErrors(t *testing.T) {
	a, _, _ := newTestApp(t, []string{"ねこ"}, "   ")
	assert.ErrorIs(t, a.Run(context.Background(), Request{Command: CommandDefine}), ErrInvalidInput)

	a, _, p := newTestApp(t, []string{"ねこ"})
	err := a.Run(context.Background(), Request{Command: CommandDefine, Word: "いぬ"})
	assert.ErrorIs(t, err, vocab.ErrNotFound)
	assert.Empty(t, p.asked)
}

func TestRunAdd(t *testing.T) {
	a, _, _ := newTestApp(t, []string{"ねこ"}, "ラーメン", "1", "ramen")
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandAdd}))

	e, err := a.Store.Get("ラーメン")
	require.NoError(t, err)
	assert.Equal(t, vocab.WordTypeNoun, e.Type)
	assert.Equal(t, "ramen", e.Definition)
	assert.True(t, e.Review.Due)
	assert.Equal(t, []string{"ねこ", "ラーメン"}, a.Store.Words())

	err = a.Run(context.Background(), Request{Command: CommandAdd, Word: "ねこ"})
	assert.ErrorIs(t, err, vocab.ErrAlreadyExists)
}

func TestRunRemove(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"いぬ", "ねこ"}, "ねこ")
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandRemove}))
	assert.Equal(t, []string{"いぬ"}, a.Store.Words())
	assert.Contains(t, out.String(), "removed")

	err := a.Run(context.Background(), Request{Command: CommandRemove, Word: "ねこ"})
	assert.ErrorIs(t, err, vocab.ErrNotFound)
	assert.Equal(t, []string{"いぬ"}, a.Store.Words())
}

func TestRunTestGraduatesOnThirdCorrect(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"ねこ"}, "", "y", "", "n", "", "yes", "", "y")
	require.NoError(t, a.Store.SetMetadata("ねこ", vocab.WordTypeNoun, "cat"))

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Run(context.Background(), Request{Command: CommandTest}))
	}
	e, err := a.Store.Get("ねこ")
	require.NoError(t, err)
	assert.Equal(t, review.StreakTwo, e.Review.Streak)
	assert.True(t, e.Review.Due)
	assert.NotContains(t, out.String(), "Well done")

	require.NoError(t, a.Run(context.Background(), Request{Command: CommandTest}))
	e, err = a.Store.Get("ねこ")
	require.NoError(t, err)
	assert.Equal(t, review.StreakThreePlus, e.Review.Streak)
	assert.Equal(t, review.RungOneDay, e.Review.Rung)
	assert.Equal(t, testNow.Add(3*time.Hour), e.Review.NextReview)
	assert.False(t, e.Review.Due)
	assert.Contains(t, out.String(), "What is ねこ ?")
	assert.Contains(t, out.String(), "The answer is:\ncat")
	assert.Contains(t, out.String(), "Well done")

	// Nothing left to review.
	err = a.Run(context.Background(), Request{Command: CommandTest})
	assert.ErrorIs(t, err, vocab.ErrEmptyStore)
}

func TestRunTestTargetedAndNoDefinition(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"いぬ", "ねこ"}, "", "n")
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandTest, Word: "いぬ"}))
	assert.Contains(t, out.String(), "What is いぬ ?")
	assert.Contains(t, out.String(), "No Definition")

	err := a.Run(context.Background(), Request{Command: CommandTest, Word: "うま"})
	assert.ErrorIs(t, err, vocab.ErrNotFound)
}

func TestRunTestErrors(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	assert.ErrorIs(t, a.Run(context.Background(), Request{Command: CommandTest}), vocab.ErrEmptyStore)

	a, _, _ = newTestApp(t, []string{"ねこ"}, "", "maybe")
	assert.ErrorIs(t, a.Run(context.Background(), Request{Command: CommandTest}), ErrInvalidInput)
	e, err := a.Store.Get("ねこ")
	require.NoError(t, err)
	assert.Equal(t, review.StreakZero, e.Review.Streak)
}

func TestRunDue(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"いぬ", "ねこ"}, "", "y", "", "y", "", "y")
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Run(context.Background(), Request{Command: CommandTest, Word: "ねこ"}))
	}
	out.Reset()

	require.NoError(t, a.Run(context.Background(), Request{Command: CommandDue}))
	assert.Equal(t, []string{"1 words due for review", "いぬ"}, outputLines(out))

	out.Reset()
	a.Now = func() time.Time { return testNow.Add(3 * time.Hour) }
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandDue}))
	assert.Equal(t, []string{"2 words due for review", "いぬ", "ねこ"}, outputLines(out))
}

func TestRunIngest(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.txt")
	p2 := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(p1, []byte("ねこがすき。テレビ"), 0o644))
	require.NoError(t, os.WriteFile(p2, []byte("ゲーム、ねこ。"), 0o644))

	a, out, _ := newTestApp(t, []string{"ねこ"})
	require.NoError(t, a.Store.SetMetadata("ねこ", vocab.WordTypeNoun, "cat"))

	require.NoError(t, a.Run(context.Background(), Request{Command: CommandIngest, Paths: []string{p1, p2}}))
	assert.Equal(t, []string{"ねこ", "ねこがすき", "テレビゲーム"}, a.Store.Words())
	assert.Contains(t, out.String(), "Added 2 new words from 2 sources")

	e, err := a.Store.Get("ねこ")
	require.NoError(t, err)
	assert.Equal(t, "cat", e.Definition)

	err = a.Run(context.Background(), Request{Command: CommandIngest})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunFillDefinitions(t *testing.T) {
	a, out, _ := newTestApp(t, []string{"いぬ", "みち"})
	err := a.Run(context.Background(), Request{Command: CommandFillDefinitions})
	assert.ErrorContains(t, err, "fetch-dictionary")

	path := filepath.Join(t.TempDir(), "jmdict.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"words":[{"id":"1","kanji":[{"text":"犬"}],"kana":[{"text":"いぬ"}],"sense":[{"gloss":[{"text":"dog"}]}]}]}`), 0o644))
	a.Config.Dictionary.Path = path
	a.Suggester = fixedSuggester(vocab.WordTypeNoun)

	require.NoError(t, a.Run(context.Background(), Request{Command: CommandFillDefinitions}))
	assert.Contains(t, out.String(), "Filled 1 definitions and 2 word types")

	e, err := a.Store.Get("いぬ")
	require.NoError(t, err)
	assert.Equal(t, "dog", e.Definition)
	assert.Equal(t, vocab.WordTypeNoun, e.Type)
}

func TestRunFetchDictionaryPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jmdict.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	a := New(testConfig(), nil, &bytes.Buffer{}, nil, nil)
	a.Config.Dictionary.Path = path
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandFetchDictionary}))
	assert.Contains(t, a.Out.(*bytes.Buffer).String(), "already present")
}

func TestRunHelpAndStoreCheck(t *testing.T) {
	out := &bytes.Buffer{}
	a := New(testConfig(), nil, out, nil, nil)
	require.NoError(t, a.Run(context.Background(), Request{Command: CommandHelp}))
	assert.Contains(t, out.String(), "fill-definitions")
	assert.Contains(t, out.String(), "12 -> phrase")

	assert.Error(t, a.Run(context.Background(), Request{Command: CommandList}))
	a.Store = vocab.NewStore()
	assert.ErrorIs(t, a.Run(context.Background(), Request{Command: "bogus"}), ErrInvalidInput)
}
