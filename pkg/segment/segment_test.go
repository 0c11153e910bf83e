package segment

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Class
	}{
		{"hiragana lower bound", '\u3040', Hiragana},
		{"hiragana a", 'あ', Hiragana},
		{"hiragana upper bound", '\u309F', Hiragana},
		{"katakana lower bound", '\u30A0', Katakana},
		{"katakana a", 'ア', Katakana},
		{"prolonged sound mark", 'ー', Katakana},
		{"katakana upper bound", '\u30FF', Katakana},
		{"below hiragana", '\u303F', Neither},
		{"above katakana", '\u3100', Neither},
		{"kanji", '漢', Neither},
		{"ideographic full stop", '。', Neither},
		{"latin", 'a', Neither},
		{"space", ' ', Neither},
		{"newline", '\n', Neither},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.r))
		})
	}
}

func TestFeedBoundaryFlush(t *testing.T) {
	s := New()
	for _, r := range "あいう" {
		w, ok := s.Feed(r)
		require.False(t, ok, "unexpected word %q before terminator", w)
	}
	w, ok := s.Feed('。')
	require.True(t, ok)
	assert.Equal(t, "あいう", w)

	_, ok = s.Finish()
	assert.False(t, ok, "buffer should be empty after flush")
}

func TestFeedClassSwitchDiscardsPreviousRun(t *testing.T) {
	s := New()
	for _, r := range "あアい" {
		_, ok := s.Feed(r)
		require.False(t, ok)
	}
	assert.Equal(t, "い", s.Pending())
	assert.Equal(t, Hiragana, s.State())

	w, ok := s.Finish()
	require.True(t, ok)
	assert.Equal(t, "い", w)
	assert.Equal(t, []string{"い"}, Words("あアい"))
}

func TestFeedNeitherRunsEmitNothing(t *testing.T) {
	s := New()
	for _, r := range "漢字 and text。" {
		_, ok := s.Feed(r)
		assert.False(t, ok)
	}
	_, ok := s.Finish()
	assert.False(t, ok)
}

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single run with trailing flush", "ねこ", []string{"ねこ"}},
		{"separated by kanji", "わたしは猫です", []string{"わたしは", "です"}},
		{"katakana then punctuation", "テスト、カメラ。", []string{"テスト", "カメラ"}},
		{"hiragana to katakana drops first run", "ですテスト。", []string{"テスト"}},
		{"mixed latin", "abc かな def カナ", []string{"かな", "カナ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestWordsDeterministicAndSingleClass(t *testing.T) {
	input := "きょうはいい天気ですね。コーヒーをのみましょう！ラーメンとすし、アイスクリーム。"
	first := Words(input)
	second := Words(input)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)

	for _, w := range first {
		require.True(t, utf8.RuneCountInString(w) > 0)
		var class Class
		for i, r := range w {
			c := Classify(r)
			require.NotEqual(t, Neither, c, "word %q contains a non-kana rune", w)
			if i == 0 {
				class = c
			}
			require.Equal(t, class, c, "word %q mixes script classes", w)
		}
	}
}

func TestScanAcrossSources(t *testing.T) {
	s := New()
	var got []string
	emit := func(w string) { got = append(got, w) }

	require.NoError(t, s.Scan(strings.NewReader("ほん。やま"), emit))
	require.NoError(t, s.Scan(strings.NewReader("かわ。"), emit))
	if w, ok := s.Finish(); ok {
		got = append(got, w)
	}
	assert.Equal(t, []string{"ほん", "やまかわ"}, got)
}

type failingReader struct{ err error }

func (f failingReader) ReadRune() (rune, int, error) { return 0, 0, f.err }

func TestScanPropagatesReadError(t *testing.T) {
	boom := errors.New("boom")
	err := New().Scan(failingReader{err: boom}, func(string) {})
	assert.ErrorIs(t, err, boom)
}
