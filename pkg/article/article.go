// Package article turns reading material into plain text: local text files,
// local HTML pages and pages fetched over HTTP.
package article

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Text is the character content of one input source.
type Text struct {
	Name  string // file path or URL
	Title string // page title for HTML sources
	Body  string
}

var (
	// (?s) allows dot to match newlines
	// (?i) makes it case-insensitive
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses (<rp>...</rp>)
// from HTML content. Readability keeps furigana as ordinary text, which would
// glue the reading onto the base text (e.g. "漢字" becomes "漢字かんじ") and
// produce kana runs that are not in the prose.
// This function operates on bytes and is generally safe for Shift_JIS as well,
// because <, >, r, t, p are ASCII and < is not a trailing byte in Shift_JIS.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}

// IsHTML reports whether path names an HTML document by extension.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// FromHTML extracts the readable article text of an HTML page after
// stripping ruby annotations. pageURL may be nil.
func FromHTML(name string, content []byte, pageURL *url.URL) (Text, error) {
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "file", Path: name}
	}
	art, err := readability.FromReader(bytes.NewReader(SanitizeRuby(content)), pageURL)
	if err != nil {
		return Text{}, fmt.Errorf("extract article from %s: %w", name, err)
	}
	return Text{Name: name, Title: art.Title, Body: art.TextContent}, nil
}

// ReadFile loads one input file. HTML files go through article extraction;
// anything else is read as UTF-8 text.
func ReadFile(path string) (Text, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("read %s: %w", path, err)
	}
	if IsHTML(path) {
		return FromHTML(path, content, nil)
	}
	return Text{Name: path, Body: string(content)}, nil
}
