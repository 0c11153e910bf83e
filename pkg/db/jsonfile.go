package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// JSONFile stores records as a single JSON array on disk.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a repository backed by the file at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// jsonRecord mirrors vocab.Record with pointers so missing fields can be
// told apart from zero values.
type jsonRecord struct {
	Word               *string    `json:"word"`
	WordType           *string    `json:"word_type"`
	Definition         *string    `json:"definition"`
	NextReview         *time.Time `json:"next_review"`
	IntervalRung       *string    `json:"interval_rung"`
	Due                *bool      `json:"due"`
	ConsecutiveCorrect *string    `json:"consecutive_correct"`
}

func (jr jsonRecord) record(index int) (vocab.Record, error) {
	var word string
	if jr.Word != nil {
		word = *jr.Word
	}
	missing := func(field string) error {
		return &vocab.RecordError{Index: index, Word: word, Field: field, Reason: "missing"}
	}
	switch {
	case jr.Word == nil:
		return vocab.Record{}, missing("word")
	case jr.NextReview == nil:
		return vocab.Record{}, missing("next_review")
	case jr.IntervalRung == nil:
		return vocab.Record{}, missing("interval_rung")
	case jr.Due == nil:
		return vocab.Record{}, missing("due")
	case jr.ConsecutiveCorrect == nil:
		return vocab.Record{}, missing("consecutive_correct")
	}
	return vocab.Record{
		Word:               word,
		WordType:           jr.WordType,
		Definition:         jr.Definition,
		NextReview:         *jr.NextReview,
		IntervalRung:       *jr.IntervalRung,
		Due:                *jr.Due,
		ConsecutiveCorrect: *jr.ConsecutiveCorrect,
	}, nil
}

// Load reads all records. A missing or blank file yields no records.
func (f *JSONFile) Load() ([]vocab.Record, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", f.Path, vocab.ErrMalformedRecord, err)
	}

	records := make([]vocab.Record, 0, len(raw))
	for i, msg := range raw {
		var jr jsonRecord
		if err := json.Unmarshal(msg, &jr); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path,
				&vocab.RecordError{Index: i, Field: "record", Reason: err.Error()})
		}
		rec, err := jr.record(i)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the file with records. The data is written to a temporary
// file in the same directory and renamed over the target.
func (f *JSONFile) Save(records []vocab.Record) error {
	if records == nil {
		records = []vocab.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error { return nil }
