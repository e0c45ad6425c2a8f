package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

// File keeps the history as a JSON array in <dir>/<key>.json.
type File struct {
	path string
}

func NewFile(dir, key string) *File {
	return &File{path: filepath.Join(dir, key+".json")}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Load(_ context.Context) ([]invoice.Record, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []invoice.Record{}, nil
		}

		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer file.Close()

	return history.Decode(file)
}

// Store replaces the file atomically: the new content is written next to it
// and renamed over the old one.
func (f *File) Store(_ context.Context, records []invoice.Record) error {
	data, err := history.Encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}

	return nil
}
