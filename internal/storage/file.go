package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atinyakov/SteamGuardKeeper/internal/models"
)

const (
	// AppDir is the directory created under the user config directory.
	AppDir = "steam-desktop-guard"
	// FileName is the name of the secrets document.
	FileName = "config.json"
)

// DefaultPath returns <user config dir>/steam-desktop-guard/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// FileStorage persists secrets as a pretty-printed JSON document.
type FileStorage struct {
	Path string
}

// NewFileStorage returns a FileStorage for path and creates its directory.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &FileStorage{Path: path}, nil
}

// Load reads the document. A missing file yields an empty list; a file that
// cannot be read or parsed yields an error.
func (f *FileStorage) Load(_ context.Context) ([]models.Secret, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Secret{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	if doc.Secrets == nil {
		doc.Secrets = []models.Secret{}
	}
	return doc.Secrets, nil
}

// Save writes the whole list, replacing the previous document.
func (f *FileStorage) Save(_ context.Context, secrets []models.Secret) error {
	if secrets == nil {
		secrets = []models.Secret{}
	}
	data, err := json.MarshalIndent(models.Document{Secrets: secrets}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode secrets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}
