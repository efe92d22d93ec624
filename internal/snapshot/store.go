package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/rfid-pos/internal/models"
)

// Version identifies the document layout for export/import.
const Version = "1.0"

// Document is both the durable snapshot and the export/import format: the
// catalog, the sales history and the activity-log tail in one JSON object.
type Document struct {
	Products     []models.Product     `json:"products"`
	Transactions []models.Transaction `json:"transactions"`
	Logs         []string             `json:"logs"`
	ExportDate   string               `json:"exportDate,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Store reads and writes the snapshot file.
type Store struct {
	path   string
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the snapshot. A missing file is a fresh terminal, not an error.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("loading snapshot: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	s.logger.Info("snapshot loaded",
		zap.Int("products", len(doc.Products)),
		zap.Int("transactions", len(doc.Transactions)))
	return doc, nil
}

// Save writes the snapshot. The write goes to a temp file first so a failure
// partway through never truncates the previous snapshot.
func (s *Store) Save(doc Document) error {
	doc.ExportDate = time.Now().Format(time.RFC3339)
	doc.Version = Version
	if len(doc.Logs) > 100 {
		doc.Logs = doc.Logs[len(doc.Logs)-100:]
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return filepath.Clean(s.path)
}
