package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportDocument is the downloadable snapshot: every conversation plus the
// current settings blob. Read-only; there is no re-import.
type ExportDocument struct {
	Conversations []*Conversation `json:"conversations"`
	Settings      json.RawMessage `json:"settings"`
}

// ExportData writes the snapshot into dir and returns the file path
func ExportData(conversations []*Conversation, settings json.RawMessage, dir string) (string, error) {
	if settings == nil {
		settings = json.RawMessage("{}")
	}

	doc := ExportDocument{
		Conversations: conversations,
		Settings:      settings,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("ai-chat-export-%s.json", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
