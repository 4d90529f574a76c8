package dataset

import (
	"time"

	"csvexplorer/domain/core"
)

// Manifest describes one upload: where the table came from and what it looks like
type Manifest struct {
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	FileSize    int64     `json:"file_size"`
	ContentHash core.Hash `json:"content_hash"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// NewManifest builds the manifest for a freshly loaded table
func NewManifest(filename, mimeType string, content []byte, t *Table) Manifest {
	return Manifest{
		Filename:    filename,
		MimeType:    mimeType,
		FileSize:    int64(len(content)),
		ContentHash: core.NewHash(content),
		Rows:        t.NumRows(),
		Columns:     t.NumColumns(),
		LoadedAt:    time.Now().UTC(),
	}
}
