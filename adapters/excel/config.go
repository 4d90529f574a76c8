package excel

import (
	"csvexplorer/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for turning uploads into tables
type ReaderConfig struct {
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	MaxBytes       int64                  `json:"max_bytes"` // 0 means unlimited
	Sheet          string                 `json:"sheet"`     // empty means the first sheet
}

// DefaultReaderConfig returns sensible defaults for upload processing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
		MaxBytes:       200 << 20,
	}
}
