package excel

import (
	"path/filepath"
	"strings"
)

// FileType is the upload format, decided by extension
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

const (
	MimeCSV  = "text/csv"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DetectFileType maps a filename to a supported format
func DetectFileType(filename string) (FileType, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FileTypeCSV, true
	case ".xlsx":
		return FileTypeXLSX, true
	default:
		return "", false
	}
}

// RawData is a parsed file before type inference: a header and string rows
type RawData struct {
	Headers []string
	Rows    [][]string
}
