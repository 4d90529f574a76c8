package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"
	"unicode/utf8"

	"csvexplorer/adapters/datareadiness/coercer"
	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader turns CSV and Excel uploads into typed tables
type DataReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
}

// NewDataReader creates a reader that handles both CSV and Excel files
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
	}
}

var defaultReader = NewDataReader(DefaultReaderConfig())

// LoadCSV parses CSV bytes with the default configuration
func LoadCSV(r io.Reader) (*dataset.Table, error) {
	return defaultReader.LoadCSV(r)
}

// LoadXLSX parses an Excel workbook with the default configuration
func LoadXLSX(r io.Reader) (*dataset.Table, error) {
	return defaultReader.LoadXLSX(r)
}

// Read dispatches on the file extension of filename
func (r *DataReader) Read(filename string, src io.Reader) (*dataset.Table, error) {
	fileType, ok := DetectFileType(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s (only .csv and .xlsx are accepted)", core.ErrFileType, filename)
	}

	switch fileType {
	case FileTypeXLSX:
		return r.LoadXLSX(src)
	default:
		return r.LoadCSV(src)
	}
}

// LoadCSV reads a CSV stream whose first record is the header
func (r *DataReader) LoadCSV(src io.Reader) (*dataset.Table, error) {
	content, err := r.readAll(src)
	if err != nil {
		return nil, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, core.ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: CSV must be UTF-8", core.ErrEncoding)
	}

	readStart := time.Now()
	reader := csv.NewReader(bytes.NewReader(content))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyFile
	}
	log.Printf("[DataReader] CSV read in %.2fms (%d records)", float64(time.Since(readStart).Nanoseconds())/1e6, len(records))

	return r.processRows(RawData{Headers: records[0], Rows: records[1:]})
}

// LoadXLSX reads the configured (or first) sheet of an Excel workbook.
// Spreadsheet rows are ragged by nature, so short rows are padded with
// missing values instead of being rejected.
func (r *DataReader) LoadXLSX(src io.Reader) (*dataset.Table, error) {
	content, err := r.readAll(src)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, core.ErrEmptyFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", core.ErrMalformed, err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, core.ErrEmptyFile
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", core.ErrMalformed, sheet, err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	if len(rows) == 0 {
		return nil, core.ErrEmptyFile
	}

	headers := rows[0]
	width := len(headers)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(headers) < width {
		headers = append(headers, "")
	}

	data := make([][]string, len(rows)-1)
	for i, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		data[i] = padded
	}

	return r.processRows(RawData{Headers: headers, Rows: data})
}

func (r *DataReader) readAll(src io.Reader) ([]byte, error) {
	if r.config.MaxBytes > 0 {
		src = io.LimitReader(src, r.config.MaxBytes+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, core.NewLoadError("read upload", err)
	}
	if r.config.MaxBytes > 0 && int64(len(content)) > r.config.MaxBytes {
		return nil, core.NewLoadError(fmt.Sprintf("file exceeds the %d byte limit", r.config.MaxBytes), nil)
	}
	return content, nil
}

// processRows converts raw string rows into a typed table
func (r *DataReader) processRows(raw RawData) (*dataset.Table, error) {
	headers := normalizeHeaders(raw.Headers)
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse", core.ErrMalformed)
	}

	columns := make([]dataset.Column, len(headers))
	values := make([]string, len(raw.Rows))
	for j, name := range headers {
		for i, row := range raw.Rows {
			values[i] = row[j]
		}
		columns[j] = r.coercer.CoerceColumn(name, values)
	}

	table, err := dataset.NewTable(columns)
	if err != nil {
		return nil, errors.Join(core.ErrMalformed, err)
	}

	log.Printf("[DataReader] Table built (%d columns, %d rows)", table.NumColumns(), table.NumRows())
	return table, nil
}

// normalizeHeaders names blank headers "Unnamed: i" and suffixes repeats with
// ".1", ".2", ... so every column name is unique.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}
