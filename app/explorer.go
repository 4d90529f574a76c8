package app

import (
	"bytes"
	"fmt"
	"time"

	"csvexplorer/adapters/excel"
	"csvexplorer/domain/dataset"
	"csvexplorer/internal"
	apperrors "csvexplorer/internal/errors"
)

// Upload is a successfully loaded file
type Upload struct {
	Table    *dataset.Table
	Manifest dataset.Manifest
}

// Explorer loads uploads and renders views over them
type Explorer struct {
	reader   *excel.DataReader
	defaults Options
	logger   *internal.Logger
}

// NewExplorer creates an explorer that loads with reader and falls back to
// defaults for the rendering limits
func NewExplorer(reader *excel.DataReader, defaults Options) *Explorer {
	return &Explorer{
		reader:   reader,
		defaults: defaults,
		logger:   internal.DefaultLogger.Component("Explorer"),
	}
}

// Defaults returns the options used when a request does not set them
func (e *Explorer) Defaults() Options {
	return e.defaults
}

// WithToggles applies the two display toggles to the configured defaults
func (e *Explorer) WithToggles(showSummary, showChart bool) Options {
	opts := e.defaults
	opts.ShowSummary = showSummary
	opts.ShowChart = showChart
	return opts
}

// Load parses an uploaded file. Failures come back as LOAD_FAILED errors.
func (e *Explorer) Load(filename string, content []byte) (*Upload, error) {
	start := time.Now()
	table, err := e.reader.Read(filename, bytes.NewReader(content))
	if err != nil {
		e.logger.Warn("rejected %s (%d bytes): %v", filename, len(content), err)
		return nil, apperrors.LoadFailed(filename, err)
	}

	mime := excel.MimeCSV
	if ft, _ := excel.DetectFileType(filename); ft == excel.FileTypeXLSX {
		mime = excel.MimeXLSX
	}
	manifest := dataset.NewManifest(filename, mime, content, table)
	e.logger.Info("loaded %s: %s in %s (hash %s)", filename, table.Shape(), time.Since(start).Round(time.Microsecond), manifest.ContentHash.Short())

	return &Upload{Table: table, Manifest: manifest}, nil
}

// Analyze runs the whole pipeline on raw bytes: load, then render
func (e *Explorer) Analyze(filename string, content []byte, selection string, opts Options) (ViewModel, error) {
	upload, err := e.Load(filename, content)
	if err != nil {
		return ViewModel{}, err
	}
	vm, err := Render(upload.Table, selection, e.fill(opts))
	if err != nil {
		return vm, apperrors.Wrapf(err, "analyze %s", filename)
	}
	return vm, nil
}

// View renders a loaded table, recovering from a stale selection by falling
// back to the first column and reporting what happened
func (e *Explorer) View(t *dataset.Table, selection string, opts Options) (ViewModel, string) {
	opts = e.fill(opts)
	if t != nil && selection == "" {
		selection = DefaultSelection(t)
	}

	vm, err := Render(t, selection, opts)
	if err == nil {
		return vm, ""
	}

	notice := fmt.Sprintf("Column %q is not part of the dataset.", selection)
	vm, err = Render(t, DefaultSelection(t), opts)
	if err != nil {
		e.logger.Error("render fallback failed: %v", err)
	}
	return vm, notice
}

func (e *Explorer) fill(opts Options) Options {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = e.defaults.PreviewRows
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = e.defaults.HistogramBins
	}
	return opts
}

// DefaultSelection is the first column, or none for an empty table
func DefaultSelection(t *dataset.Table) string {
	if t == nil || t.NumColumns() == 0 {
		return ""
	}
	return t.ColumnNames()[0]
}
