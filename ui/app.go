package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	apperrors "csvexplorer/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultAPIFilename = "upload.csv"

// API is the stateless JSON surface: every request carries the complete
// file in its body, so nothing is kept between calls
type API struct {
	router   *chi.Mux
	explorer *app.Explorer
	maxBytes int64
}

// NewAPI builds the JSON API. Bodies larger than maxBytes are rejected;
// zero means no limit.
func NewAPI(explorer *app.Explorer, maxBytes int64) *API {
	a := &API{router: chi.NewRouter(), explorer: explorer, maxBytes: maxBytes}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *API) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *API) setupRoutes() {
	a.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", a.handleAnalyze)
		r.Post("/describe", a.handleDescribe)
		r.Post("/export", a.handleExport)
	})
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// handleAnalyze returns the full view model for the posted file
func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := a.readBody(w, r)
	if !ok {
		return
	}

	opts := a.explorer.Defaults()
	q := r.URL.Query()
	if q.Has("summary") {
		opts.ShowSummary = q.Get("summary") != "off" && q.Get("summary") != "false"
	}
	if q.Has("chart") {
		opts.ShowChart = q.Get("chart") != "off" && q.Get("chart") != "false"
	}

	vm, err := a.explorer.Analyze(filename, content, q.Get("column"), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

// handleDescribe returns the summary statistics of every column
func (a *API) handleDescribe(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := a.readBody(w, r)
	if !ok {
		return
	}

	vm, err := a.explorer.Analyze(filename, content, "", a.explorer.WithToggles(true, false))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vm.Summary)
}

// handleExport re-serializes the posted file, as CSV unless format=xlsx
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := a.readBody(w, r)
	if !ok {
		return
	}

	upload, err := a.explorer.Load(filename, content)
	if err != nil {
		writeError(w, err)
		return
	}

	write, mime, name := excel.WriteCSV, excel.MimeCSV+"; charset=utf-8", csvDownloadName
	if r.URL.Query().Get("format") == "xlsx" {
		write, mime, name = excel.WriteXLSX, excel.MimeXLSX, xlsxDownloadName
	}

	var buf bytes.Buffer
	if err := write(&buf, upload.Table); err != nil {
		writeError(w, apperrors.Wrap(err, "export failed"))
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// readBody takes the file from the request body; ?filename= picks the
// format by extension
func (a *API) readBody(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = defaultAPIFilename
	}

	body := r.Body
	if a.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, a.maxBytes)
	}
	content, err := io.ReadAll(body)
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		writeError(w, apperrors.InvalidInput(fmt.Sprintf("request body exceeds %d bytes", a.maxBytes)))
		return "", nil, false
	case err != nil:
		writeError(w, apperrors.InvalidInput("could not read request body"))
		return "", nil, false
	}
	return filename, content, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, apperrors.Wrap(err, "encode response"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	body, _ := json.Marshal(map[string]string{
		"error": err.Error(),
		"code":  apperrors.Classify(err),
	})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apperrors.HTTPStatus(err))
	_, _ = w.Write(body)
}
