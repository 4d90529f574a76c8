package ui

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"
	"csvexplorer/internal/charts"
	apperrors "csvexplorer/internal/errors"
	"csvexplorer/internal/report"
	"csvexplorer/ui/middleware"

	"github.com/gin-gonic/gin"
)

const (
	uploadField      = "dataset"
	csvDownloadName  = "processed_data.csv"
	xlsxDownloadName = "processed_data.xlsx"
)

// pageData is what index.html renders
type pageData struct {
	View      app.ViewModel
	Manifest  *dataset.Manifest
	LoadError string
	Notice    string
	MaxMB     int
	Query     template.URL
}

// reportData is what report.html renders
type reportData struct {
	Title string
	Body  template.HTML
	Query template.URL
}

// optionsFromQuery reads the sidebar toggles. Unchecked checkboxes are absent
// from the form, so the toggles only count as submitted when options=1.
func (s *Server) optionsFromQuery(c *gin.Context) app.Options {
	if c.Query("options") != "1" {
		return s.explorer.Defaults()
	}
	return s.explorer.WithToggles(c.Query("summary") == "on", c.Query("chart") == "on")
}

func (s *Server) currentUpload(c *gin.Context) *app.Upload {
	upload, ok := s.sessions.Get(middleware.SessionID(c))
	if !ok {
		return nil
	}
	return upload
}

func (s *Server) currentView(c *gin.Context, upload *app.Upload) (app.ViewModel, string) {
	var table *dataset.Table
	if upload != nil {
		table = upload.Table
	}
	return s.explorer.View(table, c.Query("column"), s.optionsFromQuery(c))
}

// handleIndex reruns the whole analysis for the current inputs
func (s *Server) handleIndex(c *gin.Context) {
	id := middleware.SessionID(c)
	loadErr := s.sessions.TakeLoadError(id)
	upload := s.currentUpload(c)

	vm, notice := s.currentView(c, upload)
	data := pageData{
		View:      vm,
		LoadError: loadErr,
		Notice:    notice,
		MaxMB:     s.config.Upload.MaxMB,
		Query:     toggleQuery(vm.Selected, vm.Options.ShowSummary, vm.Options.ShowChart),
	}
	if upload != nil {
		data.Manifest = &upload.Manifest
	}

	s.renderTemplate(c, http.StatusOK, "index.html", data)
}

// handleUpload replaces the session table with the uploaded file
func (s *Server) handleUpload(c *gin.Context) {
	id := middleware.SessionID(c)
	maxBytes := s.config.Upload.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)

	header, err := c.FormFile(uploadField)
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		s.failUpload(c, id, apperrors.InvalidInput(fmt.Sprintf("upload exceeds the %d MB limit", s.config.Upload.MaxMB)))
		return
	case err != nil:
		s.failUpload(c, id, apperrors.InvalidInput("no file was uploaded"))
		return
	}
	if header.Size > maxBytes {
		s.failUpload(c, id, apperrors.InvalidInput(fmt.Sprintf("%s exceeds the %d MB upload limit", header.Filename, s.config.Upload.MaxMB)))
		return
	}

	f, err := header.Open()
	if err != nil {
		s.failUpload(c, id, apperrors.Wrap(err, "could not open upload"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		s.failUpload(c, id, apperrors.Wrap(err, "could not read upload"))
		return
	}

	upload, err := s.explorer.Load(header.Filename, content)
	if err != nil {
		s.failUpload(c, id, err)
		return
	}

	s.sessions.Put(id, upload)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) failUpload(c *gin.Context, id core.SessionID, err error) {
	s.logger.Warn("upload failed (%s): %v", apperrors.GetCode(err), err)
	s.sessions.SetLoadError(id, "Error loading file: "+err.Error())
	c.Redirect(http.StatusSeeOther, "/")
}

// handleReset forgets the session table
func (s *Server) handleReset(c *gin.Context) {
	s.sessions.Delete(middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// handleChart renders the selected column's chart as SVG
func (s *Server) handleChart(c *gin.Context) {
	upload := s.currentUpload(c)
	if upload == nil {
		s.abortWithError(c, apperrors.NotFound("dataset"))
		return
	}

	vm, err := app.Render(upload.Table, c.Query("column"), s.explorer.WithToggles(false, true))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if vm.Column == nil || vm.Column.Chart == nil {
		s.abortWithError(c, apperrors.NotFound("chart"))
		return
	}

	var buf bytes.Buffer
	view := s.config.View
	if err := charts.RenderSVG(*vm.Column.Chart, &buf, view.ChartWidth, view.ChartHeight); err != nil {
		s.abortWithError(c, apperrors.Wrap(err, "chart rendering failed"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// handleDownloadCSV serves the loaded table unchanged as CSV
func (s *Server) handleDownloadCSV(c *gin.Context) {
	s.download(c, csvDownloadName, excel.MimeCSV+"; charset=utf-8", excel.WriteCSV)
}

// handleDownloadXLSX serves the loaded table as an Excel workbook
func (s *Server) handleDownloadXLSX(c *gin.Context) {
	s.download(c, xlsxDownloadName, excel.MimeXLSX, excel.WriteXLSX)
}

func (s *Server) download(c *gin.Context, filename, mime string, write func(io.Writer, *dataset.Table) error) {
	upload := s.currentUpload(c)
	if upload == nil {
		s.abortWithError(c, apperrors.NotFound("dataset"))
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, upload.Table); err != nil {
		s.abortWithError(c, apperrors.Wrapf(err, "export %s", filename))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mime, buf.Bytes())
}

// handleReport renders the markdown report as an HTML page
func (s *Server) handleReport(c *gin.Context) {
	upload, vm, ok := s.reportView(c)
	if !ok {
		return
	}
	md := report.Markdown(upload.Manifest.Filename, vm)
	s.renderTemplate(c, http.StatusOK, "report.html", reportData{
		Title: upload.Manifest.Filename,
		Body:  template.HTML(report.HTML(md)),
		Query: toggleQuery(vm.Selected, vm.Options.ShowSummary, vm.Options.ShowChart),
	})
}

// handleReportMarkdown serves the raw markdown report
func (s *Server) handleReportMarkdown(c *gin.Context) {
	upload, vm, ok := s.reportView(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(upload.Manifest.Filename, vm)))
}

func (s *Server) reportView(c *gin.Context) (*app.Upload, app.ViewModel, bool) {
	upload := s.currentUpload(c)
	if upload == nil {
		s.abortWithError(c, apperrors.NotFound("dataset"))
		return nil, app.ViewModel{}, false
	}
	vm, notice := s.currentView(c, upload)
	if notice != "" {
		s.abortWithError(c, apperrors.NotFound("column "+c.Query("column")))
		return nil, app.ViewModel{}, false
	}
	return upload, vm, true
}

// handleHealth reports liveness and the number of held sessions
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": apperrors.Classify(err)})
}
