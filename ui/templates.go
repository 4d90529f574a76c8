package ui

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"pct": func(v, total float64) float64 {
			if total == 0 {
				return 0
			}
			return 100 * v / total
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
}

// toggleQuery encodes the current selection and toggles for links that
// rerun the page with the same inputs
func toggleQuery(column string, summary, chart bool) template.URL {
	q := url.Values{}
	if column != "" {
		q.Set("column", column)
	}
	q.Set("options", "1")
	if summary {
		q.Set("summary", "on")
	}
	if chart {
		q.Set("chart", "on")
	}
	return template.URL(q.Encode())
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so template errors never leave a half-written page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template %s failed: %v (data %T)", templateName, err, data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	if !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("rendered template %s appears truncated - missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Error("writing template response: %v", err)
	}
}
