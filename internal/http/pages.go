package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	excerptRunes    = 50
)

var missingIndexPage = []byte("<h1>Error: index.html not found</h1>" +
	"<p>Make sure index.html is in the same directory as the server</p>")

//go:embed templates/dbview.html
var templatesFS embed.FS

var dbViewTemplate = template.Must(
	template.New("dbview.html").Funcs(template.FuncMap{
		"stars":     stars,
		"excerpt":   excerpt,
		"timestamp": formatTimestamp,
	}).ParseFS(templatesFS, "templates/dbview.html"),
)

func (h *Handler) index(c *gin.Context) {
	page, err := os.ReadFile(h.opts.IndexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Data(http.StatusOK, htmlContentType, missingIndexPage)
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Data(http.StatusOK, htmlContentType, page)
}

func (h *Handler) dbView(c *gin.Context) {
	dump, err := h.dump.Dump(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := dbViewTemplate.Execute(&buf, dump); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("⭐", rating)
}

func excerpt(message string) string {
	if utf8.RuneCountInString(message) <= excerptRunes {
		return message
	}
	return string([]rune(message)[:excerptRunes]) + "..."
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
