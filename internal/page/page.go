// Package page renders quotes into the HTML layout and keeps index.html
// pointing at today's page.
package page

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/wiserone/internal/config"
	"github.com/julianstephens/wiserone/internal/constants"
	"github.com/julianstephens/wiserone/internal/datekey"
	"github.com/julianstephens/wiserone/internal/logger"
	"github.com/julianstephens/wiserone/internal/models"
)

// Writer renders pages from a template file into an output directory.
type Writer struct {
	templatePath string
	outputDir    string
	site         config.SiteConfig
	clock        *datekey.Clock
}

// NewWriter creates a Writer. The template is read again on every write.
func NewWriter(templatePath, outputDir string, site config.SiteConfig, clock *datekey.Clock) *Writer {
	return &Writer{
		templatePath: templatePath,
		outputDir:    outputDir,
		site:         site,
		clock:        clock,
	}
}

// OutputDir returns the directory pages are written to.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// Canonical returns the canonical URL of the page with the given file name.
// Today's page is canonical as index.html.
func (w *Writer) Canonical(filename string) string {
	base := w.site.BaseURL()
	if k, ok := datekey.FromFilename(filename); ok && w.clock.IsTodayKey(k) {
		return base + constants.IndexFileName
	}
	return base + filename
}

// Render substitutes the quote, the site metadata and canonical into the template.
func (w *Writer) Render(q models.Quote, canonical string) (string, error) {
	layout, err := os.ReadFile(w.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	r := strings.NewReplacer(
		"{{apple_touch_icon_sizes}}", w.site.AppleTouchIconSizes,
		"{{author}}", html.EscapeString(q.Author),
		"{{banner}}", html.EscapeString(q.ImageURL),
		"{{cdn}}", w.site.CDN,
		"{{charset}}", w.site.Charset,
		"{{description}}", html.EscapeString(w.site.Description),
		"{{hreflang}}", w.site.Hreflang,
		"{{item_pub_date}}", html.EscapeString(q.DateAdded),
		"{{date}}", html.EscapeString(q.DatePart()),
		"{{logo}}", w.site.Logo,
		"{{measurementID}}", w.site.MeasurementID,
		"{{name}}", html.EscapeString(w.site.Name),
		"{{title}}", html.EscapeString(q.Text),
		"{{url}}", w.site.URL,
		"{{canonical}}", canonical,
	)
	return r.Replace(string(layout)), nil
}

// Write renders q into filename inside the output directory, creating the
// directory if needed. An existing file is overwritten.
func (w *Writer) Write(filename string, q models.Quote) (models.Page, error) {
	p := models.Page{
		Filename:  filename,
		Canonical: w.Canonical(filename),
		Quote:     q,
	}
	if k, ok := datekey.FromFilename(filename); ok {
		p.DateKey = k.String()
	}

	content, err := w.Render(q, p.Canonical)
	if err != nil {
		return models.Page{}, err
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return models.Page{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return models.Page{}, fmt.Errorf("failed to write page: %w", err)
	}

	logger.Info("Page written", "file", path, "canonical", p.Canonical)
	return p, nil
}

// PromoteToday copies today's page over index.html. It returns the name of
// the promoted page, or false when no page for today exists.
func (w *Writer) PromoteToday() (string, bool, error) {
	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to read output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == constants.IgnoredFileName {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	today := w.clock.Today().Filename()
	found := false
	for _, name := range names {
		logger.Info("HTML file present", "id", uuid.NewString(), "file", filepath.Join(w.outputDir, name))
		if name == today {
			found = true
		}
	}
	if !found {
		logger.Debug("No page for today", "expected", today)
		return "", false, nil
	}

	content, err := os.ReadFile(filepath.Join(w.outputDir, today))
	if err != nil {
		return "", false, fmt.Errorf("failed to read today's page: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.outputDir, constants.IndexFileName), content, 0644); err != nil {
		return "", false, fmt.Errorf("failed to write index: %w", err)
	}

	logger.Info("Index updated", "from", today)
	return today, true, nil
}
