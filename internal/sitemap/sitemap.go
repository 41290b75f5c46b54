// Package sitemap writes sitemap.xml for the generated pages.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/wiserone/internal/constants"
	"github.com/julianstephens/wiserone/internal/logger"
)

const (
	xmlnsSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xmlnsNews    = "http://www.google.com/schemas/sitemap-news/0.9"
	xmlnsXHTML   = "http://www.w3.org/1999/xhtml"
	xmlnsMobile  = "http://www.google.com/schemas/sitemap-mobile/1.0"
	xmlnsImage   = "http://www.google.com/schemas/sitemap-image/1.1"
	xmlnsVideo   = "http://www.google.com/schemas/sitemap-video/1.1"
)

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName     xml.Name `xml:"urlset"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsNews   string   `xml:"xmlns:news,attr"`
	XmlnsXHTML  string   `xml:"xmlns:xhtml,attr"`
	XmlnsMobile string   `xml:"xmlns:mobile,attr"`
	XmlnsImage  string   `xml:"xmlns:image,attr"`
	XmlnsVideo  string   `xml:"xmlns:video,attr"`
	URLs        []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	LastMod    string `xml:"lastmod"`
}

// Writer builds sitemap.xml from the HTML files in an output directory.
type Writer struct {
	outputDir string
	baseURL   string
	now       func() time.Time
}

// NewWriter creates a Writer. baseURL is joined to each file name as-is, so
// it should end with a slash.
func NewWriter(outputDir, baseURL string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{outputDir: outputDir, baseURL: baseURL, now: now}
}

// Build returns the sitemap for the current contents of the output directory.
// Every entry carries the same lastmod: the time of this call. A missing
// output directory yields an empty set.
func (w *Writer) Build() (URLSet, error) {
	set := URLSet{
		Xmlns:       xmlnsSitemap,
		XmlnsNews:   xmlnsNews,
		XmlnsXHTML:  xmlnsXHTML,
		XmlnsMobile: xmlnsMobile,
		XmlnsImage:  xmlnsImage,
		XmlnsVideo:  xmlnsVideo,
	}

	names, err := w.htmlFiles()
	if err != nil {
		return URLSet{}, err
	}

	lastMod := w.now().Format(time.RFC3339)
	for _, name := range names {
		set.URLs = append(set.URLs, URL{
			Loc:        w.baseURL + name,
			ChangeFreq: constants.SitemapChangeFrequency,
			LastMod:    lastMod,
		})
	}
	return set, nil
}

// Generate writes sitemap.xml into the output directory and returns the
// number of URLs listed.
func (w *Writer) Generate() (int, error) {
	set, err := w.Build()
	if err != nil {
		return 0, err
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode sitemap: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, constants.SitemapFileName)
	data := append([]byte(xml.Header), body...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}

	logger.Info("Sitemap written", "file", path, "urls", len(set.URLs))
	return len(set.URLs), nil
}

func (w *Writer) htmlFiles() ([]string, error) {
	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), constants.PageExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
