package sitemap

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runTime = time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return runTime }

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024_01_02.html", "index.html", "2024_01_01.html", "sitemap.xml", ".DS_Store", "style.css")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets.html"), 0755))

	set, err := NewWriter(dir, "https://wiserone.com/", fixedNow).Build()
	require.NoError(t, err)

	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
		assert.Equal(t, "weekly", u.ChangeFreq)
		assert.Equal(t, "2024-01-05T09:30:00Z", u.LastMod)
	}
	assert.Equal(t, []string{
		"https://wiserone.com/2024_01_01.html",
		"https://wiserone.com/2024_01_02.html",
		"https://wiserone.com/index.html",
	}, locs)
}

func TestBuildMissingDirectory(t *testing.T) {
	set, err := NewWriter(filepath.Join(t.TempDir(), "docs"), "https://wiserone.com/", fixedNow).Build()
	require.NoError(t, err)
	assert.Empty(t, set.URLs)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024_01_01.html", "index.html")

	n, err := NewWriter(dir, "https://wiserone.com/", fixedNow).Generate()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, content, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, content, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, content, "<loc>https://wiserone.com/2024_01_01.html</loc>")
	assert.Contains(t, content, "<changefreq>weekly</changefreq>")
	assert.Contains(t, content, "<lastmod>2024-01-05T09:30:00Z</lastmod>")

	var decoded struct {
		URLs []URL `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Len(t, decoded.URLs, 2)
}

func TestGenerateDoesNotListItself(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2024_01_01.html")

	w := NewWriter(dir, "https://wiserone.com/", fixedNow)
	_, err := w.Generate()
	require.NoError(t, err)

	// a second run sees sitemap.xml on disk but still lists only pages
	n, err := w.Generate()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
