package models

import "time"

// Page describes one generated HTML file.
type Page struct {
	Filename  string `json:"filename"`
	DateKey   string `json:"date_key"`
	Canonical string `json:"canonical"`
	IsIndex   bool   `json:"is_index"`
	Quote     Quote  `json:"quote"`
}

// Run is one generator invocation as recorded in the build journal.
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Source    string    `json:"source"`
	StartedAt time.Time `json:"started_at"`
	Pages     []Page    `json:"pages"`
}

// IndexPage returns the page promoted to index.html during the run, if any.
func (r Run) IndexPage() (Page, bool) {
	for _, p := range r.Pages {
		if p.IsIndex {
			return p, true
		}
	}
	return Page{}, false
}
