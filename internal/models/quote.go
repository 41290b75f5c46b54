package models

import "strings"

// Quote is a single attributed quote loaded from a JSON or CSV source.
// Only the portion of DateAdded before the first 'T' carries meaning.
type Quote struct {
	Text      string `json:"quote_text" csv:"quote_text" validate:"required"`
	Author    string `json:"author" csv:"author"`
	DateAdded string `json:"date_added" csv:"date_added"`
	ImageURL  string `json:"image_url" csv:"image_url"`
}

// DatePart returns DateAdded up to the first 'T'.
func (q Quote) DatePart() string {
	date, _, _ := strings.Cut(q.DateAdded, "T")
	return date
}
