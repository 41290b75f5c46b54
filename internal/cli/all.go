package cli

import (
	"fmt"

	"github.com/julianstephens/wiserone/internal/constants"
	"github.com/julianstephens/wiserone/internal/datekey"
	"github.com/julianstephens/wiserone/internal/models"
	"github.com/julianstephens/wiserone/internal/quotes"
)

type AllCmd struct {
	Filename string `arg:"" help:"Quote file (.json or .csv)." type:"path"`
}

func (c *AllCmd) Run(ctx *Context) error {
	_, err := ctx.generate(constants.CommandAll, c.Filename, writeAll)
	return err
}

// writeAll writes one page per quote in date order, each named after the
// quote's date_added. Quotes sharing a date overwrite each other, so the
// latest in order wins. Every date is checked before anything is written.
func writeAll(ctx *Context, collection *quotes.Collection) ([]models.Page, error) {
	sorted, err := collection.SelectAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(sorted))
	for i, q := range sorted {
		k, err := datekey.FromDateAdded(q.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("quote %d: %w", i+1, err)
		}
		names[i] = k.Filename()
	}

	pages := make([]models.Page, 0, len(sorted))
	for i, q := range sorted {
		p, err := ctx.Pages.Write(names[i], q)
		if err != nil {
			return pages, err
		}
		ctx.printf("✓ Created %s\n", p.Filename)
		pages = append(pages, p)
	}
	return pages, nil
}
