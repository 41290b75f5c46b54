package cli

import (
	"github.com/julianstephens/wiserone/internal/constants"
	"github.com/julianstephens/wiserone/internal/models"
	"github.com/julianstephens/wiserone/internal/quotes"
)

type RandomCmd struct {
	Filename string `arg:"" help:"Quote file (.json or .csv)." type:"path"`
}

func (c *RandomCmd) Run(ctx *Context) error {
	_, err := ctx.generate(constants.CommandRandom, c.Filename, writeRandom)
	return err
}

// writeRandom writes one unused quote as today's page.
func writeRandom(ctx *Context, collection *quotes.Collection) ([]models.Page, error) {
	q, err := collection.SelectRandom()
	if err != nil {
		return nil, err
	}

	p, err := ctx.Pages.Write(ctx.Clock.Today().Filename(), q)
	if err != nil {
		return nil, err
	}
	ctx.printf("✓ Created %s\n", p.Filename)
	return []models.Page{p}, nil
}
