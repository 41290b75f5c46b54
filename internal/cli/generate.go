package cli

import (
	"github.com/google/uuid"

	"github.com/julianstephens/wiserone/internal/logger"
	"github.com/julianstephens/wiserone/internal/models"
	"github.com/julianstephens/wiserone/internal/quotes"
)

// pageBuilder writes the pages of one run from a freshly loaded collection.
type pageBuilder func(ctx *Context, c *quotes.Collection) ([]models.Page, error)

// generate runs the full pipeline for one command: load the source, write
// pages, promote today's page, refresh the sitemap and journal the run.
func (ctx *Context) generate(command, source string, build pageBuilder) (models.Run, error) {
	run := models.Run{
		ID:        uuid.NewString(),
		Command:   command,
		Source:    source,
		StartedAt: ctx.Clock.Now(),
	}
	logger.Info("Run started", "id", run.ID, "command", command, "source", source)

	collection, err := quotes.Load(source, ctx.QuoteOptions...)
	if err != nil {
		return run, err
	}
	logger.Debug("Quotes loaded", "source", source, "count", collection.Len())

	pages, err := build(ctx, collection)
	if err != nil {
		return run, err
	}
	run.Pages = pages

	promoted, ok, err := ctx.Pages.PromoteToday()
	if err != nil {
		return run, err
	}
	if ok {
		for i := range run.Pages {
			if run.Pages[i].Filename == promoted {
				run.Pages[i].IsIndex = true
			}
		}
		ctx.printf("✓ index.html now serves %s\n", promoted)
	} else {
		ctx.printf("No page for today (%s); index.html left unchanged\n", ctx.Clock.Today().Filename())
	}

	n, err := ctx.Sitemap.Generate()
	if err != nil {
		return run, err
	}
	ctx.printf("✓ Sitemap lists %d pages\n", n)

	ctx.record(run)
	logger.Info("Run finished", "id", run.ID, "pages", len(run.Pages))
	return run, nil
}

// record appends run to the journal. Failures are logged, never returned.
func (ctx *Context) record(run models.Run) {
	if ctx.Journal == nil {
		return
	}
	if err := ctx.Journal.RecordRun(run); err != nil {
		logger.Warn("Failed to record run", "id", run.ID, "journal", ctx.Journal.GetPath(), "error", err)
	}
}
