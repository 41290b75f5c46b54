package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/wiserone/internal/config"
	"github.com/julianstephens/wiserone/internal/datekey"
	"github.com/julianstephens/wiserone/internal/logger"
	"github.com/julianstephens/wiserone/internal/page"
	"github.com/julianstephens/wiserone/internal/quotes"
	"github.com/julianstephens/wiserone/internal/sitemap"
	"github.com/julianstephens/wiserone/internal/storage"
	"github.com/julianstephens/wiserone/internal/utils"
)

type Context struct {
	Config  *config.Config
	Clock   *datekey.Clock
	Pages   *page.Writer
	Sitemap *sitemap.Writer
	// Journal is nil when journaling is disabled or could not be opened.
	Journal storage.Provider
	Out     io.Writer

	QuoteOptions []quotes.Option
}

// NewContext wires the writers and the journal described by cfg.
func NewContext(cfg *config.Config) (*Context, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	clock := datekey.NewClock(loc)

	ctx := &Context{
		Config:  cfg,
		Clock:   clock,
		Pages:   page.NewWriter(cfg.Paths.Template, cfg.Paths.Output, cfg.Site, clock),
		Sitemap: sitemap.NewWriter(cfg.Paths.Output, cfg.Site.BaseURL(), clock.Now),
		Out:     os.Stdout,
	}

	if cfg.Journal.Enabled {
		ctx.Journal = openJournal(cfg.Journal.Path)
	}

	return ctx, nil
}

func openJournal(path string) storage.Provider {
	store := storage.New(path)
	if err := store.Init(); err != nil {
		logger.Warn("Build journal unavailable", "path", path, "error", err)
		_ = store.Close()
		return nil
	}
	return store
}

// Close releases the journal.
func (ctx *Context) Close() error {
	if ctx.Journal == nil {
		return nil
	}
	return ctx.Journal.Close()
}

func (ctx *Context) printf(format string, args ...any) {
	out := ctx.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}
