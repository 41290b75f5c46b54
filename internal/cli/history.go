package cli

import (
	"fmt"
	"time"
)

type HistoryCmd struct {
	Limit int `help:"Number of runs to show (0 for all)." default:"${history_limit}"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if ctx.Journal == nil {
		return fmt.Errorf("build journal is disabled or unavailable")
	}

	runs, err := ctx.Journal.ListRuns(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		ctx.printf("No runs recorded in %s\n", ctx.Journal.GetPath())
		return nil
	}

	ctx.printf("Recent runs (%d):\n\n", len(runs))
	for _, run := range runs {
		started := run.StartedAt.In(ctx.Clock.Location()).Format(time.DateTime)
		ctx.printf("  %s  %-6s  %s  (%d pages)\n", started, run.Command, run.Source, len(run.Pages))
		if p, ok := run.IndexPage(); ok {
			ctx.printf("      index: %s\n", p.Filename)
		}
	}
	ctx.printf("\nJournal: %s\n", ctx.Journal.GetPath())
	return nil
}
