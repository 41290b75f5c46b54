package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wiserone/internal/banner"
	"github.com/julianstephens/wiserone/internal/cli"
	"github.com/julianstephens/wiserone/internal/config"
	"github.com/julianstephens/wiserone/internal/constants"
	apperrors "github.com/julianstephens/wiserone/internal/errors"
	"github.com/julianstephens/wiserone/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path (YAML). Missing files fall back to defaults." type:"path" default:"${config_path}"`
	Debug    bool   `help:"Log at debug level and mirror the log to stderr."`
	NoBanner bool   `help:"Skip the start-up banner."`

	Random  cli.RandomCmd  `cmd:"" help:"Publish a random quote as today's page."`
	All     cli.AllCmd     `cmd:"" help:"Publish one page per quote, named after its date_added."`
	Sitemap cli.SitemapCmd `cmd:"" help:"Regenerate sitemap.xml from the output directory."`
	History cli.HistoryCmd `cmd:"" help:"Show recent runs from the build journal."`
	Backup  cli.BackupCmd  `cmd:"" help:"Manage build journal backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Static site generator for a daily quote"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"config_path":   constants.DefaultConfigPath,
			"history_limit": strconv.Itoa(constants.DefaultHistoryLimit),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:      CLI.Debug,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if cfg.Banner.Enabled && !CLI.NoBanner {
		if art := banner.Render(cfg.Banner.Text); art != "" {
			fmt.Println(art)
			fmt.Println()
		}
	}

	appCtx, err := cli.NewContext(cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close build journal", "error", closeErr)
	}
	apperrors.Fatal(err)
}
