package constants

const (
	AppName    = "wiserone"
	Version    = "v0.1.0"
	BannerText = "The Wiser One"

	// DateFormat is the date portion of a quote's date_added (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// KeyFormat is the file-name form of a date (YYYY_MM_DD)
	KeyFormat = "2006_01_02"

	// Output file names
	PageExtension   = ".html"
	IndexFileName   = "index.html"
	SitemapFileName = "sitemap.xml"
	IgnoredFileName = ".DS_Store"

	// Defaults
	DefaultConfigPath   = "wiserone.yaml"
	DefaultTemplatePath = "_layouts/quote.html"
	DefaultOutputDir    = "./docs"
	DefaultLogFile      = "./wiserone.log"
	DefaultJournalPath  = "./wiserone.db"
	DefaultTimezone     = "Local"
	DefaultHistoryLimit = 10

	// Command names recorded in the journal
	CommandRandom = "random"
	CommandAll    = "all"
)
