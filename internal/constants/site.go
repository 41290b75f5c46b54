package constants

// Site metadata defaults substituted into every page.
const (
	DefaultSiteName           = "wiserone"
	DefaultSiteURL            = "https://wiserone.com"
	DefaultSiteCDN            = "https://kura.pro"
	DefaultSiteLogo           = "https://kura.pro/wiserone/images/logos/wiserone.webp"
	DefaultSiteCharset        = "utf-8"
	DefaultSiteHreflang       = "en"
	DefaultSiteTouchIconSizes = "192x192"
	DefaultSiteMeasurementID  = "G-4HKZ6N3QSC"
	DefaultSiteDescription    = "Daily nuggets of wisdom in a clean, minimalist design, inspiring deeper thought and personal growth with every visit."
	SitemapChangeFrequency    = "weekly"
)
