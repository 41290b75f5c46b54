package cli

type SitemapCmd struct{}

func (c *SitemapCmd) Run(ctx *Context) error {
	n, err := ctx.Sitemap.Generate()
	if err != nil {
		return err
	}
	ctx.printf("✓ Sitemap lists %d pages\n", n)
	return nil
}
