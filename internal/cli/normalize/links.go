package normalize

import (
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/pkg/models"
)

// LinksCmd prints the external links of a title
var LinksCmd = &cobra.Command{
	Use:   "links <file>",
	Short: "List a title's external links",
	Long:  "Read a title envelope and list its external links in site order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		manga, err := app.ReadEnvelope[models.Manga](cmd, args[0])
		if err != nil {
			return err
		}

		links := rt.Normalizer.Links(manga.Links)
		return rt.Render(links, func() string { return renderLinks(manga.Title, links) })
	},
}

func renderLinks(title string, links []models.Link) string {
	items := make([]string, 0, len(links))
	for _, link := range links {
		items = append(items, styles.KV(link.Title, styles.LinkStyle.Render(link.URL)))
	}
	return strings.Join([]string{
		styles.TitleStyle.Render(title),
		styles.List(items, "no external links"),
	}, "\n")
}
