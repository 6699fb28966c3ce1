package tags

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
)

var TagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag catalog commands",
	Long:  "Resolve tag ids against a tag catalog",
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <manga-file>",
	Short: "Resolve a title's tags",
	Long:  "Resolve every tag id of a title envelope against a tag catalog envelope, grouped by tag group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		catalogPath, _ := cmd.Flags().GetString("catalog")

		manga, err := app.ReadEnvelope[models.Manga](cmd, args[0])
		if err != nil {
			return err
		}
		catalog, err := app.ReadEnvelope[models.Tags](cmd, catalogPath)
		if err != nil {
			return err
		}

		resolved, err := rt.Normalizer.MangaTags(manga, catalog)
		logger.Conversion("manga_tags", manga.ID, err)
		if err != nil {
			return err
		}

		return rt.Render(resolved, func() string { return renderTags(manga.Title, resolved) })
	},
}

// renderTags prints tags under their group headings in catalog group order
func renderTags(title string, resolved []models.Tag) string {
	grouped := make(map[models.TagGroup][]string, len(models.TagGroups))
	for _, tag := range resolved {
		grouped[tag.Group] = append(grouped[tag.Group], tag.Name)
	}

	parts := []string{styles.TitleStyle.Render(fmt.Sprintf("%s (%d tags)", title, len(resolved)))}
	for _, group := range models.TagGroups {
		names, ok := grouped[group]
		if !ok {
			continue
		}
		parts = append(parts, styles.SectionStyle.Render(string(group)), styles.List(names, ""))
	}
	return strings.Join(parts, "\n")
}

func init() {
	resolveCmd.Flags().String("catalog", "", "Tag catalog envelope file")
	_ = resolveCmd.MarkFlagRequired("catalog")
	TagsCmd.AddCommand(resolveCmd)
}
