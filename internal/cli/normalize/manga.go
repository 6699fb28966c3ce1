package normalize

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
	"mdcatalog/pkg/utils"
)

var mangaCmd = &cobra.Command{
	Use:   "manga <file>",
	Short: "Format a title",
	Long:  "Format a title envelope: language and status names, demographic and the external link list",
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

		formatted, err := rt.Normalizer.Manga(manga)
		logger.Conversion("manga", manga.ID, err)
		if err != nil {
			return err
		}

		return rt.Render(formatted, func() string { return renderManga(rt, formatted) })
	},
}

func renderManga(rt *app.Runtime, m *models.FormattedManga) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.Title))
	b.WriteString("\n")
	if len(m.AltTitles) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(m.AltTitles, " / ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := []string{
		styles.KV("ID", m.ID),
		styles.KV("Author", styles.OrDash(strings.Join(m.Author, ", "))),
		styles.KV("Artist", styles.OrDash(strings.Join(m.Artist, ", "))),
		styles.KV("Language", m.Publication.LanguageName),
		styles.KV("Status", m.Publication.StatusName),
		styles.KV("Demographic", m.Publication.DemographicName),
		styles.KV("Rating", fmt.Sprintf("%.2f (%d users)", m.Rating.Bayesian, m.Rating.Users)),
		styles.KV("Follows", m.Follows),
		styles.KV("Views", m.Views),
		styles.KV("Updated", utils.TimeAgo(m.LastUploaded, rt.Now())),
	}
	if m.LastChapter != nil {
		lines = append(lines, styles.KV("Last chapter", *m.LastChapter))
	}
	if m.IsHentai {
		lines = append(lines, styles.WarningStyle.Render("Adult content"))
	}
	b.WriteString(strings.Join(lines, "\n"))

	links := make([]string, 0, len(m.Links))
	for _, link := range m.Links {
		links = append(links, link.Title+": "+styles.LinkStyle.Render(link.URL))
	}
	b.WriteString("\n")
	b.WriteString(styles.SectionStyle.Render("Links"))
	b.WriteString("\n")
	b.WriteString(styles.List(links, "no external links"))

	if len(m.Relation) > 0 {
		related := make([]string, 0, len(m.Relation))
		for _, rel := range m.Relation {
			label, err := rt.Normalizer.RelationLabel(rel)
			if err != nil {
				label = fmt.Sprintf("relation %d", rel.Type)
			}
			related = append(related, fmt.Sprintf("%s (%s, #%d)", rel.Title, label, rel.ID))
		}
		b.WriteString("\n")
		b.WriteString(styles.SectionStyle.Render("Related"))
		b.WriteString("\n")
		b.WriteString(styles.List(related, ""))
	}

	return b.String()
}

func init() {
	NormalizeCmd.AddCommand(mangaCmd)
}
