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

var chapterCmd = &cobra.Command{
	Use:   "chapter <file>",
	Short: "Format a chapter",
	Long:  "Format a chapter envelope and expand its pages against the primary and fallback servers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		chapter, err := app.ReadEnvelope[models.Chapter](cmd, args[0])
		if err != nil {
			return err
		}

		formatted, err := rt.Normalizer.Chapter(chapter)
		logger.Conversion("chapter", chapter.ID, err)
		if err != nil {
			return err
		}

		fallback, _ := cmd.Flags().GetBool("fallback")
		return rt.Render(formatted, func() string { return renderChapter(rt, formatted, fallback) })
	},
}

func renderChapter(rt *app.Runtime, ch *models.FormattedChapter, fallback bool) string {
	var b strings.Builder

	heading := ch.MangaTitle
	if ch.Chapter.Chapter != "" {
		heading += " - Ch. " + ch.Chapter.Chapter
	}
	b.WriteString(styles.TitleStyle.Render(heading))
	b.WriteString("\n")
	if ch.Title != "" {
		b.WriteString(styles.SubtitleStyle.Render(ch.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	availability := styles.SuccessStyle.Render("Available")
	if ch.Status == models.ChapterUnavailable {
		availability = styles.ErrorStyle.Render("Unavailable")
	}

	lines := []string{
		styles.KV("ID", ch.ID),
		styles.KV("Status", availability),
		styles.KV("Title ID", ch.MangaID),
		styles.KV("Volume", styles.OrDash(ch.Volume)),
		styles.KV("Language", ch.LanguageName),
		styles.KV("Groups", styles.OrDash(strings.Join(ch.GroupNames(), ", "))),
		styles.KV("Published", utils.FormatTimestamp(ch.Timestamp, rt.Now())),
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	if ch.Status == models.ChapterUnavailable {
		b.WriteString(styles.ErrorStyle.Render("Chapter is unavailable"))
		return b.String()
	}

	pages := ch.PageURLs
	section := fmt.Sprintf("Pages (%d)", len(pages))
	if fallback {
		pages = ch.FallbackPages
		section = fmt.Sprintf("Fallback pages (%d)", len(pages))
	}
	b.WriteString(styles.SectionStyle.Render(section))
	b.WriteString("\n")
	b.WriteString(styles.List(pages, "no pages"))

	return b.String()
}

func init() {
	chapterCmd.Flags().Bool("fallback", false, "List page URLs on the fallback server")
	NormalizeCmd.AddCommand(chapterCmd)
}
