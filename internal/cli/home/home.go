package home

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/pkg/models"
)

var HomeCmd = &cobra.Command{
	Use:   "home <file>",
	Short: "Print the site home feeds",
	Long:  "Read a home envelope and print the announcement, latest updates, follows feed and top lists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		home, err := app.ReadEnvelope[models.Home](cmd, args[0])
		if err != nil {
			return err
		}

		window, _ := cmd.Flags().GetString("window")
		top, err := home.TopChapters.Window(models.TopChapterWindow(window))
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		return rt.Render(home, func() string { return renderHome(home, top, limit) })
	},
}

func renderHome(home models.Home, top []models.HomeTopChapter, limit int) string {
	var parts []string

	if home.Announcement != nil {
		text := home.Announcement.Text
		if home.Announcement.URL != nil {
			text += " " + styles.LinkStyle.Render(*home.Announcement.URL)
		}
		parts = append(parts, styles.WarningStyle.Render(text))
	}

	parts = append(parts, styles.SectionStyle.Render("Latest updates"), styles.List(updateLines(home.LatestUpdates.All, limit), "nothing new"))

	parts = append(parts, styles.SectionStyle.Render("Follows"))
	follows := home.LatestUpdates.Follows
	if follows.IsPlaceholder() {
		parts = append(parts, styles.ListItemStyle.Render(styles.MutedStyle.Render(follows.Placeholder())))
	} else {
		parts = append(parts, styles.List(updateLines(follows.Updates(), limit), "no followed updates"))
	}

	chapters := make([]string, 0, len(top))
	for _, ch := range truncate(top, limit) {
		chapters = append(chapters, fmt.Sprintf("%s Ch. %s (%d views)", ch.Title, ch.Chapter, ch.Views))
	}
	parts = append(parts, styles.SectionStyle.Render("Top chapters"), styles.List(chapters, "none"))

	manga := make([]string, 0, len(home.TopManga.Follows))
	for _, m := range truncate(home.TopManga.Follows, limit) {
		manga = append(manga, fmt.Sprintf("%s (%d follows, %.2f)", m.Title, m.Follows, m.Rating))
	}
	parts = append(parts, styles.SectionStyle.Render("Most followed"), styles.List(manga, "none"))

	return strings.Join(parts, "\n")
}

func updateLines(updates []models.HomeUpdate, limit int) []string {
	lines := make([]string, 0, len(updates))
	for _, u := range truncate(updates, limit) {
		line := fmt.Sprintf("%s Ch. %s", u.Title, u.Chapter)
		if u.Group.Name != "" {
			line += " [" + u.Group.Name + "]"
		}
		if u.Uploaded != "" {
			line += " " + styles.MutedStyle.Render(u.Uploaded)
		}
		lines = append(lines, line)
	}
	return lines
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func init() {
	HomeCmd.Flags().String("window", string(models.WindowDay), "Top chapters window (six_hours, day, week)")
	HomeCmd.Flags().Int("limit", 10, "Entries per section, 0 for all")
}
