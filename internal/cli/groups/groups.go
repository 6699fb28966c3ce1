package groups

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/pkg/models"
)

var GroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Scanlation group commands",
	Long:  "Resolve group ids of partial chapter lists",
}

type chapterGroups struct {
	ChapterID int      `json:"chapterId"`
	Chapter   string   `json:"chapter"`
	Groups    []string `json:"groups"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <partial-chapters-file>",
	Short: "Resolve group names of chapters",
	Long:  "Resolve the group names of every chapter in a partial chapter list, or of one chapter with --chapter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		only, _ := cmd.Flags().GetInt("chapter")

		list, err := app.ReadEnvelope[models.PartialChapters](cmd, args[0])
		if err != nil {
			return err
		}

		out := make([]chapterGroups, 0, len(list.Chapters))
		for _, ch := range list.Chapters {
			if only != 0 && ch.ID != only {
				continue
			}
			names, err := rt.Normalizer.ChapterGroups(ch, list.Groups)
			if err != nil {
				return err
			}
			out = append(out, chapterGroups{ChapterID: ch.ID, Chapter: ch.Chapter, Groups: names})
		}
		if only != 0 && len(out) == 0 {
			return models.NewLookupError(models.TableChapter, strconv.Itoa(only))
		}

		return rt.Render(out, func() string { return renderGroups(out) })
	},
}

func renderGroups(entries []chapterGroups) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		label := fmt.Sprintf("#%d", e.ChapterID)
		if e.Chapter != "" {
			label = "Ch. " + e.Chapter
		}
		lines = append(lines, styles.KV(label, styles.OrDash(strings.Join(e.Groups, ", "))))
	}
	if len(lines) == 0 {
		return styles.MutedStyle.Render("no chapters")
	}
	return strings.Join(lines, "\n")
}

func init() {
	resolveCmd.Flags().Int("chapter", 0, "Only resolve this chapter id")
	GroupsCmd.AddCommand(resolveCmd)
}
