package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
	appconfig "mdcatalog/pkg/config"
	"mdcatalog/pkg/models"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective mdcatalog configuration and lookup tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}
		return rt.Render(rt.Config, func() string { return renderConfig(rt.Config) })
	},
}

func renderConfig(cfg *appconfig.Config) string {
	parts := []string{
		styles.TitleStyle.Render("mdcatalog configuration"),
		styles.SectionStyle.Render("Server"),
		styles.KV("Address", cfg.Addr()),
		styles.KV("Mode", cfg.Server.Mode),
		styles.KV("Rate limit", fmt.Sprintf("%v/s (burst %d)", cfg.Server.RateLimit, cfg.Server.Burst)),
		styles.SectionStyle.Render("Logging"),
		styles.KV("Level", cfg.Logging.Level),
		styles.KV("Format", cfg.Logging.Format),
		styles.KV("Output", cfg.Logging.Output),
		styles.SectionStyle.Render("Lookup"),
		styles.KV("Languages", len(cfg.Lookup.Languages)),
	}

	codes := make([]int, 0, len(cfg.Lookup.Demographics))
	for code := range cfg.Lookup.Demographics {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	demographics := make([]string, 0, len(codes))
	for _, code := range codes {
		demographics = append(demographics, fmt.Sprintf("%d %s", code, cfg.Lookup.Demographics[code]))
	}
	parts = append(parts, styles.KV("Demographics", strings.Join(demographics, ", ")))

	labels := models.DefaultSiteLabels()
	for code, label := range cfg.Lookup.LinkLabels {
		labels[models.SiteCode(code)] = label
	}
	links := make([]string, 0, len(models.SiteCodes))
	for _, site := range models.SiteCodes {
		links = append(links, fmt.Sprintf("%s=%s", site, labels[site]))
	}
	parts = append(parts, styles.KV("Link labels", strings.Join(links, ", ")))

	return strings.Join(parts, "\n")
}

func init() {
	ConfigCmd.AddCommand(showCmd)
}
