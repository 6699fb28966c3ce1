package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/config"
	"mdcatalog/internal/cli/groups"
	"mdcatalog/internal/cli/home"
	"mdcatalog/internal/cli/normalize"
	"mdcatalog/internal/cli/styles"
	"mdcatalog/internal/cli/tags"
)

var rootCmd = &cobra.Command{
	Use:           "mdcatalog",
	Short:         "Manga catalog record normalizer",
	Long:          "mdcatalog formats manga catalog API envelopes read from files for display or JSON output",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return app.Setup(cmd, viper.GetViper())
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdcatalog.yaml or ~/.config/mdcatalog/config.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "print JSON instead of styled text")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("MDCATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag(app.KeyConfig, rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(app.KeyJSON, rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag(app.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(normalize.NormalizeCmd)
	rootCmd.AddCommand(normalize.LinksCmd)
	rootCmd.AddCommand(normalize.StatusCmd)
	rootCmd.AddCommand(tags.TagsCmd)
	rootCmd.AddCommand(groups.GroupsCmd)
	rootCmd.AddCommand(home.HomeCmd)
	rootCmd.AddCommand(config.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
