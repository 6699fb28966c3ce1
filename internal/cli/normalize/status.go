package normalize

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mdcatalog/internal/cli/app"
	"mdcatalog/internal/cli/styles"
)

type codeLabel struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

// StatusCmd resolves a publication status code
var StatusCmd = &cobra.Command{
	Use:   "status <code>",
	Short: "Resolve a publication status code",
	Long:  "Print the label of a publication status code (1 Ongoing, 2 Completed, 3 Cancelled, 4 Hiatus)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := app.From(cmd)
		if err != nil {
			return err
		}

		code, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("status code must be an integer: %q", args[0])
		}

		label, err := rt.Normalizer.StatusLabel(code)
		if err != nil {
			return err
		}

		out := codeLabel{Code: code, Label: label}
		return rt.Render(out, func() string { return styles.KV(strconv.Itoa(code), label) })
	},
}
