package normalize

import "github.com/spf13/cobra"

var NormalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Format catalog records",
	Long:  "Read a catalog envelope from a file (or - for stdin) and print its formatted form",
}
