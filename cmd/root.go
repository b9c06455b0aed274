// Package cmd implements the autostruct CLI, a thin shell around the
// structure engine.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/autostruct/autostruct/cmd/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "autostruct",
	Short: "Generate project directory structures from ASCII, JSON or YAML descriptions",
	Long: `autostruct turns a textual description of a project layout — an
indented ASCII tree, a JSON document or a YAML document — into real
directories and empty files, with validation and a dry-run preview.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
	},
	SilenceUsage: true,
}

func init() {
	config.AddGlobalFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// readInput returns the description text and, when read from a file, its
// path (for the advisory extension-based format default).
func readInput(args []string) (text, src string, err error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", err
	}
	return string(data), "", nil
}
