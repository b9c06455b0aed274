package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/autostruct/autostruct/cmd/config"
	"github.com/autostruct/autostruct/internal/archive"
	"github.com/autostruct/autostruct/internal/engine"
	"github.com/autostruct/autostruct/internal/materialize"
	"github.com/autostruct/autostruct/internal/parser"
	"github.com/autostruct/autostruct/internal/validate"
)

func newCreateCmd() *cobra.Command {
	var (
		formatName string
		basePath   string
		dryRun     bool
		archiveOut string
	)

	cmd := &cobra.Command{
		Use:   "create [file]",
		Short: "Create the described structure on disk",
		Long: `Parse a structure description and create it under the base directory.

Reads the description from the given file, or from stdin when no file is
given. In ASCII input folders end with "/"; JSON and YAML use nested
mappings with null values for files.

Examples:
  autostruct create layout.txt -b ~/projects
  cat tree.txt | autostruct create --dry-run
  autostruct create project.yaml -f yaml --archive project.zip`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := config.NewLogger(verbose)

			input, src, err := readInput(args)
			if err != nil {
				return err
			}

			// Flag wins over the advisory extension, which wins over
			// the configured default.
			if formatName == "" {
				formatName = config.DefaultFormat()
				if src != "" {
					formatName = parser.FormatForPath(src).String()
				}
			}
			format, err := parser.ParseFormat(formatName)
			if err != nil {
				return err
			}

			if basePath == "" {
				basePath = config.BaseDir()
			}
			absBase, err := filepath.Abs(basePath)
			if err != nil {
				return fmt.Errorf("resolve base path: %w", err)
			}

			if !cmd.Flags().Changed("dry-run") {
				dryRun = config.DefaultDryRun()
			}

			eng := engine.New(engine.WithLogger(log))
			res, err := eng.Run(engine.Request{
				Format:   format,
				Input:    input,
				BasePath: absBase,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			if len(res.Violations) > 0 {
				printViolations(cmd, res.Violations)
				return fmt.Errorf("%d validation issue(s)", len(res.Violations))
			}

			failed := 0
			for _, a := range res.Actions {
				if a.Op == materialize.OpError {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), a)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "dry run: nothing was written")
			}
			if failed > 0 {
				log.Warnf("%d node(s) failed to materialize", failed)
			}

			if archiveOut != "" {
				if err := writeArchive(archiveOut, res); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "archived structure to %s\n", archiveOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "input format: ascii, json or yaml (default from file extension or config)")
	cmd.Flags().StringVarP(&basePath, "base", "b", "", "base directory to create the structure under")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview actions without writing anything")
	cmd.Flags().StringVar(&archiveOut, "archive", "", "also write the structure as a zip archive to this path")
	return cmd
}

func printViolations(cmd *cobra.Command, violations []validate.Violation) {
	fmt.Fprintln(cmd.ErrOrStderr(), "structure validation failed:")
	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", v)
	}
}

func writeArchive(path string, res engine.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()
	if err := archive.WriteZip(f, res.Tree); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}
