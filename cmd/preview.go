package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/autostruct/autostruct/cmd/config"
	"github.com/autostruct/autostruct/internal/parser"
	"github.com/autostruct/autostruct/internal/structure"
	"github.com/autostruct/autostruct/internal/validate"
)

func newPreviewCmd() *cobra.Command {
	var (
		formatName string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Parse and validate a description without touching the filesystem",
		Long: `Parse a structure description, print the resulting model and report
validation issues. Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, src, err := readInput(args)
			if err != nil {
				return err
			}

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

			tree, err := parser.Parse(format, input)
			if err != nil {
				return err
			}

			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(tree.Value(), &oj.Options{Sort: true, Indent: 2}))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), structure.Render(tree))
			}

			if violations := validate.Check(tree); len(violations) > 0 {
				printViolations(cmd, violations)
				return fmt.Errorf("%d validation issue(s)", len(violations))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "input format: ascii, json or yaml (default from file extension or config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed model as JSON")
	return cmd
}
