package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"podcaster/internal/config"
	"podcaster/internal/render"
	"podcaster/internal/tui"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		flags     requestFlags
		asJSON    bool
		noColor   bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Research a topic and print a two-speaker podcast script",
		Long: `Generate runs the full pipeline: research brief, validation, then a
conversational Host/Guest script. If the model cannot write the dialogue,
a templated script built from the brief is printed instead.

Examples:
  podcaster generate "The history of tea" --duration 15
  podcaster generate --topic "Black holes" --style educational --json
  podcaster generate "Volcanoes" --output scripts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args)
			if err != nil {
				return err
			}

			lines, err := buildPipeline(config.Get()).Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to generate script: %w", err)
			}

			if outputDir != "" {
				path, err := render.RenderMarkdownScript(req.Topic, lines, outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Script saved to %s\n", path)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(lines)
			}
			_, err = fmt.Fprint(out, tui.FormatScript(lines, !noColor))
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the script as a JSON array")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable speaker colors")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Also write the script as markdown into this directory")

	return cmd
}
