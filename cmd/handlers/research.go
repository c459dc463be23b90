package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"podcaster/internal/config"
)

// NewResearchCmd creates the research command
func NewResearchCmd() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "research [topic]",
		Short: "Print the validated research brief for a topic as JSON",
		Long: `Research runs only the research stage and prints the normalized brief:
episode outline, key facts, terms, people, sources, hooks and speaker notes.
Every list field is present and truncated to its limit.

Examples:
  podcaster research "Coral bleaching" --duration 20
  podcaster research --topic "Jazz" --style storytelling --language French`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args)
			if err != nil {
				return err
			}

			brief, _, err := buildPipeline(config.Get()).Research(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("research failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(brief)
		},
	}

	flags.bind(cmd)
	return cmd
}
