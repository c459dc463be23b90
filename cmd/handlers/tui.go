package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"podcaster/internal/config"
	"podcaster/internal/tui"
)

// NewTUICmd creates the TUI command
func NewTUICmd() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "tui [topic]",
		Short: "Generate a script and browse it with its research brief",
		Long:  `Launch the Podcaster TUI to browse the outline, key facts and script for a topic.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args)
			if err != nil {
				return err
			}

			p := buildPipeline(config.Get())
			lines, err := p.Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to generate script: %w", err)
			}
			// Served from the cache filled by Generate.
			brief, _, err := p.Research(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to load research brief: %w", err)
			}

			return tui.Run(brief, lines)
		},
	}

	flags.bind(cmd)
	return cmd
}
