package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"podcaster/internal/styles"
)

// NewStylesCmd creates the styles command
func NewStylesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the available show styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				catalog := make(map[string]string)
				for _, id := range styles.IDs() {
					catalog[id] = styles.Guide(id)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}

			for _, id := range styles.IDs() {
				marker := ""
				if id == styles.Default {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s%s\n  %s\n", id, marker, styles.Guide(id))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
