package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand checks configuration, content, and the flow
// registry without serving traffic. Registry construction is where
// missing handlers and conflicting triggers surface, so a clean
// validate run means dispatch cannot hit a configuration error later.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and flow tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd.Context(), opts.Config)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			defer eng.close()

			fmt.Fprintf(cmd.OutOrStdout(), "configuration OK\n")
			fmt.Fprintf(cmd.OutOrStdout(), "flows: %d (%v)\n",
				len(eng.registry.Flows()), eng.registry.Flows())
			fmt.Fprintf(cmd.OutOrStdout(), "symptom categories: %d\n", len(eng.content.Categories))
			fmt.Fprintf(cmd.OutOrStdout(), "medicines: %d\n", len(eng.content.Medicines))
			return nil
		},
	}
}
