package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// NewGroundCmd creates the `ground` command: one-shot text grounding against
// the curated map.
func NewGroundCmd() *cobra.Command {
	var mostSpecificNS string

	cmd := &cobra.Command{
		Use:   "ground <text> [ids...]",
		Short: "Resolve a mention text, or pick the most specific of a set of identifiers",
		Long: "Resolve a single mention text against the curated grounding map:\n\n" +
			"  bioground ground MEK\n\n" +
			"With --most-specific, the arguments are identifiers instead and the one\n" +
			"lowest in the is-a hierarchy is printed:\n\n" +
			"  bioground ground --most-specific CHEBI 15996 33250",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := cliCtx.Engine(cmd.Context())
			if err != nil {
				return err
			}

			if mostSpecificNS != "" {
				ns := grounding.Namespace(mostSpecificNS)
				if !ns.Valid() || ns == grounding.NamespaceText {
					return apperrors.Newf(apperrors.ErrCodeNamespaceInvalid, "invalid namespace %q", mostSpecificNS)
				}
				id, err := engine.Mapping.MostSpecific(cmd.Context(), ns, args)
				if err != nil {
					return err
				}
				return PrintResult(cmd, map[string]string{"id": id})
			}

			res, err := engine.Mapping.Ground(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&mostSpecificNS, "most-specific", "", "treat arguments as identifiers in this namespace and reduce over the is-a hierarchy")
	return cmd
}

//Personal.AI order the ending
