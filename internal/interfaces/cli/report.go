package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/biotext/bioground/internal/application/reporting"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// NewReportCmd creates the `report` command group for curation reports over a
// statement corpus.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Curation reports over a statement corpus",
	}
	cmd.AddCommand(
		newReportFrequencyCmd(),
		newReportUngroundedCmd(),
		newReportSentencesCmd(),
		newReportProteinMapCmd(),
	)
	return cmd
}

func newReportFrequencyCmd() *cobra.Command {
	var inputPath, csvPath string

	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Grounded mention texts with their identifier records, by frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := cliCtx.Engine(cmd.Context())
			if err != nil {
				return err
			}
			stmts, err := readStatements(cmd, inputPath)
			if err != nil {
				return err
			}

			rows := engine.Reporting.TextsWithGrounding(stmts)
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create csv file")
				}
				defer f.Close()
				return reporting.WriteBaseMap(f, rows)
			}
			return PrintResult(cmd, rows)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write rows in grounding-map CSV layout to this file")
	return cmd
}

func newReportUngroundedCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "ungrounded",
		Short: "Mention texts with no grounding, by frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := cliCtx.Engine(cmd.Context())
			if err != nil {
				return err
			}
			stmts, err := readStatements(cmd, inputPath)
			if err != nil {
				return err
			}
			return PrintResult(cmd, engine.Reporting.UngroundedTexts(stmts))
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	return cmd
}

func newReportSentencesCmd() *cobra.Command {
	var inputPath, csvPath string
	var max int

	cmd := &cobra.Command{
		Use:   "sentences <text>",
		Short: "Evidence sentences for statements mentioning a text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := cliCtx.Engine(cmd.Context())
			if err != nil {
				return err
			}
			stmts, err := readStatements(cmd, inputPath)
			if err != nil {
				return err
			}

			rows := engine.Reporting.SentencesForText(args[0], stmts, max)
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create csv file")
				}
				defer f.Close()
				return reporting.WriteSentences(f, rows)
			}
			return PrintResult(cmd, rows)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write rows as CSV to this file")
	cmd.Flags().IntVar(&max, "max", 0, "maximum sentences to collect (0 = unlimited)")
	return cmd
}

func newReportProteinMapCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "protein-map",
		Short: "Derive candidate grounding-map entries from trusted protein groundings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			engine, err := cliCtx.Engine(cmd.Context())
			if err != nil {
				return err
			}
			stmts, err := readStatements(cmd, inputPath)
			if err != nil {
				return err
			}
			return PrintResult(cmd, engine.Reporting.ProteinMap(stmts))
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	return cmd
}

//Personal.AI order the ending
