package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/biotext/bioground/internal/domain/agent"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// readStatements decodes a statement array from path, or stdin when path is
// "-".
func readStatements(cmd *cobra.Command, path string) ([]*agent.Statement, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "failed to open statements file")
		}
		defer f.Close()
		r = f
	}

	var stmts []*agent.Statement
	if err := json.NewDecoder(r).Decode(&stmts); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStatementMalformed, "failed to decode statements")
	}
	return stmts, nil
}

// writeStatements encodes a statement array to path, or stdout when path is
// "-".
func writeStatements(cmd *cobra.Command, path string, stmts []*agent.Statement) error {
	var w io.Writer
	if path == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(path)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create output file")
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stmts)
}

// NewMapCmd creates the `map` command: batch re-grounding of a statement
// corpus.
func NewMapCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Re-ground a statement batch against the curated grounding map",
		Long: "Read a JSON array of statements, re-ground every mention, and write the\n" +
			"mapped batch.  Statements whose text is curated to the no-grounding\n" +
			"sentinel are dropped; the drop count goes to stderr.",
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

			res, err := engine.Mapping.MapBatch(cmd.Context(), stmts)
			if err != nil {
				return err
			}
			if err := writeStatements(cmd, outputPath, res.Statements); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "mapped %d/%d statements (%d dropped)\n",
				len(res.Statements), res.Total, res.Dropped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	cmd.Flags().StringVarP(&outputPath, "out", "O", "-", "output statements JSON (\"-\" for stdout)")
	return cmd
}

// NewRenameCmd creates the `rename` command: re-standardize display names
// without re-grounding.
func NewRenameCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Re-standardize agent display names from their identifier records",
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
			out := engine.Mapping.Rename(cmd.Context(), stmts)
			return writeStatements(cmd, outputPath, out)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input statements JSON (\"-\" for stdin)")
	cmd.Flags().StringVarP(&outputPath, "out", "O", "-", "output statements JSON (\"-\" for stdout)")
	return cmd
}

//Personal.AI order the ending
