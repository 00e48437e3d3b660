package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/presenter"
)

func newCheckCmd(a *app) *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:     "check <input> [input...]",
		Short:   "Check whether each argument is a palindrome",
		GroupID: "check",
		Long: `Check prints "Is Palindrome" or "Not a Palindrome" for each argument.

With more than one argument each line is prefixed with the input it describes.
Inputs longer than --max-length are rejected, or cut down with --overlong truncate.

Example:
  palcheck check racecar
  palcheck check racecar hello abba
  palcheck check --unit byte --exit-code "αβα"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			uc, err := a.newCheckUseCase(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, arg := range args {
				result, err := uc.Check(ctx, arg, "", model.SourceCLI)
				if result == nil {
					return ExitWithCode(exitInputError, fmt.Errorf("cannot check %q: %w", arg, err))
				}
				if err != nil {
					a.log.Warn("Check was not recorded", slog.String("error", err.Error()))
				}
				if result.Truncated {
					a.log.Warn("Input truncated", slog.String("checked", result.Record.Input))
				}

				verdict := presenter.Verdict(result.Record.IsPalindrome)
				if len(args) == 1 {
					fmt.Fprintln(out, verdict)
				} else {
					fmt.Fprintf(out, "%s: %s\n", arg, verdict)
				}
				if !result.Record.IsPalindrome {
					failed++
				}
			}

			if exitCode && failed > 0 {
				return ExitWithCode(exitNotPalindrome, fmt.Errorf("%d of %d inputs are not palindromes", failed, len(args)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 if any input is not a palindrome")
	return cmd
}
