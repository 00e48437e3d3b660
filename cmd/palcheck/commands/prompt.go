package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/input"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/presenter"
)

const promptText = "Enter a string: "

func newPromptCmd(a *app) *cobra.Command {
	var showPrompt string

	cmd := &cobra.Command{
		Use:     "prompt",
		Short:   "Read one word from standard input and check it",
		GroupID: "check",
		Long: `Prompt reads one whitespace-delimited word from standard input and prints
"Is Palindrome" or "Not a Palindrome".

The "Enter a string: " prompt is shown when standard input is a terminal;
use --show-prompt always or never to override.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			show, err := shouldPrompt(showPrompt, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if show {
				fmt.Fprint(out, promptText)
			}

			token, err := input.NewReader(cmd.InOrStdin()).Next()
			if errors.Is(err, input.ErrNoInput) {
				return ExitWithCode(exitInputError, fmt.Errorf("no input provided"))
			}
			if err != nil {
				return ExitWithCode(exitInputError, err)
			}

			uc, err := a.newCheckUseCase(ctx)
			if err != nil {
				return err
			}

			result, err := uc.Check(ctx, token, "", model.SourcePrompt)
			if result == nil {
				return ExitWithCode(exitInputError, err)
			}
			if err != nil {
				a.log.Warn("Check was not recorded", slog.String("error", err.Error()))
			}
			if result.Truncated {
				a.log.Warn("Input truncated", slog.String("checked", result.Record.Input))
			}

			fmt.Fprintln(out, presenter.Verdict(result.Record.IsPalindrome))
			return nil
		},
	}

	cmd.Flags().StringVar(&showPrompt, "show-prompt", "auto", "Show the input prompt: auto, always or never")
	return cmd
}

func shouldPrompt(mode string, in any) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := in.(*os.File)
		return ok && input.IsInteractive(f), nil
	default:
		return false, UsageError{fmt.Errorf("invalid --show-prompt value %q (valid values: auto, always, never)", mode)}
	}
}
