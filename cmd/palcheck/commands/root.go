package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/config"
	"github.com/mrled/palcheck/internal/input"
	"github.com/mrled/palcheck/internal/logger"
	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/repository"
	"github.com/mrled/palcheck/internal/usecase/check"
)

// app carries state resolved once per invocation and shared by subcommands
type app struct {
	configFile string
	cfg        *config.Config
	log        *slog.Logger
}

// NewRootCmd builds the palcheck command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "palcheck",
		Short: "Palcheck checks whether strings are palindromes",
		Long: `A command-line tool that checks whether strings read the same forwards and backwards.

Comparison is exact: case-sensitive, with whitespace and punctuation significant.
Characters are compared as Unicode code points by default, or as raw bytes with --unit byte.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "check", Title: "Checking:"},
		&cobra.Group{ID: "records", Title: "Recorded checks:"},
	)

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Config file (YAML, JSON or TOML)")
	addSettingsFlags(rootCmd)

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newPublishCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init(cmd *cobra.Command) error {
	a.log = logger.WithExecutable(logger.NewLogger(logger.CLIConfig()), "palcheck")
	logger.SetDefault(a.log)

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return UsageError{err}
	}
	a.cfg = cfg
	return nil
}

// newCheckUseCase builds the use case, attaching a repository when recording is enabled
func (a *app) newCheckUseCase(ctx context.Context) (*check.CheckUseCase, error) {
	limit, err := a.cfg.Limit()
	if err != nil {
		return nil, UsageError{err}
	}

	opts := []check.Option{check.WithLogger(a.log)}
	if a.cfg.RecordingEnabled() {
		repo, err := a.repository(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, check.WithRepository(repo))
	}
	return check.NewCheckUseCase(limit, opts...), nil
}

// historyUseCase builds a use case that reads the configured store regardless of --record
func (a *app) historyUseCase(ctx context.Context) (*check.CheckUseCase, error) {
	repo, err := a.repository(ctx)
	if err != nil {
		return nil, err
	}
	return check.NewCheckUseCase(input.DefaultLimit(), check.WithRepository(repo), check.WithLogger(a.log)), nil
}

func (a *app) repository(ctx context.Context) (model.CheckRepository, error) {
	return repository.NewRepository(ctx, a.cfg.Repository())
}
