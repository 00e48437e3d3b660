package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/model"
	"github.com/mrled/palcheck/internal/presenter"
)

type historyFlags struct {
	Results []string
	Sources []string
	Units   []string
	SortBy  string
	Format  string
}

func newHistoryCmd(a *app) *cobra.Command {
	var flags historyFlags

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recorded checks",
		GroupID: "records",
		Long: `Display checks recorded in the configured JSON file or DynamoDB table.

Examples:
  # Show all recorded checks
  palcheck history --file ./checks.json

  # Show only failed checks made from the prompt
  palcheck history --file ./checks.json --result not-palindrome --source prompt

  # Show checks sorted by input, one per line
  palcheck history --file ./checks.json --sort input --format compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch flags.Format {
			case "detailed", "compact", "json", "":
			default:
				return UsageError{fmt.Errorf("invalid --format %q (valid formats: detailed, compact, json)", flags.Format)}
			}

			if !a.cfg.Repository().IsPersistent() {
				return UsageError{fmt.Errorf("history needs --file or --dynamodb-table")}
			}
			uc, err := a.historyUseCase(ctx)
			if err != nil {
				return err
			}

			filter := model.RecordFilter{
				Results: flags.Results,
				Sources: flags.Sources,
				Units:   flags.Units,
			}
			records, err := uc.History(ctx, filter, flags.SortBy)
			if errors.Is(err, model.ErrInvalidQuery) {
				return UsageError{err}
			}
			if err != nil {
				return err
			}

			now := time.Now()
			switch flags.Format {
			case "json":
				return displayRecordsJSON(out, records)
			case "compact":
				displayRecordsCompact(out, records, now)
			default:
				displayRecordsDetailed(out, records, now)
			}

			if !filter.IsEmpty() {
				fmt.Fprintf(out, "Filters applied: %s\n", describeFilter(filter))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&flags.Results, "result", nil, "Filter by result: palindrome, not-palindrome")
	cmd.Flags().StringSliceVar(&flags.Sources, "source", nil, "Filter by source: cli, prompt, http")
	cmd.Flags().StringSliceVar(&flags.Units, "filter-unit", nil, "Filter by comparison unit: rune, byte")
	cmd.Flags().StringVar(&flags.SortBy, "sort", "", "Sort by: input, length, result, source, time (default newest first)")
	cmd.Flags().StringVar(&flags.Format, "format", "detailed", "Output format: detailed, compact or json")
	return cmd
}

func displayRecordsDetailed(out io.Writer, records []*model.CheckRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found matching the specified criteria.")
		return
	}

	for _, r := range records {
		fmt.Fprintf(out, "%s\n", r.ID)
		fmt.Fprintf(out, "  Input:   %q\n", r.Input)
		fmt.Fprintf(out, "  Result:  %s\n", presenter.Verdict(r.IsPalindrome))
		fmt.Fprintf(out, "  Unit:    %s (length %d)\n", r.Unit, r.Length())
		fmt.Fprintf(out, "  Source:  %s\n", r.Source)
		fmt.Fprintf(out, "  Checked: %s (rev: %d)\n", presenter.FormatAge(r.CheckTime, now, false), r.Rev)
	}
	fmt.Fprintf(out, "\nTotal records: %d\n", len(records))
}

func displayRecordsCompact(out io.Writer, records []*model.CheckRecord, now time.Time) {
	for _, r := range records {
		mark := "✗"
		if r.IsPalindrome {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %-8s %-6s %-9s %q\n",
			mark, shortID(r.ID), r.Source, presenter.FormatAge(r.CheckTime, now, true), r.Input)
	}
}

func displayRecordsJSON(out io.Writer, records []*model.CheckRecord) error {
	if records == nil {
		records = []*model.CheckRecord{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func describeFilter(f model.RecordFilter) string {
	var parts []string
	if len(f.Results) > 0 {
		parts = append(parts, "result="+strings.Join(f.Results, ","))
	}
	if len(f.Sources) > 0 {
		parts = append(parts, "source="+strings.Join(f.Sources, ","))
	}
	if len(f.Units) > 0 {
		parts = append(parts, "unit="+strings.Join(f.Units, ","))
	}
	return strings.Join(parts, " ")
}
