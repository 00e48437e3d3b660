package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/adapter/s3materializedview"
	"github.com/mrled/palcheck/internal/awsclient"
)

func newPublishCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "publish",
		Short:   "Publish recorded checks to S3 as a JSON document",
		GroupID: "records",
		Long: `Publish reads every recorded check and uploads them as one JSON array to S3,
newest first, in the same format the --file store uses.

Example:
  palcheck publish --dynamodb-table checks --s3-bucket my-site --s3-key data/checks.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !a.cfg.Repository().IsPersistent() {
				return UsageError{fmt.Errorf("publish needs --file or --dynamodb-table")}
			}
			if a.cfg.S3Bucket == "" {
				return UsageError{fmt.Errorf("publish needs --s3-bucket")}
			}

			repo, err := a.repository(ctx)
			if err != nil {
				return err
			}
			records, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			if dryRun {
				fmt.Fprintf(out, "Would publish %d record(s) to s3://%s/%s\n", len(records), a.cfg.S3Bucket, a.cfg.S3Key)
				return nil
			}

			awsCfg, err := awsclient.LoadConfig(ctx)
			if err != nil {
				return err
			}
			view := s3materializedview.New(awsclient.NewS3(awsCfg, a.cfg.S3Endpoint), a.cfg.S3Bucket, a.cfg.S3Key)
			if err := view.Save(ctx, records); err != nil {
				return err
			}

			fmt.Fprintf(out, "Published %d record(s) to s3://%s/%s\n", len(records), a.cfg.S3Bucket, a.cfg.S3Key)
			return nil
		},
	}

	addPublishFlags(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "r", false, "Show what would be published without uploading")
	return cmd
}
