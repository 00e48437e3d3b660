package commands

import (
	"github.com/spf13/cobra"

	"github.com/mrled/palcheck/internal/input"
)

// addSettingsFlags adds the flags that override configuration settings.
// Their values are read through config.Load, never directly.
func addSettingsFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.IntP("max-length", "m", input.DefaultMaxLength, "Maximum input length in units (0 for no limit)")
	flags.StringP("unit", "u", "rune", "Character unit to compare: rune or byte")
	flags.String("overlong", "reject", "What to do with input over the maximum length: reject or truncate")
	flags.Bool("record", true, "Record checks when a file or DynamoDB table is configured")
	flags.StringP("file", "f", "", "Path to JSON file for persistence")
	flags.StringP("dynamodb-table", "t", "", "DynamoDB table name for persistence")
	flags.StringP("dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}

// addPublishFlags adds the S3 destination flags
func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().String("s3-bucket", "", "S3 bucket to publish to")
	cmd.Flags().String("s3-key", "checks.json", "S3 object key to publish to")
	cmd.Flags().String("s3-endpoint", "", "S3 endpoint URL (optional, for S3-compatible stores)")
}
