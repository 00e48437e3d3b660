package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/palcheck/internal/model"
)

// run executes palcheck with args and stdin, returning stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"MAX_LENGTH", "UNIT", "OVERLONG", "RECORD", "FILE", "DYNAMODB_TABLE", "DYNAMODB_ENDPOINT", "S3_BUCKET", "S3_KEY", "S3_ENDPOINT"} {
		t.Setenv("PALCHECK_"+key, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		expected string
	}{
		{"racecar", "racecar\n", "Is Palindrome\n"},
		{"hello", "hello\n", "Not a Palindrome\n"},
		{"single char", "a", "Is Palindrome\n"},
		{"two chars", "ab\n", "Not a Palindrome\n"},
		{"abba", "abba\n", "Is Palindrome\n"},
		{"only first word is read", "  abba hello\n", "Is Palindrome\n"},
		{"case sensitive", "Aba\n", "Not a Palindrome\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, "prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPrompt_ShowPromptAlways(t *testing.T) {
	out, err := run(t, "noon\n", "prompt", "--show-prompt", "always")
	require.NoError(t, err)
	assert.Equal(t, "Enter a string: Is Palindrome\n", out)
}

func TestPrompt_NoInput(t *testing.T) {
	_, err := run(t, "   \n", "prompt")
	require.Error(t, err)
	assert.Equal(t, exitInputError, ExitCode(err))
}

func TestPrompt_Overlong(t *testing.T) {
	_, err := run(t, strings.Repeat("a", 100), "prompt")
	require.Error(t, err)
	assert.Equal(t, exitInputError, ExitCode(err))
	assert.Contains(t, err.Error(), "input too long")

	out, err := run(t, "abbaXYZ", "prompt", "--max-length", "4", "--overlong", "truncate")
	require.NoError(t, err)
	assert.Equal(t, "Is Palindrome\n", out)
}

func TestPrompt_InvalidShowPrompt(t *testing.T) {
	_, err := run(t, "a", "prompt", "--show-prompt", "sometimes")
	require.Error(t, err)
	var usageErr UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestCheck_SingleArgument(t *testing.T) {
	out, err := run(t, "", "check", "racecar")
	require.NoError(t, err)
	assert.Equal(t, "Is Palindrome\n", out)
}

func TestCheck_MultipleArguments(t *testing.T) {
	out, err := run(t, "", "check", "racecar", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "racecar: Is Palindrome\nhello: Not a Palindrome\n: Is Palindrome\n", out)
}

func TestCheck_Unit(t *testing.T) {
	out, err := run(t, "", "check", "--unit", "byte", "αβα")
	require.NoError(t, err)
	assert.Equal(t, "Not a Palindrome\n", out)

	out, err = run(t, "", "check", "αβα")
	require.NoError(t, err)
	assert.Equal(t, "Is Palindrome\n", out)
}

func TestCheck_ExitCode(t *testing.T) {
	_, err := run(t, "", "check", "--exit-code", "abba", "hello")
	require.Error(t, err)
	assert.Equal(t, exitNotPalindrome, ExitCode(err))

	_, err = run(t, "", "check", "--exit-code", "abba", "noon")
	assert.NoError(t, err)
}

func TestCheck_InvalidUnit(t *testing.T) {
	_, err := run(t, "", "check", "--unit", "word", "abba")
	require.Error(t, err)
	assert.Equal(t, exitInputError, ExitCode(err))
}

func TestCheck_RequiresArgument(t *testing.T) {
	_, err := run(t, "", "check")
	assert.Error(t, err)
}

func TestHistory_RecordsChecksToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")

	_, err := run(t, "", "check", "--file", file, "racecar", "hello")
	require.NoError(t, err)
	_, err = run(t, "noon\n", "prompt", "--file", file)
	require.NoError(t, err)

	out, err := run(t, "", "history", "--file", file, "--format", "json")
	require.NoError(t, err)

	var records []*model.CheckRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	out, err = run(t, "", "history", "--file", file, "--format", "json", "--result", "palindrome", "--sort", "input")
	require.NoError(t, err)
	records = nil
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "noon", records[0].Input)
	assert.Equal(t, model.SourcePrompt, records[0].Source)
	assert.Equal(t, "racecar", records[1].Input)
	assert.Equal(t, model.SourceCLI, records[1].Source)
}

func TestHistory_RecordFlagDisablesRecording(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")

	_, err := run(t, "", "check", "--file", file, "--record=false", "racecar")
	require.NoError(t, err)

	out, err := run(t, "", "history", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "No records found")
}

func TestHistory_DetailedAndCompact(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")
	_, err := run(t, "", "check", "--file", file, "racecar")
	require.NoError(t, err)

	out, err := run(t, "", "history", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, `Input:   "racecar"`)
	assert.Contains(t, out, "Result:  Is Palindrome")
	assert.Contains(t, out, "Total records: 1")

	out, err = run(t, "", "history", "--file", file, "--format", "compact", "--source", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, `✓`)
	assert.Contains(t, out, `"racecar"`)
	assert.Contains(t, out, "Filters applied: source=cli")
}

func TestHistory_RequiresStore(t *testing.T) {
	_, err := run(t, "", "history")
	require.Error(t, err)
	assert.Equal(t, exitInputError, ExitCode(err))
}

func TestPublish_DryRun(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")
	_, err := run(t, "", "check", "--file", file, "racecar", "hello")
	require.NoError(t, err)

	out, err := run(t, "", "publish", "--file", file, "--s3-bucket", "site", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "Would publish 2 record(s) to s3://site/checks.json\n", out)
}

func TestPublish_RequiresBucket(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")
	_, err := run(t, "", "publish", "--file", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--s3-bucket")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 7, ExitCode(ExitWithCode(7, errors.New("boom"))))
	assert.Equal(t, exitInputError, ExitCode(UsageError{errors.New("bad flag")}))
	assert.Nil(t, ExitWithCode(3, nil))
}

func TestHistory_RejectsUnknownValues(t *testing.T) {
	file := filepath.Join(t.TempDir(), "checks.json")
	_, err := run(t, "", "check", "--file", file, "racecar")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
	}{
		{"result", []string{"--result", "maybe"}},
		{"source", []string{"--source", "email"}},
		{"unit", []string{"--filter-unit", "word"}},
		{"sort", []string{"--sort", "bogus"}},
		{"format", []string{"--format", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"history", "--file", file}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, exitInputError, ExitCode(err))
			assert.Empty(t, out)
		})
	}
}
