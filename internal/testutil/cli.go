package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// CaptureOutput returns everything fn writes to stdout. Stdout is restored
// even when fn fails the test.
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	func() {
		defer func() {
			_ = w.Close()
			os.Stdout = stdout
		}()
		fn()
	}()
	return <-done
}

// Quiet sets args on cmd and stops cobra from printing usage or errors,
// which the commands already report themselves.
func Quiet(cmd *cobra.Command, args ...string) *cobra.Command {
	cmd.SetArgs(args)
	cmd.SilenceUsage, cmd.SilenceErrors = true, true
	return cmd
}

// ParseJSON decodes one JSON envelope printed by a command
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, output)
	}
	return result
}

// ErrorCode returns error.code from a failed JSON envelope
func ErrorCode(t *testing.T, output string) string {
	t.Helper()

	result := ParseJSON(t, output)
	if result["success"] != false {
		t.Fatalf("expected a failure envelope, got: %s", output)
	}
	e, _ := result["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}
