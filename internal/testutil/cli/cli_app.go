package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/cafe/internal/app"
	"github.com/thenoetrevino/cafe/internal/cli"
	"github.com/thenoetrevino/cafe/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance
// This properly injects the app context so commands can access the test database
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	testutil.Quiet(cmd, args...)
	ctxWithApp := cli.WithApp(ctx, testApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})
	return output, executeErr
}

// Data extracts the "data" object of a successful JSON response
func Data(t *testing.T, output string) map[string]any {
	t.Helper()
	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success, got: %s", output)
	}
	data, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected data object, got: %s", output)
	}
	return data
}

// List extracts the "data" array of a successful JSON response
func List(t *testing.T, output string) []any {
	t.Helper()
	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Fatalf("Expected success, got: %s", output)
	}
	data, _ := result["data"].([]any)
	return data
}

// ID reads the numeric "id" field of a JSON object
func ID(t *testing.T, data map[string]any) int {
	t.Helper()
	id, ok := data["id"].(float64)
	if !ok {
		t.Fatalf("Expected numeric id, got %v", data["id"])
	}
	return int(id)
}
