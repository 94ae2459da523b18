package handler

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// ============================================================================
// Test Helpers
// ============================================================================

// createTestCommand creates a mock cobra.Command with specified flags
func createTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
	return cmd
}

// ============================================================================
// ParseID Tests
// ============================================================================

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagValue int
		wantErr   bool
		errMsg    string
	}{
		{name: "valid ID", flagValue: 42},
		{name: "valid ID = 1", flagValue: 1},
		{name: "zero ID", flagValue: 0, wantErr: true, errMsg: "must be greater than 0"},
		{name: "negative ID", flagValue: -1, wantErr: true, errMsg: "must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().Int("id", tt.flagValue, "record id")

			result, err := NewFlagParser(cmd).ParseID("id")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.flagValue {
				t.Errorf("ParseID() = %d, want %d", result, tt.flagValue)
			}
		})
	}
}

func TestParseID_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := NewFlagParser(createTestCommand()).ParseID("missing")
	if err == nil || !strings.Contains(err.Error(), "failed to parse missing flag") {
		t.Errorf("expected parse failure, got %v", err)
	}
}

// ============================================================================
// ParseString Tests
// ============================================================================

func TestParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "plain", value: "Oat milk", want: "Oat milk"},
		{name: "trimmed", value: "  Beans ", want: "Beans"},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().String("name", "", "name")
			if err := cmd.Flags().Set("name", tt.value); err != nil {
				t.Fatalf("failed to set flag: %v", err)
			}

			got, err := NewFlagParser(cmd).ParseString("name")
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParseString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// ParseDate / ParseOneOf Tests
// ============================================================================

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   *string
		wantErr bool
	}{
		{name: "unset passes", value: nil},
		{name: "valid", value: strPtr("2024-03-01")},
		{name: "wrong layout", value: strPtr("03/01/2024"), wantErr: true},
		{name: "impossible day", value: strPtr("2024-02-30"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().String("from", "", "start date")
			if tt.value != nil {
				if err := cmd.Flags().Set("from", *tt.value); err != nil {
					t.Fatalf("failed to set flag: %v", err)
				}
			}

			err := NewFlagParser(cmd).ParseDate("from")
			if tt.wantErr != (err != nil) {
				t.Errorf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOneOf(t *testing.T) {
	t.Parallel()

	allowed := []string{"pending", "received", "cancelled"}
	for _, value := range []string{"pending", " Received "} {
		cmd := createTestCommand()
		cmd.Flags().String("status", "", "status")
		_ = cmd.Flags().Set("status", value)
		if err := NewFlagParser(cmd).ParseOneOf("status", allowed); err != nil {
			t.Errorf("ParseOneOf(%q) unexpected error: %v", value, err)
		}
	}

	cmd := createTestCommand()
	cmd.Flags().String("status", "", "status")
	_ = cmd.Flags().Set("status", "lost")
	if err := NewFlagParser(cmd).ParseOneOf("status", allowed); err == nil {
		t.Error("expected error for unknown status")
	}
}

// ============================================================================
// RequireAny / Exclusive / OutputFormats Tests
// ============================================================================

func TestRequireAny(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("name", "", "")
	cmd.Flags().Float64("price", 0, "")

	parser := NewFlagParser(cmd)
	err := parser.RequireAny("name", "price")
	if err == nil || !strings.Contains(err.Error(), "--name, --price") {
		t.Fatalf("expected missing-flags error, got %v", err)
	}

	_ = cmd.Flags().Set("price", "3.5")
	if err := parser.RequireAny("name", "price"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExclusive(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().Int("supplier", 0, "")
	cmd.Flags().Bool("no-supplier", false, "")
	parser := NewFlagParser(cmd)

	_ = cmd.Flags().Set("supplier", "2")
	if err := parser.Exclusive("supplier", "no-supplier"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = cmd.Flags().Set("no-supplier", "true")
	if err := parser.Exclusive("supplier", "no-supplier"); err == nil {
		t.Error("expected error when both flags are set")
	}
}

func TestOutputFormats(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	AddOutputFlags(cmd)
	_ = cmd.Flags().Set("json", "true")

	jsonOutput, quiet, err := NewFlagParser(cmd).OutputFormats()
	if err != nil || !jsonOutput || quiet {
		t.Fatalf("OutputFormats() = %v, %v, %v", jsonOutput, quiet, err)
	}

	_ = cmd.Flags().Set("quiet", "true")
	if _, _, err := NewFlagParser(cmd).OutputFormats(); err == nil {
		t.Error("expected error when --json and --quiet are combined")
	}
}

func strPtr(s string) *string { return &s }
