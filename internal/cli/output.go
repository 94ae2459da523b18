package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/cafe/internal/cli/styles"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Pretty is implemented by results that know how to print themselves for humans
type Pretty interface {
	Pretty() string
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
		if idsGetter, ok := data.(interface{ GetIDs() []int }); ok {
			for _, id := range idsGetter.GetIDs() {
				fmt.Printf("%d\n", id)
			}
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error:")+" "+message)
	if suggestion != "" {
		fmt.Fprintln(os.Stderr, styles.SubtleStyle.Render("Suggestion: "+suggestion))
	}
	return nil
}

// Report prints err in the current mode and marks it as reported, so the
// entry point only has to pick the exit code.
func (f *OutputFormatter) Report(err error) error {
	if err == nil {
		return nil
	}
	if fmtErr := f.ErrorWithSuggestion(ErrorCode(err), err.Error(), suggestionFor(err)); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &reportedError{err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if p, ok := data.(Pretty); ok {
		fmt.Println(p.Pretty())
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}

// reportedError wraps an error that has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by an OutputFormatter
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

func suggestionFor(err error) string {
	switch ExitCode(err) {
	case ExitNotFound:
		return "Use the matching 'list' command to see valid IDs"
	case ExitUsage:
		return "Run the command with --help to see its flags"
	default:
		return ""
	}
}
