package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/thenoetrevino/cafe/internal/cli/styles"
	"github.com/thenoetrevino/cafe/internal/models"
)

// Field is one "Label: value" line of a Record
type Field struct {
	Label string
	Value string
}

// Record is a single entity as returned by a command. JSON output encodes
// Data; human output prints a card of Fields.
type Record struct {
	ID     int
	Title  string
	Fields []Field
	Footer string
	Data   any
}

// GetID implements the GetID interface for quiet mode output
func (r *Record) GetID() int {
	return r.ID
}

// MarshalJSON encodes the underlying entity
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Data)
}

// Pretty renders the record as a bordered card
func (r *Record) Pretty() string {
	width := 0
	for _, f := range r.Fields {
		width = max(width, len(f.Label))
	}

	lines := []string{styles.TitleStyle.Render(r.Title)}
	for _, f := range r.Fields {
		label := styles.LabelStyle.Render(fmt.Sprintf("%-*s", width+1, f.Label+":"))
		lines = append(lines, label+" "+styles.ValueStyle.Render(f.Value))
	}
	if r.Footer != "" {
		lines = append(lines, "", r.Footer)
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

// Listing is a collection returned by a list command
type Listing struct {
	Title   string
	Headers []string
	Rows    [][]string
	IDs     []int
	Empty   string
	Footer  string
	Data    any
}

// GetIDs implements quiet mode output for lists
func (l *Listing) GetIDs() []int {
	return l.IDs
}

// MarshalJSON encodes the underlying entities
func (l *Listing) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Data)
}

// Pretty renders the listing as a table
func (l *Listing) Pretty() string {
	if len(l.Rows) == 0 {
		return styles.SubtleStyle.Render(l.Empty)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.BorderStyle).
		Headers(l.Headers...).
		Rows(l.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle
			}
			return styles.CellStyle
		})

	out := t.String()
	if l.Title != "" {
		out = styles.TitleStyle.Render(l.Title) + "\n" + out
	}
	if l.Footer != "" {
		out += "\n" + l.Footer
	}
	return out
}

// Message is a confirmation without an entity (e.g. after a delete)
type Message struct {
	ID   int    `json:"id"`
	Text string `json:"message"`
}

// GetID implements the GetID interface for quiet mode output
func (m *Message) GetID() int {
	return m.ID
}

// Pretty renders the confirmation line
func (m *Message) Pretty() string {
	return styles.SuccessStyle.Render("✓") + " " + m.Text
}

// Deleted confirms that the entity with id was removed
func Deleted(entity string, id int) *Message {
	return &Message{ID: id, Text: fmt.Sprintf("Deleted %s %d", entity, id)}
}

// ============================================================================
// Value formatting
// ============================================================================

// Money formats an amount with two decimals
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Quantity formats an amount without trailing zeros
func Quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Date formats a calendar date
func Date(t time.Time) string {
	return t.Format(models.DateLayout)
}

// DatePtr formats an optional date, "-" when unset
func DatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return Date(*t)
}

// Instant formats a shift boundary in local time
func Instant(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// OrDash returns s, or "-" when s is empty
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Warn highlights text that needs attention (low stock, pending orders)
func Warn(s string) string {
	return styles.WarningStyle.Render(s)
}
