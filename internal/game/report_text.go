package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// FormatReport renders the state summary, the outcome, the latest tick
// report and the window summary as plain text.
func FormatReport(a *Apocalypse, sl *SimLog, r *SimReporter, out PursuitOutcomeReason) string {
	var sb strings.Builder
	sb.WriteString(sl.Summary(a))
	fmt.Fprintf(&sb, "Outcome: %s (%s) free=%d unreachable=%d loop=%d\n", out.Outcome, out.Description, out.Free, out.Unreachable, out.Cycle)
	sb.WriteString(r.FormatLatest())
	sb.WriteByte('\n')
	if wr := r.WindowSummary(); wr != nil {
		sb.WriteString(wr.Format())
	}
	fmt.Fprintf(&sb, "zombies: %s\n", joinCells(a.zombies))
	fmt.Fprintf(&sb, "humans:  %s\n", joinCells(a.humans))
	return sb.String()
}

func joinCells(cells []Cell) string {
	if len(cells) == 0 {
		return "none"
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if text == "" {
		text = " "
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available on this system")
	}
	return clipboard.WriteAll(text)
}
