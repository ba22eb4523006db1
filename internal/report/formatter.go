// Package report renders a sorted route as a fixed-width console table.
package report

import (
	"exobio-route-sorter/internal/services"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NotAvailable is shown when a destination has no annotation.
const NotAvailable = "N/A"

const rowFormat = "%-5s %-30s → %-30s %-25s %12s\n"

// Write prints the run summary, the hop table and the total distance.
func Write(w io.Writer, sum *services.RouteSummary) error {
	if sum == nil {
		return nil
	}

	var b strings.Builder

	b.WriteString("\n=== Elite Exobiologist Route Sorter Results ===\n")
	fmt.Fprintf(&b, "Starting System: %s\n", sum.Start)
	fmt.Fprintf(&b, "Total Target Systems in File: %d\n", sum.TotalTargets)
	fmt.Fprintf(&b, "Systems Included in Route: %d\n", sum.IncludedSystems)
	if len(sum.Discarded) > 0 {
		fmt.Fprintf(&b, "Systems Skipped (no coordinates): %s\n", strings.Join(sum.Discarded, ", "))
	}

	b.WriteString("\nOptimized Route (Greedy Algorithm):\n")

	header := fmt.Sprintf(rowFormat, "Step", "From System", "To System", "Target Bodies", "Distance (LY)")
	rule := strings.Repeat("=", utf8.RuneCountInString(strings.TrimSuffix(header, "\n"))) + "\n"

	b.WriteString(rule)
	b.WriteString(header)
	b.WriteString(rule)

	for i, h := range sum.Route.Hops {
		fmt.Fprintf(&b, rowFormat,
			strconv.Itoa(i+1),
			h.From,
			h.To,
			Annotation(sum.Annotations, h.To),
			FormatDistance(h.DistanceLY),
		)
	}

	b.WriteString(rule)
	fmt.Fprintf(&b, "\nTotal Greedy Distance: %s LY\n", FormatDistance(sum.TotalDistance))
	b.WriteString(strings.Repeat("=", 74) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Annotation returns the annotation for system, or NotAvailable.
func Annotation(annotations map[string]string, system string) string {
	if a, ok := annotations[system]; ok {
		return a
	}
	return NotAvailable
}

// FormatDistance renders a distance with two decimals.
func FormatDistance(ly float64) string {
	return strconv.FormatFloat(ly, 'f', 2, 64)
}
