package report

import (
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/services"
	"strings"
	"testing"
)

func scenarioSummary() *services.RouteSummary {
	return &services.RouteSummary{
		Start:       "S",
		Annotations: map[string]string{"A": "bio1", "C": "bio3"},
		Route: domain.Route{
			Start: "S",
			Hops: []domain.Hop{
				{From: "S", To: "A", DistanceLY: 1},
				{From: "A", To: "C", DistanceLY: 1.004},
				{From: "C", To: "Z", DistanceLY: 3.456},
			},
		},
		Discarded:       []string{"B"},
		TotalTargets:    4,
		IncludedSystems: 3,
		TotalDistance:   5.46,
	}
}

func TestWriteTable(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, scenarioSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Starting System: S",
		"Total Target Systems in File: 4",
		"Systems Included in Route: 3",
		"Systems Skipped (no coordinates): B",
		"Distance (LY)",
		"Total Greedy Distance: 5.46 LY",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var rows []string
	for _, l := range lines {
		if strings.Contains(l, "→") && !strings.HasPrefix(l, "Step") {
			rows = append(rows, l)
		}
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 hop rows, got %d:\n%s", len(rows), out)
	}

	if !strings.HasPrefix(rows[0], "1     S ") || !strings.HasSuffix(rows[0], "1.00") || !strings.Contains(rows[0], "bio1") {
		t.Errorf("row 1 = %q", rows[0])
	}
	if !strings.HasSuffix(rows[1], "1.00") {
		t.Errorf("row 2 = %q", rows[1])
	}
	if !strings.Contains(rows[2], NotAvailable) || !strings.HasSuffix(rows[2], "3.46") {
		t.Errorf("row 3 = %q", rows[2])
	}
}

func TestWriteEmptyRoute(t *testing.T) {
	var b strings.Builder
	sum := &services.RouteSummary{Start: "S", TotalTargets: 2}
	if err := Write(&b, sum); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "Total Greedy Distance: 0.00 LY") {
		t.Fatalf("unexpected output:\n%s", b.String())
	}
}

func TestFormatDistance(t *testing.T) {
	cases := map[float64]string{
		0:         "0.00",
		5:         "5.00",
		1.005:     "1.00",
		22000.129: "22000.13",
	}
	for in, want := range cases {
		if got := FormatDistance(in); got != want {
			t.Errorf("FormatDistance(%v) = %q, want %q", in, got, want)
		}
	}
}
