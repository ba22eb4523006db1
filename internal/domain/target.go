package domain

// Represents a star system the commander wants to visit.
// The annotation is free text (usually the bodies with biological signals)
// carried through to the report. It plays no part in route computation.
type Target struct {
	System     string
	Annotation string
}

// Build a system -> annotation lookup. Later duplicates win.
func AnnotationMap(targets []Target) map[string]string {
	m := make(map[string]string, len(targets))
	for _, t := range targets {
		m[t.System] = t.Annotation
	}
	return m
}
