package repositories

import (
	"bufio"
	"context"
	"errors"
	"exobio-route-sorter/internal/domain"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
)

// ErrTargetsNotFound reports that the target file does not exist.
var ErrTargetsNotFound = errors.New("target file not found")

// File-backed implementation of the TargetRepository port.
//
// Each meaningful line reads "System Name | annotation". Blank lines and
// lines starting with '#' are ignored, as are lines without a '|' or with an
// empty system name.
type FileTargetRepository struct {
	Path string
}

func NewFileTargetRepository(path string) *FileTargetRepository {
	return &FileTargetRepository{Path: path}
}

// Return all targets in first-seen order.
func (r *FileTargetRepository) ListTargets(ctx context.Context) ([]domain.Target, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list targets: %q: %w", r.Path, ErrTargetsNotFound)
		}
		return nil, fmt.Errorf("list targets: open %q: %w", r.Path, err)
	}
	defer f.Close()

	targets, err := ParseTargets(f)
	if err != nil {
		return nil, fmt.Errorf("list targets: read %q: %w", r.Path, err)
	}

	if len(targets) == 0 {
		log.Printf("warning: no valid 'System | Body' pairs found in %s", r.Path)
	}

	return targets, nil
}

// ParseTargets reads the two-column target format.
// A repeated system keeps its first position and takes the last annotation.
func ParseTargets(rd io.Reader) ([]domain.Target, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	targets := make([]domain.Target, 0, 64)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		system, annotation, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		system = strings.TrimSpace(system)
		annotation = strings.TrimSpace(annotation)
		if system == "" {
			continue
		}

		targets = append(targets, domain.Target{System: system, Annotation: annotation})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return MergeTargets(targets), nil
}

// MergeTargets collapses repeated systems: each keeps its first position and
// takes its last annotation.
func MergeTargets(targets []domain.Target) []domain.Target {
	merged := make([]domain.Target, 0, len(targets))
	index := make(map[string]int, len(targets))

	for _, t := range targets {
		if i, seen := index[t.System]; seen {
			merged[i].Annotation = t.Annotation
			continue
		}
		index[t.System] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

// In-memory implementation of the TargetRepository port, used for request
// bodies and tests.
type StaticTargetRepository struct {
	Targets []domain.Target
}

func (r StaticTargetRepository) ListTargets(ctx context.Context) ([]domain.Target, error) {
	return append([]domain.Target(nil), r.Targets...), nil
}
