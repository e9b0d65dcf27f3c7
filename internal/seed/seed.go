// Package seed loads activity master lists into the engine's template store.
//
// A master list holds one activity per line in the form
//
//	Domain|Subdomain|Difficulty|Label
//
// Blank lines and lines starting with # are ignored. Seeding only runs while
// the template store is completely empty, so it never overwrites user edits.
package seed

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/log"
)

//go:embed activities.txt
var masterList []byte

// ErrMalformedLine marks a line that could not be parsed as an activity.
var ErrMalformedLine = errors.New("seed: malformed line")

// Entry is one parsed activity line.
type Entry struct {
	Domain     string
	Subdomain  string
	Difficulty engine.Difficulty
	Label      string
	Source     string
	Line       int
}

// Parse reads a master list. Lines with fewer than four fields, an unknown
// difficulty or an empty label are reported in skipped, wrapping
// ErrMalformedLine; err is only set when reading r fails.
func Parse(r io.Reader, source string) (entries []Entry, skipped []error, err error) {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) < 4 {
			skipped = append(skipped, fmt.Errorf("%s:%d: expected 4 fields: %w", source, n, ErrMalformedLine))
			continue
		}
		diff, ok := engine.ParseDifficulty(parts[2])
		if !ok {
			skipped = append(skipped, fmt.Errorf("%s:%d: unknown difficulty %q: %w", source, n, strings.TrimSpace(parts[2]), ErrMalformedLine))
			continue
		}
		label := strings.TrimSpace(parts[3])
		if label == "" {
			skipped = append(skipped, fmt.Errorf("%s:%d: empty label: %w", source, n, ErrMalformedLine))
			continue
		}
		entries = append(entries, Entry{
			Domain:     strings.TrimSpace(parts[0]),
			Subdomain:  strings.TrimSpace(parts[1]),
			Difficulty: diff,
			Label:      label,
			Source:     source,
			Line:       n,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return entries, skipped, nil
}

// Embedded returns the built-in master list.
func Embedded(logger *log.Logger) ([]Entry, error) {
	entries, skipped, err := Parse(bytes.NewReader(masterList), "activities.txt")
	if err != nil {
		return nil, err
	}
	logSkipped(logger, skipped)
	return entries, nil
}

// LoadFiles reads and parses every file in paths concurrently. Entries are
// returned in path order, then line order.
func LoadFiles(ctx context.Context, paths []string, logger *log.Logger) ([]Entry, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([][]Entry, len(paths))
	skips := make([][]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening master list: %w", err)
			}
			defer f.Close()

			entries, skipped, err := Parse(f, path)
			if err != nil {
				return err
			}
			results[i] = entries
			skips[i] = skipped
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Entry
	for i := range paths {
		logSkipped(logger, skips[i])
		all = append(all, results[i]...)
	}
	return all, nil
}

func logSkipped(logger *log.Logger, skipped []error) {
	if logger == nil {
		logger = log.Default()
	}
	for _, err := range skipped {
		logger.WithError(err).Warn("skipping master list line")
	}
}
