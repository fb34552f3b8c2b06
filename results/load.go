package results

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Load reads an evaluation file (a JSON array of records) from path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}

	return records, nil
}

// Parse decodes a JSON array of records from r.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return records, nil
}

// Pair joins the baseline and memory-enabled outcome for one question.
type Pair struct {
	Baseline Record
	Memory   Record
}

// MatchByQuestion pairs baseline records with memory records by
// question id. Records without a counterpart are logged and skipped;
// the skip count covers both sides. Pairs keep the baseline file's
// order, so reordered inputs still line up.
func MatchByQuestion(
	logger *slog.Logger,
	baseline, memory []Record,
) ([]Pair, int) {
	byID := make(map[string]Record, len(memory))
	for _, m := range memory {
		byID[m.QuestionID] = m
	}

	pairs := make([]Pair, 0, len(baseline))
	matched := make(map[string]bool, len(baseline))

	for _, b := range baseline {
		m, ok := byID[b.QuestionID]
		if !ok {
			logger.Warn("question missing from memory run",
				slog.String("question_id", b.QuestionID),
			)

			continue
		}

		matched[b.QuestionID] = true

		pairs = append(pairs, Pair{Baseline: b, Memory: m})
	}

	skipped := len(baseline) - len(pairs)

	for _, m := range memory {
		if !matched[m.QuestionID] {
			logger.Warn("question missing from baseline run",
				slog.String("question_id", m.QuestionID),
			)

			skipped++
		}
	}

	return pairs, skipped
}
