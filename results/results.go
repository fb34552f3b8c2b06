// Package results loads LiveCodeBench evaluation output and pairs
// baseline and memory-enabled runs by question.
package results

import (
	"encoding/json"
	"strconv"
)

// Record holds one question's evaluation outcome as written by the
// benchmark runner in a *_eval_all.json file.
type Record struct {
	QuestionID    string            `json:"question_id"`
	QuestionTitle string            `json:"question_title"`
	Difficulty    string            `json:"difficulty"`
	Pass1         float64           `json:"pass@1"`
	GradedList    []bool            `json:"graded_list"`
	Metadata      []json.RawMessage `json:"metadata"`
}

// Passed reports whether the question was solved on the first sample.
func (r *Record) Passed() bool {
	return r.Pass1 == 1.0
}

// ExecutionTime extracts the judged solution's execution time in
// seconds. The runner stores it inside metadata[0], which is itself a
// JSON document encoded as a string. Missing or malformed metadata is
// not an error; it just means no timing is available.
func (r *Record) ExecutionTime() (float64, bool) {
	if len(r.Metadata) == 0 {
		return 0, false
	}

	var envelope string
	if err := json.Unmarshal(r.Metadata[0], &envelope); err != nil {
		return 0, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(envelope), &fields); err != nil {
		return 0, false
	}

	raw, ok := fields["execution time"]
	if !ok {
		return 0, false
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return seconds, true
	}

	// Some runner versions write the time as a string.
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return seconds, true
}
