// Package analysis computes before/after statistics over paired
// benchmark results: accuracy, improvements, regressions, and
// execution-time deltas, overall and grouped by difficulty.
package analysis

import (
	"sort"

	"github.com/RyanNg1403/cipher-benchmark-results/results"
)

// Group aggregates the paired outcomes for one difficulty bucket.
// The overall summary reuses the same shape with Difficulty "all".
type Group struct {
	Difficulty       string
	Questions        int
	BaselineCorrect  int
	MemoryCorrect    int
	Improved         int
	Regressed        int
	TimedQuestions   int
	BaselineMeanTime float64
	MemoryMeanTime   float64
}

// BaselineAccuracy returns the baseline solve rate in percent.
func (g Group) BaselineAccuracy() float64 {
	return pct(g.BaselineCorrect, g.Questions)
}

// MemoryAccuracy returns the memory-enabled solve rate in percent.
func (g Group) MemoryAccuracy() float64 {
	return pct(g.MemoryCorrect, g.Questions)
}

// AccuracyChange returns the accuracy delta in percentage points.
func (g Group) AccuracyChange() float64 {
	return g.MemoryAccuracy() - g.BaselineAccuracy()
}

// ImprovementRate returns the share of questions that flipped from
// wrong to right, in percent.
func (g Group) ImprovementRate() float64 {
	return pct(g.Improved, g.Questions)
}

// RegressionRate returns the share of questions that flipped from
// right to wrong, in percent.
func (g Group) RegressionRate() float64 {
	return pct(g.Regressed, g.Questions)
}

// TimeChangePct returns the relative change of the mean execution
// time in percent. Zero when no timing data exists.
func (g Group) TimeChangePct() float64 {
	if g.BaselineMeanTime == 0 {
		return 0
	}

	return (g.MemoryMeanTime - g.BaselineMeanTime) /
		g.BaselineMeanTime * 100
}

// Summary holds the full analysis of one baseline/memory comparison.
type Summary struct {
	Overall      Group
	ByDifficulty []Group
	Skipped      int
}

// Summarize aggregates paired records into a Summary. Skipped records
// the number of unpaired questions the caller dropped during matching.
func Summarize(pairs []results.Pair, skipped int) Summary {
	overall := accumulator{difficulty: "all"}
	buckets := make(map[string]*accumulator)

	for _, p := range pairs {
		overall.add(p)

		acc, ok := buckets[p.Baseline.Difficulty]
		if !ok {
			acc = &accumulator{difficulty: p.Baseline.Difficulty}
			buckets[p.Baseline.Difficulty] = acc
		}

		acc.add(p)
	}

	groups := make([]Group, 0, len(buckets))
	for _, acc := range buckets {
		groups = append(groups, acc.group())
	}

	sort.Slice(groups, func(i, j int) bool {
		ri, rj := difficultyRank(groups[i].Difficulty),
			difficultyRank(groups[j].Difficulty)
		if ri != rj {
			return ri < rj
		}

		return groups[i].Difficulty < groups[j].Difficulty
	})

	return Summary{
		Overall:      overall.group(),
		ByDifficulty: groups,
		Skipped:      skipped,
	}
}

type accumulator struct {
	difficulty      string
	questions       int
	baselineCorrect int
	memoryCorrect   int
	improved        int
	regressed       int
	timed           int
	baselineTime    float64
	memoryTime      float64
}

func (a *accumulator) add(p results.Pair) {
	a.questions++

	before, after := p.Baseline.Passed(), p.Memory.Passed()

	if before {
		a.baselineCorrect++
	}

	if after {
		a.memoryCorrect++
	}

	if !before && after {
		a.improved++
	}

	if before && !after {
		a.regressed++
	}

	// Time deltas only make sense when both runs were timed.
	bt, bok := p.Baseline.ExecutionTime()
	mt, mok := p.Memory.ExecutionTime()

	if bok && mok {
		a.timed++
		a.baselineTime += bt
		a.memoryTime += mt
	}
}

func (a *accumulator) group() Group {
	g := Group{
		Difficulty:      a.difficulty,
		Questions:       a.questions,
		BaselineCorrect: a.baselineCorrect,
		MemoryCorrect:   a.memoryCorrect,
		Improved:        a.improved,
		Regressed:       a.regressed,
		TimedQuestions:  a.timed,
	}

	if a.timed > 0 {
		g.BaselineMeanTime = a.baselineTime / float64(a.timed)
		g.MemoryMeanTime = a.memoryTime / float64(a.timed)
	}

	return g
}

func difficultyRank(d string) int {
	switch d {
	case "easy":
		return 0
	case "medium":
		return 1
	case "hard":
		return 2
	default:
		return 3
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(n) / float64(total) * 100
}
