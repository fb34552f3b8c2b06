// Package chart renders the benchmark comparison as PNG bar charts,
// one two-panel figure per analysis topic.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

// Labels names the two compared runs in chart legends.
type Labels struct {
	Baseline string
	Memory   string
}

var (
	colorBaseline = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	colorMemory   = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	colorImproved = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	colorNeutral  = color.RGBA{R: 0xbd, G: 0xc3, B: 0xc7, A: 0xff}
)

var barWidth = vg.Points(24)

// WriteAll renders the four analysis figures into dir, named
// <prefix>_<topic>_analysis.png.
func WriteAll(
	dir, prefix string,
	s analysis.Summary,
	labels Labels,
) error {
	if s.Overall.Questions == 0 {
		return fmt.Errorf("no paired results to chart")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir %s: %w", dir, err)
	}

	figures := []struct {
		name  string
		build func(analysis.Summary, Labels) (*plot.Plot, *plot.Plot, error)
	}{
		{"correct_answers", accuracyPanels},
		{"improvement", improvementPanels},
		{"regression", regressionPanels},
		{"execution_time", executionTimePanels},
	}

	for _, fig := range figures {
		left, right, err := fig.build(s, labels)
		if err != nil {
			return fmt.Errorf("build %s figure: %w", fig.name, err)
		}

		path := filepath.Join(dir,
			fmt.Sprintf("%s_%s_analysis.png", prefix, fig.name))

		if err := writeFigure(path, left, right); err != nil {
			return fmt.Errorf("write %s figure: %w", fig.name, err)
		}
	}

	return nil
}

func accuracyPanels(
	s analysis.Summary,
	labels Labels,
) (*plot.Plot, *plot.Plot, error) {
	o := s.Overall

	left := newPlot(
		fmt.Sprintf("Overall Accuracy (change %+.1f pp)",
			o.AccuracyChange()),
		"Accuracy (%)",
	)
	left.Y.Max = 105

	err := addSingleSeries(left, colorBaseline,
		[]float64{o.BaselineAccuracy(), o.MemoryAccuracy()},
		[]string{labels.Baseline, labels.Memory})
	if err != nil {
		return nil, nil, err
	}

	right := newPlot("Accuracy by Difficulty", "Accuracy (%)")
	right.Y.Max = 105

	err = addGroupedSeries(right, s, labels,
		analysis.Group.BaselineAccuracy, analysis.Group.MemoryAccuracy)
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

func improvementPanels(
	s analysis.Summary,
	labels Labels,
) (*plot.Plot, *plot.Plot, error) {
	o := s.Overall

	left := newPlot(
		fmt.Sprintf("Overall Improvement: %d/%d questions (%.1f%%)",
			o.Improved, o.Questions, o.ImprovementRate()),
		"Questions",
	)

	err := addSplitSeries(left, colorImproved, colorNeutral,
		[]float64{float64(o.Improved), float64(o.Questions - o.Improved)},
		[]string{"Improved", "No Improvement"})
	if err != nil {
		return nil, nil, err
	}

	right := newPlot("Improvement Rate by Difficulty",
		"Improvement Rate (%)")

	err = addRateSeries(right, s, colorImproved,
		analysis.Group.ImprovementRate)
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

func regressionPanels(
	s analysis.Summary,
	labels Labels,
) (*plot.Plot, *plot.Plot, error) {
	o := s.Overall

	left := newPlot(
		fmt.Sprintf("Overall Regression: %d/%d questions (%.1f%%)",
			o.Regressed, o.Questions, o.RegressionRate()),
		"Questions",
	)

	err := addSplitSeries(left, colorMemory, colorNeutral,
		[]float64{float64(o.Regressed), float64(o.Questions - o.Regressed)},
		[]string{"Regressed", "No Regression"})
	if err != nil {
		return nil, nil, err
	}

	right := newPlot("Regression Rate by Difficulty",
		"Regression Rate (%)")

	err = addRateSeries(right, s, colorMemory,
		analysis.Group.RegressionRate)
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

func executionTimePanels(
	s analysis.Summary,
	labels Labels,
) (*plot.Plot, *plot.Plot, error) {
	o := s.Overall

	left := newPlot(
		fmt.Sprintf("Overall Average Execution Time (change %+.1f%%)",
			o.TimeChangePct()),
		"Execution Time (seconds)",
	)

	err := addSingleSeries(left, colorBaseline,
		[]float64{o.BaselineMeanTime, o.MemoryMeanTime},
		[]string{labels.Baseline, labels.Memory})
	if err != nil {
		return nil, nil, err
	}

	right := newPlot("Average Execution Time by Difficulty",
		"Execution Time (seconds)")

	err = addGroupedSeries(right, s, labels,
		func(g analysis.Group) float64 { return g.BaselineMeanTime },
		func(g analysis.Group) float64 { return g.MemoryMeanTime })
	if err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	return p
}

// addSingleSeries draws one bar per name in a single color.
func addSingleSeries(
	p *plot.Plot,
	c color.Color,
	values []float64,
	names []string,
) error {
	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}

	bars.Color = c
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(names...)

	return nil
}

// addSplitSeries draws two bars in distinct colors, one per name.
// Zero-height companion bars keep both series on the same nominal
// axis positions.
func addSplitSeries(
	p *plot.Plot,
	first, second color.Color,
	values []float64,
	names []string,
) error {
	firstBars, err := plotter.NewBarChart(
		plotter.Values{values[0], 0}, barWidth)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}

	secondBars, err := plotter.NewBarChart(
		plotter.Values{0, values[1]}, barWidth)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}

	firstBars.Color = first
	firstBars.LineStyle.Width = 0
	secondBars.Color = second
	secondBars.LineStyle.Width = 0

	p.Add(firstBars, secondBars)
	p.NominalX(names...)

	return nil
}

// addRateSeries draws one bar per difficulty bucket.
func addRateSeries(
	p *plot.Plot,
	s analysis.Summary,
	c color.Color,
	value func(analysis.Group) float64,
) error {
	names := make([]string, 0, len(s.ByDifficulty))
	values := make([]float64, 0, len(s.ByDifficulty))

	for _, g := range s.ByDifficulty {
		names = append(names, g.Difficulty)
		values = append(values, value(g))
	}

	return addSingleSeries(p, c, values, names)
}

// addGroupedSeries draws paired baseline/memory bars per difficulty.
func addGroupedSeries(
	p *plot.Plot,
	s analysis.Summary,
	labels Labels,
	baseline, memory func(analysis.Group) float64,
) error {
	names := make([]string, 0, len(s.ByDifficulty))
	baseVals := make(plotter.Values, 0, len(s.ByDifficulty))
	memVals := make(plotter.Values, 0, len(s.ByDifficulty))

	for _, g := range s.ByDifficulty {
		names = append(names, g.Difficulty)
		baseVals = append(baseVals, baseline(g))
		memVals = append(memVals, memory(g))
	}

	baseBars, err := plotter.NewBarChart(baseVals, barWidth)
	if err != nil {
		return fmt.Errorf("baseline bars: %w", err)
	}

	memBars, err := plotter.NewBarChart(memVals, barWidth)
	if err != nil {
		return fmt.Errorf("memory bars: %w", err)
	}

	baseBars.Color = colorBaseline
	baseBars.LineStyle.Width = 0
	baseBars.Offset = -barWidth / 2

	memBars.Color = colorMemory
	memBars.LineStyle.Width = 0
	memBars.Offset = barWidth / 2

	p.Add(baseBars, memBars)
	p.Legend.Add(labels.Baseline, baseBars)
	p.Legend.Add(labels.Memory, memBars)
	p.Legend.Top = true
	p.NominalX(names...)

	return nil
}

// writeFigure lays two plots side by side in one PNG, the original
// report's two-subplot figure layout.
func writeFigure(path string, left, right *plot.Plot) error {
	img := vgimg.NewWith(
		vgimg.UseWH(12*vg.Inch, 5*vg.Inch),
		vgimg.UseDPI(150),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 3,
	}

	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()

		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}
