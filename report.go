package afinn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bar colors keyed to the sign of the score.
const (
	ColorPositive = "green"
	ColorNegative = "red"
)

// ChartData is the plotting input derived from an AnalysisResult. It only
// describes what to draw; rendering belongs to the caller.
type ChartData struct {
	Bars []Bar   `json:"bars"`
	Pie  PieData `json:"pie"`
	Line []Point `json:"line"`
}

// Bar is one word in the per-word bar chart.
type Bar struct {
	Label    string `json:"label"`
	Position int    `json:"position"`
	Score    int    `json:"score"`
	Color    string `json:"color"`
}

// PieData counts positive against negative matches.
type PieData struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Point is one sample of the score sequence line chart.
type Point struct {
	X int `json:"x"` // Index into the score sequence.
	Y int `json:"y"`
}

// Summary holds descriptive statistics of a score sequence.
type Summary struct {
	Matched  int     `json:"matched"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Neutral  int     `json:"neutral"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Charts derives bar, pie and line chart data from the result.
//
// Bars hold the positive and negative words in position order; zero-score
// matches are left out, as are they from the pie counts.
func (r AnalysisResult) Charts() ChartData {
	var data ChartData

	for _, st := range r.Matched {
		if st.Polarity == Neutral {
			continue
		}
		color := ColorPositive
		if st.Score < 0 {
			color = ColorNegative
		}
		data.Bars = append(data.Bars, Bar{
			Label:    st.Text,
			Position: st.Position,
			Score:    st.Score,
			Color:    color,
		})
	}

	data.Pie = PieData{Positive: len(r.Positive), Negative: len(r.Negative)}

	data.Line = make([]Point, len(r.ScoreSequence))
	for i, s := range r.ScoreSequence {
		data.Line[i] = Point{X: i, Y: s}
	}

	return data
}

// Summary computes statistics over the score sequence. A result with no
// matches yields a zero Summary.
func (r AnalysisResult) Summary() Summary {
	s := Summary{
		Matched:  len(r.Matched),
		Positive: len(r.Positive),
		Negative: len(r.Negative),
	}
	s.Neutral = s.Matched - s.Positive - s.Negative

	if len(r.ScoreSequence) == 0 {
		return s
	}

	xs := make([]float64, len(r.ScoreSequence))
	for i, v := range r.ScoreSequence {
		xs[i] = float64(v)
	}

	s.Mean = stat.Mean(xs, nil)
	// The sample deviation needs two observations.
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)

	return s
}

// Format renders the result as the plain-text summary shown to users.
func (r AnalysisResult) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Score: %d\n", r.TotalScore)
	fmt.Fprintf(&b, "Comparative: %.2f\n", r.Comparative)
	fmt.Fprintf(&b, "Positive Words:\n%s\n", joinTokens(r.Positive))
	fmt.Fprintf(&b, "Negative Words:\n%s\n", joinTokens(r.Negative))

	return b.String()
}

func joinTokens(tokens []ScoredToken) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
