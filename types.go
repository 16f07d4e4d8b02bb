package afinn

import (
	"encoding/json"
	"fmt"
)

// A Token represents a whitespace-delimited unit of input text.
type Token struct {
	Text     string `json:"text"`     // The token's surface text, case preserved.
	Position int    `json:"position"` // Zero-based index in the whitespace split.
}

// Polarity is the sign classification of a score.
type Polarity int

const (
	Neutral Polarity = iota
	Positive
	Negative
)

var polarityNames = map[Polarity]string{
	Neutral:  "neutral",
	Positive: "positive",
	Negative: "negative",
}

var polarityFromName = map[string]Polarity{
	"neutral":  Neutral,
	"positive": Positive,
	"negative": Negative,
}

// PolarityOf classifies a score by its sign.
func PolarityOf(score int) Polarity {
	switch {
	case score > 0:
		return Positive
	case score < 0:
		return Negative
	default:
		return Neutral
	}
}

// String returns the name of the polarity.
func (p Polarity) String() string {
	if name, ok := polarityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// MarshalJSON encodes the polarity as a JSON string.
func (p Polarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a JSON string into a Polarity.
func (p *Polarity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := polarityFromName[name]
	if !ok {
		return fmt.Errorf("afinn: unknown polarity: %q", name)
	}
	*p = v
	return nil
}

// A ScoredToken is a token that was found in the lexicon.
type ScoredToken struct {
	Token
	Score    int      `json:"score"`
	Polarity Polarity `json:"polarity"`
}

// String renders the token the way result labels display it,
// e.g. "good: 3 (1)".
func (st ScoredToken) String() string {
	return fmt.Sprintf("%s: %d (%d)", st.Text, st.Score, st.Position)
}

// AnalysisResult holds the outcome of scoring one input text.
//
// Every slice is in strictly increasing position order. Positive and
// Negative never contain zero-score matches; those appear only in Matched
// and ScoreSequence.
type AnalysisResult struct {
	TotalScore    int           `json:"score"`       // Sum of all matched scores.
	Comparative   float64       `json:"comparative"` // TotalScore / TokenCount.
	TokenCount    int           `json:"tokens"`      // All tokens, matched or not.
	Matched       []ScoredToken `json:"matched"`
	Positive      []ScoredToken `json:"positive"`
	Negative      []ScoredToken `json:"negative"`
	ScoreSequence []int         `json:"sequence"`
}

// LexiconEntry is a single normalized word and its polarity score.
type LexiconEntry struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}
