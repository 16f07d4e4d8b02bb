package afinn

import (
	"strings"

	"github.com/bbalet/stopwords"
)

// CoverageReport describes how much of a text the lexicon recognizes.
type CoverageReport struct {
	TokenCount int     `json:"tokens"`
	Matched    int     `json:"matched"`
	StopWords  int     `json:"stopwords"`
	Unmatched  []Token `json:"unmatched"` // Content tokens missing from the lexicon.
	Ratio      float64 `json:"ratio"`     // Matched / TokenCount.
}

// Coverage counts the tokens of text found in lex and lists the content
// tokens it missed. English stop words are counted separately and never
// reported as missing, which leaves Unmatched as a list of candidates for
// extending the lexicon.
func Coverage(text string, lex *Lexicon) (CoverageReport, error) {
	if lex == nil {
		return CoverageReport{}, errNilLexicon
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return CoverageReport{}, ErrEmptyInput
	}

	f := newFolder()
	report := CoverageReport{TokenCount: len(tokens)}
	for _, tok := range tokens {
		key := f.fold(tok.Text)
		if _, ok := lex.lookup(key); ok {
			report.Matched++
			continue
		}
		if isStopWord(key) {
			report.StopWords++
			continue
		}
		report.Unmatched = append(report.Unmatched, tok)
	}
	report.Ratio = float64(report.Matched) / float64(report.TokenCount)

	return report, nil
}

// isStopWord reports whether the stopwords library strips word entirely.
// Tokens with no letters at all are stripped too.
func isStopWord(word string) bool {
	cleaned := stopwords.CleanString(word, "en", false)
	return strings.TrimSpace(cleaned) == ""
}
