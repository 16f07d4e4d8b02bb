package afinn

// SentimentAnalyzer scores texts against one lexicon.
type SentimentAnalyzer struct {
	lexicon *Lexicon
}

// NewSentimentAnalyzer creates a sentiment analyzer backed by lex.
func NewSentimentAnalyzer(lex *Lexicon) *SentimentAnalyzer {
	return &SentimentAnalyzer{lexicon: lex}
}

// Lexicon returns the analyzer's lexicon.
func (sa *SentimentAnalyzer) Lexicon() *Lexicon {
	return sa.lexicon
}

// Analyze scores text. See the package-level Analyze.
func (sa *SentimentAnalyzer) Analyze(text string) (AnalysisResult, error) {
	return Analyze(text, sa.lexicon)
}

// AnalyzeSentences scores each sentence of text. See the package-level
// AnalyzeSentences.
func (sa *SentimentAnalyzer) AnalyzeSentences(text string) ([]SentenceResult, error) {
	return AnalyzeSentences(text, sa.lexicon)
}

// Coverage reports how much of text the lexicon recognizes.
func (sa *SentimentAnalyzer) Coverage(text string) (CoverageReport, error) {
	return Coverage(text, sa.lexicon)
}

// Analyze tokenizes text on whitespace and scores every token found in lex.
//
// Tokens missing from the lexicon add nothing to the score but still count
// toward TokenCount, which is the divisor of the comparative score. A
// zero-score match is kept in Matched and ScoreSequence but is neither
// positive nor negative. Analyze returns ErrEmptyInput when text has no
// tokens.
func Analyze(text string, lex *Lexicon) (AnalysisResult, error) {
	if lex == nil {
		return AnalysisResult{}, errNilLexicon
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return AnalysisResult{}, ErrEmptyInput
	}

	f := newFolder()
	result := AnalysisResult{TokenCount: len(tokens)}

	for _, tok := range tokens {
		score, ok := lex.lookup(f.fold(tok.Text))
		if !ok {
			continue
		}

		scored := ScoredToken{
			Token:    tok,
			Score:    score,
			Polarity: PolarityOf(score),
		}
		result.TotalScore += score
		result.Matched = append(result.Matched, scored)
		result.ScoreSequence = append(result.ScoreSequence, score)

		switch scored.Polarity {
		case Positive:
			result.Positive = append(result.Positive, scored)
		case Negative:
			result.Negative = append(result.Negative, scored)
		}
	}

	result.Comparative = float64(result.TotalScore) / float64(result.TokenCount)

	return result, nil
}
