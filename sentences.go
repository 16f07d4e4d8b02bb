package afinn

import (
	"fmt"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// SentenceResult is the analysis of one sentence within a larger text.
type SentenceResult struct {
	Index  int            `json:"index"`  // Zero-based sentence number.
	Text   string         `json:"text"`
	Offset int            `json:"offset"` // Position of the sentence's first token in the whole text.
	Result AnalysisResult `json:"result"`
}

var (
	segmenterOnce sync.Once
	segmenterErr  error
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterMu   sync.Mutex
)

func segment(text string) ([]string, error) {
	segmenterOnce.Do(func() {
		segmenter, segmenterErr = english.NewSentenceTokenizer(nil)
	})
	if segmenterErr != nil {
		return nil, fmt.Errorf("error loading sentence segmenter: %w", segmenterErr)
	}

	segmenterMu.Lock()
	sents := segmenter.Tokenize(text)
	segmenterMu.Unlock()

	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

// AnalyzeSentences splits text into sentences with a punkt segmenter and
// scores each one with Analyze.
//
// Token positions in each result refer to the whole text, so they line up
// with the positions Analyze(text, lex) reports. Sentences without tokens
// are skipped. It returns ErrEmptyInput when text has no tokens at all.
func AnalyzeSentences(text string, lex *Lexicon) ([]SentenceResult, error) {
	if lex == nil {
		return nil, errNilLexicon
	}
	if len(Tokenize(text)) == 0 {
		return nil, ErrEmptyInput
	}

	sents, err := segment(text)
	if err != nil {
		return nil, err
	}

	var (
		results []SentenceResult
		offset  int
	)
	for _, sent := range sents {
		res, err := Analyze(sent, lex)
		if err == ErrEmptyInput {
			continue
		}
		if err != nil {
			return nil, err
		}

		rebase(&res, offset)
		results = append(results, SentenceResult{
			Index:  len(results),
			Text:   sent,
			Offset: offset,
			Result: res,
		})
		offset += res.TokenCount
	}

	return results, nil
}

// rebase shifts every token position in r by offset.
func rebase(r *AnalysisResult, offset int) {
	if offset == 0 {
		return
	}
	for i := range r.Matched {
		r.Matched[i].Position += offset
	}
	for i := range r.Positive {
		r.Positive[i].Position += offset
	}
	for i := range r.Negative {
		r.Negative[i].Position += offset
	}
}
