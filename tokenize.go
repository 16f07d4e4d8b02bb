package afinn

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokenize splits text on runs of whitespace. Each substring becomes one
// token at its zero-based position in the split.
//
// Punctuation stays attached to the word, so "great!" is a token of its
// own and will not match a lexicon entry for "great".
func Tokenize(text string) []Token {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	tokens := make([]Token, len(fields))
	for i, f := range fields {
		tokens[i] = Token{Text: f, Position: i}
	}
	return tokens
}

// folder case-folds words for lexicon keys and lookups. The builder and the
// scorer both go through it so a key never misses on case alone.
//
// A cases.Caser keeps state between calls, so a folder must not be shared
// between goroutines.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Lower(language.Und)}
}

func (f *folder) fold(word string) string {
	return f.caser.String(word)
}

// Normalize returns the lexicon key form of word.
func Normalize(word string) string {
	return newFolder().fold(word)
}
