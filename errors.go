package afinn

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the text to analyze holds no tokens.
var ErrEmptyInput = &EmptyInputError{}

// EmptyInputError reports that a text had no whitespace-delimited tokens,
// so the comparative score is undefined.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "afinn: input contains no tokens"
}

// Is makes every EmptyInputError match ErrEmptyInput.
func (e *EmptyInputError) Is(target error) bool {
	_, ok := target.(*EmptyInputError)
	return ok
}

// FormatError reports a malformed row in a lexicon source table.
type FormatError struct {
	Line   int    // 1-based line number in the source.
	Row    string // The offending row, as read.
	Reason string
	Err    error // Underlying parse error, if any.
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("afinn: line %d: %s: %q: %v", e.Line, e.Reason, e.Row, e.Err)
	}
	return fmt.Sprintf("afinn: line %d: %s: %q", e.Line, e.Reason, e.Row)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// LexiconLoadError reports a missing or unreadable lexicon artifact.
type LexiconLoadError struct {
	Path string
	Err  error
}

func (e *LexiconLoadError) Error() string {
	return fmt.Sprintf("afinn: load lexicon %s: %v", e.Path, e.Err)
}

func (e *LexiconLoadError) Unwrap() error {
	return e.Err
}

var errNilLexicon = errors.New("afinn: nil lexicon")
