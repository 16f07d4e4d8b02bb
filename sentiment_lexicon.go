package afinn

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Scores outside this range are kept, but reported by OutOfRange.
const (
	MinScore = -5
	MaxScore = 5
)

// A Lexicon maps case-folded words to integer polarity scores.
//
// A Lexicon is immutable once built and may be shared by any number of
// goroutines.
type Lexicon struct {
	words map[string]int
}

// NewLexicon builds a Lexicon from an in-memory word list. Keys are
// case-folded. When two keys fold to the same word, the one that sorts
// last wins, so the result does not depend on map iteration order.
func NewLexicon(words map[string]int) *Lexicon {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := newFolder()
	lex := &Lexicon{words: make(map[string]int, len(words))}
	for _, k := range keys {
		lex.words[f.fold(k)] = words[k]
	}
	return lex
}

// BuildLexicon reads a tab-separated word/score table with no header and
// builds a Lexicon from it.
//
// Each non-blank row must be exactly "word<TAB>score" with an integer
// score; anything else aborts the build with a *FormatError. Words are
// case-folded. If a word appears more than once, the last row wins.
func BuildLexicon(r io.Reader) (*Lexicon, error) {
	f := newFolder()
	words := make(map[string]int)

	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		row := strings.TrimSuffix(scan.Text(), "\r")
		if strings.TrimSpace(row) == "" {
			continue
		}

		parts := strings.Split(row, "\t")
		if len(parts) != 2 {
			return nil, &FormatError{
				Line:   line,
				Row:    row,
				Reason: fmt.Sprintf("expected 2 tab-separated fields, got %d", len(parts)),
			}
		}

		score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, &FormatError{
				Line:   line,
				Row:    row,
				Reason: "score is not an integer",
				Err:    err,
			}
		}

		words[f.fold(parts[0])] = score
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("error reading lexicon source: %w", err)
	}

	return &Lexicon{words: words}, nil
}

// BuildLexiconFile builds a Lexicon from the table at path.
func BuildLexiconFile(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening lexicon source: %w", err)
	}
	defer file.Close()

	return BuildLexicon(file)
}

// Score returns the score for word, folding its case first.
func (l *Lexicon) Score(word string) (int, bool) {
	return l.lookup(Normalize(word))
}

// lookup expects an already folded key.
func (l *Lexicon) lookup(key string) (int, bool) {
	score, ok := l.words[key]
	return score, ok
}

// Len returns the number of words in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Entries returns every entry sorted by word.
func (l *Lexicon) Entries() []LexiconEntry {
	entries := make([]LexiconEntry, 0, len(l.words))
	for w, s := range l.words {
		entries = append(entries, LexiconEntry{Word: w, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// OutOfRange returns the entries whose score falls outside
// [MinScore, MaxScore], sorted by word. The build does not reject them.
func (l *Lexicon) OutOfRange() []LexiconEntry {
	var out []LexiconEntry
	for _, e := range l.Entries() {
		if e.Score < MinScore || e.Score > MaxScore {
			out = append(out, e)
		}
	}
	return out
}

// Write saves the lexicon as an artifact at path. Files ending in .msgpack
// or .mpk are MessagePack encoded; anything else is written as a JSON
// object. The file is replaced atomically.
func (l *Lexicon) Write(path string) error {
	data, err := encodeArtifact(path, l.words)
	if err != nil {
		return fmt.Errorf("error encoding lexicon: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".lexicon-*")
	if err != nil {
		return fmt.Errorf("error creating lexicon artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing lexicon artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing lexicon artifact: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// LoadLexicon reads an artifact written by Write. Any failure to open,
// read or decode it is reported as a *LexiconLoadError.
func LoadLexicon(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LexiconLoadError{Path: path, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &LexiconLoadError{Path: path, Err: err}
	}

	words, err := decodeArtifact(path, data)
	if err != nil {
		return nil, &LexiconLoadError{Path: path, Err: err}
	}

	// Artifacts may come from elsewhere; refold so lookups stay consistent.
	return NewLexicon(words), nil
}

func isMsgpack(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return true
	}
	return false
}

func encodeArtifact(path string, words map[string]int) ([]byte, error) {
	if isMsgpack(path) {
		return msgpack.Marshal(words)
	}
	return json.Marshal(words)
}

func decodeArtifact(path string, data []byte) (map[string]int, error) {
	words := make(map[string]int)
	if isMsgpack(path) {
		if err := msgpack.Unmarshal(data, &words); err != nil {
			return nil, fmt.Errorf("error parsing lexicon msgpack: %w", err)
		}
		return words, nil
	}
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("error parsing lexicon JSON: %w", err)
	}
	return words, nil
}
