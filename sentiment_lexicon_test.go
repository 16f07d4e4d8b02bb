package afinn

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestBuildLexicon(t *testing.T) {
	src := "abandon\t-2\nabhor\t-3\nGood\t3\ncan't stand\t-3\nthe\t0\n"
	lex, err := BuildLexicon(strings.NewReader(src))
	if err != nil {
		t.Fatalf("BuildLexicon returned error: %v", err)
	}

	tests := []struct {
		word  string
		score int
		found bool
	}{
		{"abandon", -2, true},
		{"ABHOR", -3, true},
		{"good", 3, true},
		{"Good", 3, true},
		{"can't stand", -3, true},
		{"the", 0, true},
		{"unknown_word", 0, false},
	}
	for _, tt := range tests {
		score, found := lex.Score(tt.word)
		if score != tt.score || found != tt.found {
			t.Errorf("Score(%q) = (%d, %v), want (%d, %v)", tt.word, score, found, tt.score, tt.found)
		}
	}

	if lex.Len() != 5 {
		t.Errorf("Len() = %d, want 5", lex.Len())
	}
}

func TestBuildLexiconDuplicatesLastWins(t *testing.T) {
	lex, err := BuildLexicon(strings.NewReader("meh\t3\nother\t1\nmeh\t-2\n"))
	if err != nil {
		t.Fatalf("BuildLexicon returned error: %v", err)
	}
	if score, _ := lex.Score("meh"); score != -2 {
		t.Errorf("duplicate resolved to %d, want -2", score)
	}

	// Duplicates that only differ by case collapse onto one key as well.
	lex, err = BuildLexicon(strings.NewReader("Meh\t3\nMEH\t-1\n"))
	if err != nil {
		t.Fatalf("BuildLexicon returned error: %v", err)
	}
	if score, _ := lex.Score("meh"); score != -1 || lex.Len() != 1 {
		t.Errorf("case duplicates resolved to %d with %d entries, want -1 with 1", score, lex.Len())
	}
}

func TestBuildLexiconFormatErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int
		desc string
	}{
		{"happy\tnotanumber\n", 1, "non-integer score"},
		{"good\t3\nhappy\n", 2, "missing score"},
		{"good\t3\t1\n", 1, "too many fields"},
		{"good 3\n", 1, "space instead of tab"},
		{"good\t2.5\n", 1, "fractional score"},
		{"good\t\n", 1, "empty score"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			lex, err := BuildLexicon(strings.NewReader(tt.src))
			if lex != nil {
				t.Error("a failed build must not return a lexicon")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, want *FormatError", err)
			}
			if fe.Line != tt.line {
				t.Errorf("Line = %d, want %d", fe.Line, tt.line)
			}
		})
	}
}

func TestFormatErrorUnwrapsParseError(t *testing.T) {
	_, err := BuildLexicon(strings.NewReader("happy\tnotanumber"))
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("error %v does not wrap *strconv.NumError", err)
	}
}

func TestBuildLexiconLineEndings(t *testing.T) {
	lex, err := BuildLexicon(strings.NewReader("good\t3\r\n\r\nbad\t-3\r\n\n"))
	if err != nil {
		t.Fatalf("BuildLexicon returned error: %v", err)
	}
	if lex.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lex.Len())
	}
	if score, _ := lex.Score("bad"); score != -3 {
		t.Errorf("Score(bad) = %d, want -3", score)
	}
}

func TestBuildLexiconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AFINN-111.txt")
	if err := os.WriteFile(path, []byte("good\t3\nbad\t-3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lex, err := BuildLexiconFile(path)
	if err != nil {
		t.Fatalf("BuildLexiconFile returned error: %v", err)
	}
	if lex.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lex.Len())
	}

	if _, err := BuildLexiconFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing source")
	}
}

func TestLexiconEntriesAndOutOfRange(t *testing.T) {
	lex := NewLexicon(map[string]int{"b": 2, "a": -1, "Huge": 9, "tiny": -7})

	want := []LexiconEntry{{"a", -1}, {"b", 2}, {"huge", 9}, {"tiny", -7}}
	if got := lex.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	wantOut := []LexiconEntry{{"huge", 9}, {"tiny", -7}}
	if got := lex.OutOfRange(); !reflect.DeepEqual(got, wantOut) {
		t.Errorf("OutOfRange() = %v, want %v", got, wantOut)
	}
}

func TestNewLexiconFoldCollision(t *testing.T) {
	lex := NewLexicon(map[string]int{"GOOD": 1, "Good": 2, "good": 3})
	// "good" sorts after "GOOD" and "Good", so it wins.
	if score, _ := lex.Score("good"); score != 3 || lex.Len() != 1 {
		t.Errorf("got score %d with %d entries, want 3 with 1", score, lex.Len())
	}
}

func TestLexiconArtifactRoundTrip(t *testing.T) {
	lex := NewLexicon(map[string]int{"good": 3, "bad": -3, "the": 0, "can't stand": -3})

	for _, name := range []string{"afinn111.json", "afinn111.msgpack", "afinn111.mpk"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := lex.Write(path); err != nil {
				t.Fatalf("Write returned error: %v", err)
			}

			loaded, err := LoadLexicon(path)
			if err != nil {
				t.Fatalf("LoadLexicon returned error: %v", err)
			}
			if !reflect.DeepEqual(loaded.Entries(), lex.Entries()) {
				t.Errorf("loaded %v, want %v", loaded.Entries(), lex.Entries())
			}
		})
	}
}

func TestLexiconArtifactIsJSONObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afinn111.json")
	if err := NewLexicon(map[string]int{"good": 3}).Write(path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"good":3}` {
		t.Errorf("artifact = %s, want {\"good\":3}", data)
	}
}

func TestLoadLexiconErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte(`{"good": "three"`), 0o644); err != nil {
		t.Fatal(err)
	}
	badPack := filepath.Join(dir, "corrupt.msgpack")
	if err := os.WriteFile(badPack, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path     string
		notExist bool
		desc     string
	}{
		{filepath.Join(dir, "missing.json"), true, "missing artifact"},
		{corrupt, false, "corrupt JSON"},
		{badPack, false, "corrupt msgpack"},
		{dir, false, "directory"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			lex, err := LoadLexicon(tt.path)
			if lex != nil {
				t.Error("a failed load must not return a lexicon")
			}
			var le *LexiconLoadError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *LexiconLoadError", err)
			}
			if le.Path != tt.path {
				t.Errorf("Path = %q, want %q", le.Path, tt.path)
			}
			if got := errors.Is(err, fs.ErrNotExist); got != tt.notExist {
				t.Errorf("errors.Is(err, fs.ErrNotExist) = %v, want %v", got, tt.notExist)
			}
		})
	}
}

func TestLoadLexiconRefoldsKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "external.json")
	if err := os.WriteFile(path, []byte(`{"GOOD": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon returned error: %v", err)
	}
	if got := lex.Entries(); len(got) != 1 || got[0].Word != "good" {
		t.Errorf("Entries() = %v, want a single lowercase key", got)
	}
}
