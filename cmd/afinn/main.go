package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/afinn"
	"github.com/tsawler/afinn/server"
)

const usage = `usage: afinn <command> [flags]

commands:
  build    convert a word<TAB>score table into a lexicon artifact
  analyze  score text against a lexicon artifact
  serve    run the HTTP API
`

func main() {
	// A missing .env is fine; values then come from the environment only.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "afinn: reading .env: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:], os.Stdin, os.Stdout)
	case "serve":
		err = runServe(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "afinn: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "afinn %s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	in := fs.String("in", "AFINN-111.txt", "tab-separated word/score source table")
	out := fs.String("out", "afinn111.json", "artifact to write (.json, .msgpack or .mpk)")
	level := fs.String("log-level", "info", "log level")
	fs.Parse(args)

	log, err := newLogger(*level, "console")
	if err != nil {
		return err
	}
	defer log.Sync()

	lex, err := afinn.BuildLexiconFile(*in)
	if err != nil {
		return err
	}

	for _, e := range lex.OutOfRange() {
		log.Warn("score outside the usual range",
			zap.String("word", e.Word),
			zap.Int("score", e.Score),
		)
	}

	if err := lex.Write(*out); err != nil {
		return err
	}
	log.Info("lexicon written",
		zap.String("source", *in),
		zap.String("artifact", *out),
		zap.Int("words", lex.Len()),
	)
	return nil
}

func runAnalyze(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	lexPath := fs.String("lexicon", envOr("AFINN_LEXICON", "afinn111.json"), "lexicon artifact")
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	bySentence := fs.Bool("sentences", false, "also score each sentence")
	coverage := fs.Bool("coverage", false, "also report lexicon coverage")
	fs.Parse(args)

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		text = string(data)
	}

	lex, err := afinn.LoadLexicon(*lexPath)
	if err != nil {
		return err
	}
	analyzer := afinn.NewSentimentAnalyzer(lex)

	res, err := analyzer.Analyze(text)
	if err != nil {
		return err
	}

	out := struct {
		Result    afinn.AnalysisResult   `json:"result"`
		Summary   afinn.Summary          `json:"summary"`
		Sentences []afinn.SentenceResult `json:"sentences,omitempty"`
		Coverage  *afinn.CoverageReport  `json:"coverage,omitempty"`
	}{Result: res, Summary: res.Summary()}

	if *bySentence {
		if out.Sentences, err = analyzer.AnalyzeSentences(text); err != nil {
			return err
		}
	}
	if *coverage {
		report, err := analyzer.Coverage(text)
		if err != nil {
			return err
		}
		out.Coverage = &report
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprint(stdout, res.Format())
	for _, s := range out.Sentences {
		fmt.Fprintf(stdout, "Sentence %d (score %d, comparative %.2f): %s\n",
			s.Index, s.Result.TotalScore, s.Result.Comparative, strings.TrimSpace(s.Text))
	}
	if out.Coverage != nil {
		unmatched := make([]string, len(out.Coverage.Unmatched))
		for i, t := range out.Coverage.Unmatched {
			unmatched[i] = t.Text
		}
		fmt.Fprintf(stdout, "Coverage: %d/%d tokens (%.0f%%), %d stop words\nUnmatched: %s\n",
			out.Coverage.Matched, out.Coverage.TokenCount, out.Coverage.Ratio*100,
			out.Coverage.StopWords, strings.Join(unmatched, ", "))
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "YAML config file")
	fs.Parse(args)

	cfg, err := server.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	lex, err := afinn.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, lex, server.WithLogger(log)).Run(ctx)
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
