// Package server exposes a lexicon over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tsawler/afinn"
)

// Server serves analyses of one immutable lexicon.
type Server struct {
	HTTP *http.Server

	analyzer *afinn.SentimentAnalyzer
	cfg      Config
	log      *zap.Logger
	metrics  *Metrics
}

// A ServerOpt changes how New builds a Server.
type ServerOpt func(s *Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) ServerOpt {
	return func(s *Server) {
		s.log = log
	}
}

// WithMetrics sets the metrics collectors. The default is a fresh registry.
func WithMetrics(m *Metrics) ServerOpt {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server for lex according to cfg.
func New(cfg Config, lex *afinn.Lexicon, opts ...ServerOpt) *Server {
	s := &Server{
		analyzer: afinn.NewSentimentAnalyzer(lex),
		cfg:      cfg,
		log:      zap.NewNop(),
	}
	for _, applyOpt := range opts {
		applyOpt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.metrics.SetLexiconSize(lex.Len())

	s.HTTP = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	jsonOnly := func(h http.HandlerFunc) http.Handler {
		return handlers.ContentTypeHandler(h, "application/json")
	}

	r.Handle("/v1/analyze", s.metrics.WrapHandler("analyze", jsonOnly(s.handleAnalyze))).Methods(http.MethodPost)
	r.Handle("/v1/analyze/sentences", s.metrics.WrapHandler("sentences", jsonOnly(s.handleSentences))).Methods(http.MethodPost)
	r.Handle("/v1/coverage", s.metrics.WrapHandler("coverage", jsonOnly(s.handleCoverage))).Methods(http.MethodPost)
	r.Handle("/v1/lexicon/{word}", s.metrics.WrapHandler("lexicon", http.HandlerFunc(s.handleLexicon))).Methods(http.MethodGet)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.Use(s.requestID, s.accessLog)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(zapRecoveryLogger{s.log}))(r)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server starting",
			zap.String("addr", s.HTTP.Addr),
			zap.Int("lexicon_words", s.analyzer.Lexicon().Len()),
		)
		errc <- s.HTTP.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.HTTP.Shutdown(shutdownCtx)
}

type textRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	afinn.AnalysisResult
	Summary afinn.Summary   `json:"summary"`
	Charts  afinn.ChartData `json:"charts"`
}

type lexiconResponse struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	res, err := s.analyzer.Analyze(req.Text)
	s.metrics.Analysis("document", res.TokenCount, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, analyzeResponse{
		AnalysisResult: res,
		Summary:        res.Summary(),
		Charts:         res.Charts(),
	})
}

func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	sents, err := s.analyzer.AnalyzeSentences(req.Text)
	tokens := 0
	for _, sent := range sents {
		tokens += sent.Result.TokenCount
	}
	s.metrics.Analysis("sentences", tokens, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, sents)
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	report, err := s.analyzer.Coverage(req.Text)
	s.metrics.Analysis("coverage", report.TokenCount, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleLexicon(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	score, ok := s.analyzer.Lexicon().Score(word)
	if !ok {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "word not in lexicon"})
		return
	}
	s.writeJSON(w, r, http.StatusOK, lexiconResponse{Word: afinn.Normalize(word), Score: score})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var req textRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, r, status, errorResponse{Error: "invalid request body"})
		return req, false
	}
	return req, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, afinn.ErrEmptyInput) {
		s.writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	s.log.Error("analysis failed",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.Error(err),
	)
	s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write_response_failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err),
		)
	}
}
