package lemma

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// ONNXAnalyzer is the model-backed Analyzer. It runs a part-of-speech token
// classification pipeline (ONNX, via hugot) to decide whether a token is a
// verb, and derives the infinitive with regular Portuguese conjugation rules
// once verb-ness is confirmed. Loading is lazy: the first Analyze call pays
// the model load, later calls reuse the session.
type ONNXAnalyzer struct {
	cfg      ONNXConfig
	modelDir string

	mu       sync.RWMutex
	session  *hugot.Session
	pipeline *pipelines.TokenClassificationPipeline
	loaded   bool
	loadErr  error
}

// DefaultHFRepo is the Portuguese part-of-speech tagger used when no repo is
// configured.
const DefaultHFRepo = "lisaterumi/postagger-portuguese"

// ONNXConfig configures the model-backed analyzer.
type ONNXConfig struct {
	// HFRepo is the HuggingFace repo to download when the model is absent
	HFRepo string
	// CacheDir is where downloaded models live; defaults to ~/.triage/models
	CacheDir string
	// OrtLibraryPath points at the onnxruntime shared library if non-standard
	OrtLibraryPath string
}

// NewONNXAnalyzer prepares an analyzer; no model work happens until the first
// Analyze call.
func NewONNXAnalyzer(cfg ONNXConfig) (*ONNXAnalyzer, error) {
	if cfg.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("lemma: get home dir: %w", err)
		}
		cfg.CacheDir = filepath.Join(home, ".triage", "models")
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("lemma: create model cache dir: %w", err)
	}
	return &ONNXAnalyzer{cfg: cfg}, nil
}

// Analyze tags token with the POS pipeline. A failed or missing model is an
// error for the caller to swallow (the resolver fails open on any error).
func (a *ONNXAnalyzer) Analyze(ctx context.Context, token string) (AnalyzerResult, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return AnalyzerResult{}, err
	}

	a.mu.RLock()
	p := a.pipeline
	a.mu.RUnlock()
	if p == nil {
		return AnalyzerResult{}, fmt.Errorf("lemma: pipeline not initialized")
	}

	out, err := p.RunPipeline([]string{token})
	if err != nil {
		return AnalyzerResult{}, fmt.Errorf("lemma: pos inference: %w", err)
	}
	for _, ents := range out.Entities {
		for _, e := range ents {
			if strings.Contains(strings.ToUpper(e.Entity), "VERB") {
				return AnalyzerResult{IsVerb: true, BaseForm: Infinitive(token)}, nil
			}
		}
	}
	return AnalyzerResult{}, nil
}

// Close releases the ONNX session.
func (a *ONNXAnalyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		a.session.Destroy()
		a.session = nil
	}
	a.pipeline = nil
	a.loaded = false
	return nil
}

func (a *ONNXAnalyzer) ensureLoaded(ctx context.Context) error {
	a.mu.RLock()
	if a.loaded || a.loadErr != nil {
		err := a.loadErr
		a.mu.RUnlock()
		return err
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded || a.loadErr != nil {
		return a.loadErr
	}

	// remember a failed load so every request does not retry the download
	if err := a.load(ctx); err != nil {
		a.loadErr = err
		return err
	}
	a.loaded = true
	return nil
}

func (a *ONNXAnalyzer) load(_ context.Context) error {
	dir := a.modelDir
	if dir == "" {
		if a.cfg.HFRepo == "" {
			return fmt.Errorf("lemma: no model path or HuggingFace repo configured")
		}
		name := filepath.Join(a.cfg.CacheDir, filepath.Base(a.cfg.HFRepo))
		if _, err := os.Stat(name); os.IsNotExist(err) {
			downloaded, derr := hugot.DownloadModel(a.cfg.HFRepo, a.cfg.CacheDir, hugot.NewDownloadOptions())
			if derr != nil {
				return fmt.Errorf("lemma: download model: %w", derr)
			}
			name = downloaded
		}
		dir = name
	}

	sessionOpts := []options.WithOption{
		options.WithIntraOpNumThreads(runtime.NumCPU()),
	}
	if a.cfg.OrtLibraryPath != "" {
		sessionOpts = append(sessionOpts, options.WithOnnxLibraryPath(a.cfg.OrtLibraryPath))
	}

	session, err := hugot.NewORTSession(sessionOpts...)
	if err != nil {
		return fmt.Errorf("lemma: create ORT session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TokenClassificationConfig{
		ModelPath: dir,
		Name:      "pos-tagger",
	})
	if err != nil {
		session.Destroy()
		return fmt.Errorf("lemma: create pos pipeline: %w", err)
	}

	a.session = session
	a.pipeline = pipeline
	a.modelDir = dir
	return nil
}
