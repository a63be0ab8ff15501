package translation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubProvider struct {
	mu    sync.Mutex
	calls int
	texts []string
	fail  map[string]bool
}

func (p *stubProvider) Translate(_ context.Context, req TranslateRequest) (*TranslateResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.texts = append(p.texts, req.Text)
	if p.fail[req.Text] {
		return nil, errors.New("quota exceeded")
	}
	return &TranslateResponse{
		Text:         "[" + req.TargetLang + "] " + req.Text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
	}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) SupportedLanguages() []string { return []string{"en", "zh", "es", "pt"} }

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fixture struct {
	provider     *stubProvider
	store        *FileStore
	cache        *MemoryCache
	orchestrator *Orchestrator
	sleeps       []time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		provider: &stubProvider{fail: map[string]bool{}},
		store:    NewFileStore(t.TempDir(), zerolog.Nop()),
		cache:    NewMemoryCache(100, time.Hour),
	}
	translator := NewTranslator(f.provider, zerolog.Nop())
	f.orchestrator = NewOrchestrator(translator, f.cache, f.store, zerolog.Nop(), Options{
		BatchDelay:    200 * time.Millisecond,
		FrontendDelay: 100 * time.Millisecond,
	})
	f.orchestrator.sleep = func(_ context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return nil
	}
	return f
}

func categoryRecords() []Record {
	return []Record{
		{ID: 1, Fields: map[string]string{"name": "Window Profiles", "description": "Thermal break window systems"}},
		{ID: 2, Fields: map[string]string{"name": "Door Profiles", "description": "Sliding and casement doors"}},
	}
}

func hasPrefix(value, prefix string) bool {
	return strings.HasPrefix(value, prefix)
}
