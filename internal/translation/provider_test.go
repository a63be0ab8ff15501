package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGoogleProviderTranslates(t *testing.T) {
	t.Parallel()

	var got googleTranslateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("unexpected api key %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"  6063-T5 &quot;型材&quot; &amp; 配件 "}]}}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(server.URL, " test-key ")
	resp, err := provider.Translate(context.Background(), TranslateRequest{Text: " 6063-T5 \"profiles\" & fittings ", SourceLang: "en-US", TargetLang: "zh"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if resp.Text != `6063-T5 "型材" & 配件` {
		t.Fatalf("entities should be unescaped, got %q", resp.Text)
	}
	if resp.TargetLang != "zh" || resp.SourceLang != "en" || resp.ProviderName != "google" {
		t.Fatalf("unexpected response metadata %+v", resp)
	}
	if got.Target != "zh-CN" || got.Source != "en" || got.Format != "text" {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Q) != 1 || got.Q[0] != `6063-T5 "profiles" & fittings` {
		t.Fatalf("unexpected query text %q", got.Q)
	}
}

func TestGoogleProviderErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "error payload",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"API key not valid. Please pass a valid API key."}}`,
			want:   "google translate status 403: API key not valid",
		},
		{
			name:   "plain error body",
			status: http.StatusBadGateway,
			body:   "upstream unavailable",
			want:   "google translate status 502: upstream unavailable",
		},
		{
			name:   "no translations",
			status: http.StatusOK,
			body:   `{"data":{"translations":[]}}`,
			want:   "missing translations",
		},
		{
			name:   "blank translation",
			status: http.StatusOK,
			body:   `{"data":{"translations":[{"translatedText":"   "}]}}`,
			want:   "was empty",
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"data":`,
			want:   "decode translation response",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			provider := NewGoogleProvider(server.URL, "test-key")
			_, err := provider.Translate(context.Background(), TranslateRequest{Text: "Window profiles", SourceLang: "en", TargetLang: "es"})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestGoogleProviderRequiresAPIKey(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer server.Close()

	translator := NewTranslator(NewGoogleProvider(server.URL, ""), zerolog.Nop())
	result := translator.Translate(context.Background(), "Curtain wall", "pt", "en")
	if !errors.Is(result.Err, ErrProvider) || result.Text != "Curtain wall" {
		t.Fatalf("expected soft failure with original text, got %+v", result)
	}
	if called {
		t.Fatalf("no request should be sent without an api key")
	}
}

func TestLocalProviderTranslates(t *testing.T) {
	t.Parallel()

	var got localChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Perfiles de ventana \n"}}]}`))
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, "")
	resp, err := provider.Translate(context.Background(), TranslateRequest{Text: "Window profiles", SourceLang: "en", TargetLang: "es-MX"})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if resp.Text != "Perfiles de ventana" || resp.TargetLang != "es" || resp.ProviderName != "local" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if got.Model != DefaultLocalModel || len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Fatalf("unexpected request %+v", got)
	}
	if !strings.Contains(got.Messages[0].Content, "Spanish") || !strings.HasSuffix(got.Messages[0].Content, "Window profiles") {
		t.Fatalf("unexpected prompt %q", got.Messages[0].Content)
	}
}

func TestLocalProviderErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error payload", http.StatusTooManyRequests, `{"error":{"message":"model is busy"}}`, "translation endpoint status 429: model is busy"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "missing choices"},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":" "}}]}`, "was empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			translator := NewTranslator(NewLocalProvider(server.URL, "test-model"), zerolog.Nop())
			result := translator.Translate(context.Background(), "Door profiles", "zh", "en")
			if !errors.Is(result.Err, ErrProvider) || !strings.Contains(result.Err.Error(), tc.want) {
				t.Fatalf("expected provider error containing %q, got %v", tc.want, result.Err)
			}
			if result.Text != "Door profiles" || result.Translated {
				t.Fatalf("failed call must return the original text, got %+v", result)
			}
		})
	}
}

func TestChatCompletionsURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                      "http://127.0.0.1:8845/v1/chat/completions",
		"localhost:9000":                        "http://localhost:9000/v1/chat/completions",
		"http://gpu-box:8000/v1/":               "http://gpu-box:8000/v1/chat/completions",
		"https://llm.internal/chat/completions": "https://llm.internal/chat/completions",
		"http://proxy/openai":                   "http://proxy/openai/v1/chat/completions",
	}
	for raw, want := range cases {
		if got := chatCompletionsURL(normalizeEndpoint(raw)); got != want {
			t.Fatalf("%q: got %q want %q", raw, got, want)
		}
	}
}

type narrowProvider struct{ stubProvider }

func (*narrowProvider) SupportedLanguages() []string { return []string{"en", "zh-CN", "es"} }

func TestUnsupportedTargets(t *testing.T) {
	t.Parallel()

	if got := UnsupportedTargets(NewGoogleProvider("", "key")); len(got) != 0 {
		t.Fatalf("google should cover every target, missing %v", got)
	}
	if got := UnsupportedTargets(&narrowProvider{}); len(got) != 1 || got[0] != "pt" {
		t.Fatalf("unexpected missing targets %v", got)
	}
	if got := UnsupportedTargets(nil); len(got) != 3 {
		t.Fatalf("nil provider supports nothing, got %v", got)
	}
}
