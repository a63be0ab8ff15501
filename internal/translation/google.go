package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lingye.co/catalog/internal/language"
)

// DefaultGoogleEndpoint is the Cloud Translation v2 REST endpoint.
const DefaultGoogleEndpoint = "https://translation.googleapis.com/language/translate/v2"

// GoogleProvider calls the Google Cloud Translation v2 API with an API key.
type GoogleProvider struct {
	endpointURL string
	apiKey      string
	client      *http.Client
}

func NewGoogleProvider(endpoint, apiKey string) *GoogleProvider {
	endpointURL := strings.TrimSpace(endpoint)
	if endpointURL == "" {
		endpointURL = DefaultGoogleEndpoint
	}
	return &GoogleProvider{
		endpointURL: endpointURL,
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) SupportedLanguages() []string {
	return append([]string{language.Source}, language.Targets()...)
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("google provider is nil")
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_TRANSLATE_API_KEY is not configured")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	sourceLang := language.Base(req.SourceLang)
	targetLang := googleLanguageCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}

	body, err := json.Marshal(googleTranslateRequest{
		Q:      []string{text},
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	requestURL, err := url.Parse(p.endpointURL)
	if err != nil {
		return nil, fmt.Errorf("parse google endpoint: %w", err)
	}
	query := requestURL.Query()
	query.Set("key", p.apiKey)
	requestURL.RawQuery = query.Encode()

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload googleErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, fmt.Errorf("google translate status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("google translate status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed googleTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		return nil, fmt.Errorf("translation response missing translations")
	}

	// format=text responses can still carry entity-escaped quotes.
	translated := strings.TrimSpace(html.UnescapeString(parsed.Data.Translations[0].TranslatedText))
	if translated == "" {
		return nil, fmt.Errorf("translation response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   language.Base(targetLang),
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// googleLanguageCode maps catalog codes to the codes the API expects.
func googleLanguageCode(raw string) string {
	code := language.Base(raw)
	if code == "zh" {
		return "zh-CN"
	}
	return code
}

type googleTranslateRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
