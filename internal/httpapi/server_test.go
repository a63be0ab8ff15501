package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/auth"
	"lingye.co/catalog/internal/catalog"
	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/templates"
	"lingye.co/catalog/internal/translation"
)

const testAdminToken = "catalog-admin-token-0001"

type fakeCatalogStore struct {
	categories    []db.Category
	products      map[int64]db.Product
	articles      []db.Article
	companyInfo   []db.CompanyInfo
	templates     map[int64]*templates.Template
	records       map[string]translation.Record
	logs          []translation.LogEntry
	lastFilter    db.ProductFilter
	lastLogFilter db.TranslationLogFilter
	inquiries     []db.Inquiry
	pingErr       error
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		products:  map[int64]db.Product{},
		templates: map[int64]*templates.Template{},
		records:   map[string]translation.Record{},
	}
}

func (s *fakeCatalogStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeCatalogStore) ListCategories(context.Context) ([]db.Category, error) {
	return s.categories, nil
}

func (s *fakeCatalogStore) GetCategoryBySlug(_ context.Context, slug string) (db.Category, error) {
	for _, row := range s.categories {
		if row.Slug == slug {
			return row, nil
		}
	}
	return db.Category{}, fmt.Errorf("get category %q: %w", slug, db.ErrNoRows)
}

func (s *fakeCatalogStore) ListSubcategories(context.Context, int64) ([]db.SubCategory, error) {
	return nil, nil
}

func (s *fakeCatalogStore) ListProducts(_ context.Context, filter db.ProductFilter) ([]db.Product, error) {
	s.lastFilter = filter
	out := make([]db.Product, 0, len(s.products))
	for _, row := range s.products {
		out = append(out, row)
	}
	return out, nil
}

func (s *fakeCatalogStore) GetProduct(_ context.Context, id int64) (db.Product, error) {
	row, ok := s.products[id]
	if !ok {
		return db.Product{}, fmt.Errorf("get product %d: %w", id, db.ErrNoRows)
	}
	return row, nil
}

func (s *fakeCatalogStore) GetProductBySlug(_ context.Context, slug string) (db.Product, error) {
	for _, row := range s.products {
		if row.Slug == slug {
			return row, nil
		}
	}
	return db.Product{}, db.ErrNoRows
}

func (s *fakeCatalogStore) ListArticles(context.Context, bool, int) ([]db.Article, error) {
	return s.articles, nil
}

func (s *fakeCatalogStore) GetArticleBySlug(_ context.Context, slug string) (db.Article, error) {
	for _, row := range s.articles {
		if row.Slug == slug {
			return row, nil
		}
	}
	return db.Article{}, db.ErrNoRows
}

func (s *fakeCatalogStore) ListContactInfo(context.Context) ([]db.ContactInfo, error) { return nil, nil }

func (s *fakeCatalogStore) ListCompanyInfo(context.Context) ([]db.CompanyInfo, error) {
	return s.companyInfo, nil
}

func (s *fakeCatalogStore) ListAdvantages(context.Context) ([]db.Advantage, error) { return nil, nil }

func (s *fakeCatalogStore) ListCertificates(context.Context) ([]db.Certificate, error) {
	return nil, nil
}

func (s *fakeCatalogStore) GetTemplate(_ context.Context, id int64) (*templates.Template, error) {
	tmpl, ok := s.templates[id]
	if !ok {
		return nil, db.ErrNoRows
	}
	return tmpl, nil
}

func (s *fakeCatalogStore) GetTranslationRecord(_ context.Context, kind translation.Kind, id int64) (translation.Record, error) {
	record, ok := s.records[fmt.Sprintf("%s/%d", kind, id)]
	if !ok {
		return translation.Record{}, db.ErrNoRows
	}
	return record, nil
}

func (s *fakeCatalogStore) ListTranslationLogs(_ context.Context, filter db.TranslationLogFilter) ([]translation.LogEntry, error) {
	s.lastLogFilter = filter
	return s.logs, nil
}

func (s *fakeCatalogStore) CreateInquiry(_ context.Context, inquiry *db.Inquiry) error {
	inquiry.ID = int64(len(s.inquiries) + 1)
	s.inquiries = append(s.inquiries, *inquiry)
	return nil
}

type fakeTranslations struct {
	status        translation.Status
	autoCalls     []translation.Record
	frontendLangs []string
}

func (f *fakeTranslations) GetTranslationStatus(translation.Kind, int64, string) (translation.Status, error) {
	return f.status, nil
}

func (f *fakeTranslations) GetAllFrontendContent(_ context.Context, lang string) map[string]string {
	f.frontendLangs = append(f.frontendLangs, lang)
	return map[string]string{"nav_home": "Inicio"}
}

func (f *fakeTranslations) AutoTranslate(_ context.Context, _ translation.Kind, record translation.Record) []translation.AutoTranslateOutcome {
	f.autoCalls = append(f.autoCalls, record)
	return []translation.AutoTranslateOutcome{{Language: "es", Stats: translation.Stats{Total: 2, Translated: 2}}}
}

type fakeRunner struct {
	mu    sync.Mutex
	calls []translation.RunOptions
	done  chan struct{}
}

func (r *fakeRunner) Run(_ context.Context, opts translation.RunOptions) (translation.LogEntry, error) {
	r.mu.Lock()
	r.calls = append(r.calls, opts)
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return translation.LogEntry{RunUUID: "run-1", Status: translation.LogStatusSuccess}, nil
}

type testEnv struct {
	server       *Server
	store        *fakeCatalogStore
	translations *fakeTranslations
	runner       *fakeRunner
}

func newTestEnv(t *testing.T, finder templates.SliceFinder, files map[translation.Kind]map[string]string) *testEnv {
	t.Helper()

	fileStore := translation.NewFileStore(t.TempDir(), zerolog.Nop())
	for kind, mapping := range files {
		if err := fileStore.Save(kind, "es", mapping); err != nil {
			t.Fatalf("seed %s: %v", kind, err)
		}
	}
	orch := translation.NewOrchestrator(nil, translation.NoopCache{}, fileStore, zerolog.Nop(), translation.Options{})
	serializer := catalog.NewSerializer(orch, templates.NewResolver(finder), catalog.Options{MediaBaseURL: "/media/"})

	hash, err := auth.HashToken(testAdminToken)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}

	env := &testEnv{
		store:        newFakeCatalogStore(),
		translations: &fakeTranslations{},
		runner:       &fakeRunner{done: make(chan struct{})},
	}
	env.server = NewServer(Deps{
		Store:        env.store,
		Serializer:   serializer,
		Translations: env.translations,
		Runner:       env.runner,
		Verifier:     auth.NewVerifier(hash),
		Logger:       zerolog.Nop(),
	}, Options{})
	return env
}

func (env *testEnv) do(t *testing.T, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, jsendResponse) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	var resp jsendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func dataMap(t *testing.T, resp jsendResponse) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data: %#v", resp.Data)
	}
	return data
}

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testAdminToken}
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Fatalf("unexpected health response: %d %#v", rec.Code, resp)
	}

	env.store.pingErr = fmt.Errorf("connection refused")
	rec, resp = env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusInternalServerError || resp.Status != "error" {
		t.Fatalf("unexpected failing health response: %d %#v", rec.Code, resp)
	}
}

func TestCategoriesTranslatedByQueryAndHeader(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, map[translation.Kind]map[string]string{
		translation.KindCategory: {"name_1": "Perfiles de puerta"},
	})
	env.store.categories = []db.Category{{ID: 1, Name: "Door Profiles", Slug: "door-profiles"}}

	_, resp := env.do(t, http.MethodGet, "/api/v1/categories?lang=es", "", nil)
	items := dataMap(t, resp)["items"].([]any)
	if items[0].(map[string]any)["name"] != "Perfiles de puerta" {
		t.Fatalf("unexpected category: %#v", items[0])
	}

	_, resp = env.do(t, http.MethodGet, "/api/v1/categories", "", map[string]string{"Accept-Language": "es-MX,es;q=0.9"})
	if dataMap(t, resp)["language"] != "es" {
		t.Fatalf("Accept-Language should select es: %#v", resp.Data)
	}

	_, resp = env.do(t, http.MethodGet, "/api/v1/categories?lang=de", "", nil)
	data := dataMap(t, resp)
	if data["language"] != "en" || data["items"].([]any)[0].(map[string]any)["name"] != "Door Profiles" {
		t.Fatalf("deprecated language should fall back to source: %#v", data)
	}
}

func TestCategoryDetailNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodGet, "/api/v1/categories/missing", "", nil)
	if rec.Code != http.StatusNotFound || resp.Status != "fail" {
		t.Fatalf("unexpected response: %d %#v", rec.Code, resp)
	}
}

func TestProductDetailMergesCategoryTemplate(t *testing.T) {
	t.Parallel()

	categoryID := int64(2)
	env := newTestEnv(t, templates.SliceFinder{
		{ID: 4, Name: "Doors", CategoryID: &categoryID, IsActive: true, LeadTime: "7-15 Days", OEMAvailable: true},
	}, nil)
	env.store.products[9] = db.Product{ID: 9, CategoryID: 2, UseTemplate: true, Name: "Folding Door", Slug: "folding-door"}

	for _, target := range []string{"/api/v1/products/9", "/api/v1/products/folding-door"} {
		rec, resp := env.do(t, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", target, rec.Code)
		}
		data := dataMap(t, resp)
		if data["lead_time"] != "7-15 Days" {
			t.Fatalf("%s: template not merged: %#v", target, data)
		}
		if images, ok := data["factory_images"].([]any); !ok || len(images) != 0 {
			t.Fatalf("%s: factory_images should be empty list: %#v", target, data["factory_images"])
		}
	}

	rec, _ := env.do(t, http.MethodGet, "/api/v1/products/404", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for missing product: %d", rec.Code)
	}
}

func TestProductsValidatesPaging(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodGet, "/api/v1/products?page_size=1000&category=x", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	errs := dataMap(t, resp)["validation_errors"].(map[string]any)
	if _, ok := errs["category"]; !ok {
		t.Fatalf("expected category error: %#v", errs)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/products?page=3&page_size=10&featured=true&q=rail", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	got := env.store.lastFilter
	if got.Limit != 10 || got.Offset != 20 || !got.FeaturedOnly || got.Search != "rail" {
		t.Fatalf("unexpected filter: %#v", got)
	}
}

func TestTemplateDetail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	env.store.templates[3] = &templates.Template{
		ID:           3,
		Name:         "Window",
		IsActive:     true,
		ProcessItems: []templates.ProcessItem{{ID: 1, Name: "Extrusion", Order: 1}},
	}

	_, resp := env.do(t, http.MethodGet, "/api/v1/product-templates/3", "", nil)
	data := dataMap(t, resp)
	if data["name"] != "Window" || len(data["process_items"].([]any)) != 1 {
		t.Fatalf("unexpected template: %#v", data)
	}

	rec, _ := env.do(t, http.MethodGet, "/api/v1/product-templates/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad id: %d", rec.Code)
	}
}

func TestTranslationStatusValidatesKind(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, _ := env.do(t, http.MethodGet, "/api/v1/translations/status?kind=frontend&id=1&lang=es", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("frontend kind has no per-record status: %d", rec.Code)
	}

	env.translations.status = translation.Status{Status: translation.StatusPartial}
	rec, resp := env.do(t, http.MethodGet, "/api/v1/translations/status?kind=product&id=1&lang=es", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", rec.Code)
	}
	status := dataMap(t, resp)["status"].(map[string]any)
	if status["status"] != "partial" {
		t.Fatalf("unexpected status: %#v", status)
	}
}

func TestFrontendContentResolvesLanguage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	_, resp := env.do(t, http.MethodGet, "/api/v1/translations/frontend-content?lang=es-ES", "", nil)
	if dataMap(t, resp)["language"] != "es" {
		t.Fatalf("unexpected language: %#v", resp.Data)
	}
	if len(env.translations.frontendLangs) != 1 || env.translations.frontendLangs[0] != "es" {
		t.Fatalf("unexpected frontend calls: %#v", env.translations.frontendLangs)
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	cases := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/translations/logs"},
		{http.MethodPost, "/api/v1/translations/runs"},
		{http.MethodPost, "/api/v1/translations/objects/product/1"},
	}
	for _, tc := range cases {
		rec, resp := env.do(t, tc.method, tc.target, "", map[string]string{"Authorization": "Bearer wrong-token"})
		if rec.Code != http.StatusUnauthorized || resp.Status != "fail" {
			t.Fatalf("%s %s: unexpected response %d %#v", tc.method, tc.target, rec.Code, resp)
		}
	}
}

func TestTranslationLogsIncludeSuccessRate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	env.store.logs = []translation.LogEntry{{
		RunUUID:         "run-1",
		TranslationType: "product",
		TargetLanguage:  "es",
		Status:          translation.LogStatusPartial,
		ItemsProcessed:  3,
		ItemsSuccess:    2,
		ItemsFailed:     1,
		Duration:        2 * time.Second,
		Logs:            "detail",
		CreatedAt:       time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}}

	_, resp := env.do(t, http.MethodGet, "/api/v1/translations/logs?language=es", "", adminHeaders())
	items := dataMap(t, resp)["items"].([]any)
	item := items[0].(map[string]any)
	if item["success_rate"] != 66.67 || item["duration"] != 2.0 {
		t.Fatalf("unexpected log item: %#v", item)
	}
	if _, ok := item["logs"]; ok {
		t.Fatalf("logs should be omitted unless requested")
	}
	if env.store.lastLogFilter.TargetLanguage != "es" {
		t.Fatalf("unexpected filter: %#v", env.store.lastLogFilter)
	}
}

func TestStartRunValidatesAndQueues(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodPost, "/api/v1/translations/runs", `{"kind":"widget","language":"fr"}`, adminHeaders())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	errs := dataMap(t, resp)["validation_errors"].(map[string]any)
	if _, ok := errs["kind"]; !ok {
		t.Fatalf("expected kind error: %#v", errs)
	}
	if _, ok := errs["language"]; !ok {
		t.Fatalf("expected language error: %#v", errs)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/translations/runs", `{"kind":"product","language":"all","force":true}`, adminHeaders())
	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	select {
	case <-env.runner.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run was not started")
	}
	env.runner.mu.Lock()
	defer env.runner.mu.Unlock()
	if len(env.runner.calls) != 1 || env.runner.calls[0].Kind != "product" || !env.runner.calls[0].Force {
		t.Fatalf("unexpected runner calls: %#v", env.runner.calls)
	}
}

func TestTranslateObject(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	env.store.records["category/5"] = translation.Record{ID: 5, Fields: map[string]string{"name": "Rails"}}

	rec, resp := env.do(t, http.MethodPost, "/api/v1/translations/objects/category/5", "", adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %#v", rec.Code, resp)
	}
	if len(env.translations.autoCalls) != 1 || env.translations.autoCalls[0].ID != 5 {
		t.Fatalf("unexpected auto-translate calls: %#v", env.translations.autoCalls)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/translations/objects/category/6", "", adminHeaders())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for missing record: %d", rec.Code)
	}
}

func TestStartRunAcceptsFrontendStrings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodPost, "/api/v1/translations/runs", `{"kind":"frontend","language":"zh"}`, adminHeaders())
	if rec.Code != http.StatusAccepted {
		t.Fatalf("unexpected status: %d %#v", rec.Code, resp)
	}

	select {
	case <-env.runner.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run was not started")
	}
	env.runner.mu.Lock()
	defer env.runner.mu.Unlock()
	if len(env.runner.calls) != 1 || env.runner.calls[0].Kind != "frontend" || env.runner.calls[0].Language != "zh" {
		t.Fatalf("unexpected runner calls: %#v", env.runner.calls)
	}
}

func TestCreateInquiryRecordsClientIP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	body := `{"name":" Ana Souza ","email":"ana@example.com","subject":"6063 window profiles","message":"Need 2 tons, anodized.","product_name":"Casement Window","quantity":"2 tons"}`
	rec, resp := env.do(t, http.MethodPost, "/api/v1/inquiries", body, map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"})
	if rec.Code != http.StatusCreated || resp.Status != "success" {
		t.Fatalf("unexpected response: %d %#v", rec.Code, resp)
	}
	if dataMap(t, resp)["id"] != 1.0 {
		t.Fatalf("unexpected data: %#v", resp.Data)
	}

	if len(env.store.inquiries) != 1 {
		t.Fatalf("expected one stored inquiry, got %d", len(env.store.inquiries))
	}
	got := env.store.inquiries[0]
	if got.Name != "Ana Souza" || got.Quantity != "2 tons" {
		t.Fatalf("unexpected inquiry: %#v", got)
	}
	if got.IPAddress == nil || *got.IPAddress != "203.0.113.9" {
		t.Fatalf("unexpected client ip: %v", got.IPAddress)
	}
}

func TestCreateInquiryValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil, nil)
	rec, resp := env.do(t, http.MethodPost, "/api/v1/inquiries", `{"name":"","email":"not-an-email","message":"hi"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	errs := dataMap(t, resp)["validation_errors"].(map[string]any)
	for _, field := range []string{"name", "email", "subject"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error: %#v", field, errs)
		}
	}
	if _, ok := errs["message"]; ok {
		t.Fatalf("message is valid: %#v", errs)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/v1/inquiries", `{"name":"Ana","status":"closed"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown fields should be rejected, got %d", rec.Code)
	}
	if len(env.store.inquiries) != 0 {
		t.Fatalf("invalid inquiries must not be stored")
	}
}
