package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/templates"
	"lingye.co/catalog/internal/translation"
)

func newTestSerializer(t *testing.T, finder templates.SliceFinder, files map[translation.Kind]map[string]string) *Serializer {
	t.Helper()

	store := translation.NewFileStore(t.TempDir(), zerolog.Nop())
	for kind, mapping := range files {
		if err := store.Save(kind, "es", mapping); err != nil {
			t.Fatalf("seed %s: %v", kind, err)
		}
	}
	orch := translation.NewOrchestrator(nil, translation.NoopCache{}, store, zerolog.Nop(), translation.Options{})
	return NewSerializer(orch, templates.NewResolver(finder), Options{
		MediaBaseURL: "https://cdn.example.com/media",
		SiteURL:      "https://www.example.com",
		ExcerptRunes: 40,
	})
}

func int64Ptr(v int64) *int64 { return &v }

func TestMediaURL(t *testing.T) {
	t.Parallel()

	media := NewMediaURL("/media")
	cases := map[string]string{
		"":                              "",
		"products/a.jpg":                "/media/products/a.jpg",
		"/products/a.jpg":               "/media/products/a.jpg",
		"https://img.example.com/a.jpg": "https://img.example.com/a.jpg",
	}
	for ref, want := range cases {
		if got := media.URL(ref); got != want {
			t.Fatalf("URL(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestCategoriesUseStoredTranslations(t *testing.T) {
	t.Parallel()

	s := newTestSerializer(t, nil, map[translation.Kind]map[string]string{
		translation.KindCategory:    {"name_1": "Perfiles de ventana"},
		translation.KindSubcategory: {"name_10": "Abatible"},
	})
	rows := []db.Category{{
		ID:          1,
		Name:        "Window Profiles",
		Description: "Thermal break series",
		Image:       "categories/window.jpg",
		Subcategories: []db.SubCategory{
			{ID: 10, ParentCategoryID: 1, Name: "Casement"},
		},
	}}

	views := s.Categories("es-ES", rows, true)
	if views[0].Name != "Perfiles de ventana" {
		t.Fatalf("unexpected name: %q", views[0].Name)
	}
	if views[0].Description != "Thermal break series" {
		t.Fatalf("missing translation should fall back: %q", views[0].Description)
	}
	if views[0].Image != "https://cdn.example.com/media/categories/window.jpg" {
		t.Fatalf("unexpected image: %v", views[0].Image)
	}
	if len(views[0].Subcategories) != 1 || views[0].Subcategories[0].Name != "Abatible" {
		t.Fatalf("unexpected subcategories: %#v", views[0].Subcategories)
	}

	english := s.Categories("fr", rows, false)
	if english[0].Name != "Window Profiles" || english[0].Subcategories != nil {
		t.Fatalf("deprecated language should render source text: %#v", english[0])
	}
}

func TestProductDetailMergesSubcategoryTemplate(t *testing.T) {
	t.Parallel()

	finder := templates.SliceFinder{
		{
			ID:            5,
			Name:          "Casement defaults",
			SubcategoryID: int64Ptr(10),
			IsActive:      true,
			Grade:         "6063 Series",
			LeadTime:      "7-15 Days",
			Description:   "Template description",
			OEMAvailable:  true,
			FactoryImages: []templates.FactoryImage{
				{ID: 2, Title: "Press", Image: "factory/press.jpg", Order: 2},
				{ID: 1, Title: "Die shop", Image: "", Order: 1},
			},
		},
	}
	s := newTestSerializer(t, finder, map[translation.Kind]map[string]string{
		translation.KindProduct: {"name_7": "Perfil abatible"},
	})
	product := db.Product{
		ID:            7,
		CategoryID:    1,
		SubcategoryID: int64Ptr(10),
		UseTemplate:   true,
		Name:          "Casement Profile",
		Description:   "",
		Grade:         "6061",
		Category:      &db.Category{ID: 1, Name: "Window Profiles"},
		SpecificationItems: []db.ProductSpecification{
			{ID: 3, Name: "Wall thickness", Value: "1.4mm"},
		},
	}

	detail, err := s.ProductDetail(context.Background(), "es", product)
	if err != nil {
		t.Fatalf("product detail: %v", err)
	}
	if detail["name"] != "Perfil abatible" {
		t.Fatalf("unexpected name: %v", detail["name"])
	}
	if detail["grade"] != "6061" {
		t.Fatalf("product value must win: %v", detail["grade"])
	}
	if detail["description"] != "Template description" || detail["lead_time"] != "7-15 Days" {
		t.Fatalf("blank fields should come from template: %v / %v", detail["description"], detail["lead_time"])
	}
	if detail["oem_available"] != true {
		t.Fatalf("unexpected oem_available: %v", detail["oem_available"])
	}
	specs := detail["specification_items"].([]map[string]any)
	if len(specs) != 1 || specs[0]["name"] != "Wall thickness" {
		t.Fatalf("own items must be kept: %#v", specs)
	}
	images := detail["factory_images"].([]map[string]any)
	if len(images) != 2 || images[0]["title"] != "Die shop" || images[0]["image"] != nil {
		t.Fatalf("factory images should be ordered with null empty image: %#v", images)
	}
	if images[1]["image"] != "https://cdn.example.com/media/factory/press.jpg" {
		t.Fatalf("unexpected image url: %v", images[1]["image"])
	}
	tmpl := detail["template"].(map[string]any)
	if tmpl["id"] != int64(5) {
		t.Fatalf("unexpected template: %#v", tmpl)
	}
}

func TestProductDetailWithoutTemplateHasEmptyCollections(t *testing.T) {
	t.Parallel()

	finder := templates.SliceFinder{
		{ID: 9, Name: "Category", CategoryID: int64Ptr(1), IsActive: true, Grade: "6063"},
	}
	s := newTestSerializer(t, finder, nil)
	product := db.Product{ID: 8, CategoryID: 1, UseTemplate: false, Name: "Door Frame"}

	detail, err := s.ProductDetail(context.Background(), "en", product)
	if err != nil {
		t.Fatalf("product detail: %v", err)
	}
	if detail["template"] != nil {
		t.Fatalf("use_template=false must not resolve: %#v", detail["template"])
	}
	if detail["grade"] != "" {
		t.Fatalf("grade should stay blank: %v", detail["grade"])
	}
	for _, key := range []string{"factory_images", "process_items"} {
		items, ok := detail[key].([]map[string]any)
		if !ok || len(items) != 0 {
			t.Fatalf("%s should be an empty list: %#v", key, detail[key])
		}
	}
}

func TestProductsPicksPrimaryImage(t *testing.T) {
	t.Parallel()

	s := newTestSerializer(t, nil, nil)
	rows := []db.Product{{
		ID:         1,
		CategoryID: 2,
		Name:       "Sliding Rail",
		Category:   &db.Category{ID: 2, Name: "Doors"},
		Images: []db.ProductImage{
			{ID: 1, Image: "a.jpg"},
			{ID: 2, Image: "b.jpg", IsPrimary: true},
		},
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}}

	views := s.Products("zh", rows)
	if views[0].PrimaryImage != "https://cdn.example.com/media/b.jpg" {
		t.Fatalf("unexpected primary image: %v", views[0].PrimaryImage)
	}
	if views[0].CategoryName != "Doors" {
		t.Fatalf("unexpected category name: %q", views[0].CategoryName)
	}
}

func TestArticlesDeriveExcerpt(t *testing.T) {
	t.Parallel()

	s := newTestSerializer(t, nil, map[translation.Kind]map[string]string{
		translation.KindArticle: {"title_4": "Nueva línea de extrusión"},
	})
	rows := []db.Article{{
		ID:      4,
		Title:   "New extrusion line",
		Content: "Our second extrusion press started production in March with a 2500 ton capacity.",
	}}

	views := s.Articles("es", rows, false)
	if views[0].Title != "Nueva línea de extrusión" {
		t.Fatalf("unexpected title: %q", views[0].Title)
	}
	if views[0].Excerpt != "Our second extrusion press started prod…" {
		t.Fatalf("unexpected excerpt: %q", views[0].Excerpt)
	}
	if views[0].Content != "" {
		t.Fatalf("content should be omitted from lists")
	}
}

func TestCompanyInfoKeyedByKey(t *testing.T) {
	t.Parallel()

	s := newTestSerializer(t, nil, map[translation.Kind]map[string]string{
		translation.KindCompanyInfo: {"value_1": "Fabricante de perfiles"},
	})
	got := s.CompanyInfo("es", []db.CompanyInfo{
		{ID: 1, Key: "tagline", Value: "Profile manufacturer"},
		{ID: 2, Key: "founded", Value: "2006"},
	})
	if got["tagline"] != "Fabricante de perfiles" || got["founded"] != "2006" {
		t.Fatalf("unexpected company info: %#v", got)
	}
}
