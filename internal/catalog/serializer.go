package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/language"
	"lingye.co/catalog/internal/reader"
	"lingye.co/catalog/internal/templates"
	"lingye.co/catalog/internal/translation"
)

// Localizers hands out per-(kind, language) field lookups.
type Localizers interface {
	Localizer(kind translation.Kind, targetLang string) translation.Localizer
}

// TemplateResolver picks the template that applies to a product.
type TemplateResolver interface {
	Resolve(ctx context.Context, subject templates.Subject) (*templates.Template, error)
}

type Options struct {
	MediaBaseURL string
	SiteURL      string
	ExcerptRunes int
}

// Serializer renders catalog rows for the public API in a requested
// language. Translated fields fall back to the stored source text.
type Serializer struct {
	localizers   Localizers
	resolver     TemplateResolver
	merger       *templates.Merger
	media        MediaURL
	site         *url.URL
	excerptRunes int
}

func NewSerializer(localizers Localizers, resolver TemplateResolver, opts Options) *Serializer {
	media := NewMediaURL(opts.MediaBaseURL)
	site, err := url.Parse(strings.TrimSpace(opts.SiteURL))
	if err != nil || site.Host == "" {
		site = nil
	}
	runes := opts.ExcerptRunes
	if runes <= 0 {
		runes = reader.DefaultExcerptRunes
	}
	return &Serializer{
		localizers:   localizers,
		resolver:     resolver,
		merger:       templates.NewMerger(media.URL),
		media:        media,
		site:         site,
		excerptRunes: runes,
	}
}

func (s *Serializer) Merger() *templates.Merger {
	return s.merger
}

type CategoryView struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Image         any               `json:"image"`
	Slug          string            `json:"slug"`
	Order         int               `json:"order"`
	Subcategories []SubcategoryView `json:"subcategories,omitempty"`
}

type SubcategoryView struct {
	ID               int64  `json:"id"`
	ParentCategoryID int64  `json:"parent_category"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Image            any    `json:"image"`
	Slug             string `json:"slug"`
	Order            int    `json:"order"`
}

// Categories renders categories and, when withChildren is set, their active
// subcategories.
func (s *Serializer) Categories(lang string, rows []db.Category, withChildren bool) []CategoryView {
	lang = language.Resolve(lang)
	names := s.localizers.Localizer(translation.KindCategory, lang)
	subs := s.localizers.Localizer(translation.KindSubcategory, lang)

	out := make([]CategoryView, 0, len(rows))
	for _, row := range rows {
		view := CategoryView{
			ID:          row.ID,
			Name:        names.Text(row.ID, "name", row.Name),
			Description: names.Text(row.ID, "description", row.Description),
			Image:       nullable(s.media.URL(row.Image)),
			Slug:        row.Slug,
			Order:       row.Order,
		}
		if withChildren {
			view.Subcategories = s.subcategories(subs, row.Subcategories)
		}
		out = append(out, view)
	}
	return out
}

func (s *Serializer) Subcategories(lang string, rows []db.SubCategory) []SubcategoryView {
	return s.subcategories(s.localizers.Localizer(translation.KindSubcategory, language.Resolve(lang)), rows)
}

func (s *Serializer) subcategories(loc translation.Localizer, rows []db.SubCategory) []SubcategoryView {
	out := make([]SubcategoryView, 0, len(rows))
	for _, row := range rows {
		out = append(out, SubcategoryView{
			ID:               row.ID,
			ParentCategoryID: row.ParentCategoryID,
			Name:             loc.Text(row.ID, "name", row.Name),
			Description:      loc.Text(row.ID, "description", row.Description),
			Image:            nullable(s.media.URL(row.Image)),
			Slug:             row.Slug,
			Order:            row.Order,
		})
	}
	return out
}

type ProductImageView struct {
	ID        int64  `json:"id"`
	Image     any    `json:"image"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type ProductSummary struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description"`
	CategoryID      int64              `json:"category"`
	CategoryName    string             `json:"category_name"`
	SubcategoryID   *int64             `json:"subcategory"`
	SubcategoryName string             `json:"subcategory_name"`
	PrimaryImage    any                `json:"primary_image"`
	Images          []ProductImageView `json:"images"`
	IsFeatured      bool               `json:"is_featured"`
	Order           int                `json:"order"`
	CreatedAt       time.Time          `json:"created_at"`
}

// Products renders list rows. Templates are not merged into list rows.
func (s *Serializer) Products(lang string, rows []db.Product) []ProductSummary {
	lang = language.Resolve(lang)
	products := s.localizers.Localizer(translation.KindProduct, lang)
	categories := s.localizers.Localizer(translation.KindCategory, lang)
	subcategories := s.localizers.Localizer(translation.KindSubcategory, lang)

	out := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		images := s.productImages(row.Images)
		summary := ProductSummary{
			ID:            row.ID,
			Name:          products.Text(row.ID, "name", row.Name),
			Slug:          row.Slug,
			Description:   products.Text(row.ID, "description", row.Description),
			CategoryID:    row.CategoryID,
			SubcategoryID: row.SubcategoryID,
			PrimaryImage:  primaryImage(images),
			Images:        images,
			IsFeatured:    row.IsFeatured,
			Order:         row.Order,
			CreatedAt:     row.CreatedAt,
		}
		if row.Category != nil {
			summary.CategoryName = categories.Text(row.Category.ID, "name", row.Category.Name)
		}
		if row.Subcategory != nil {
			summary.SubcategoryName = subcategories.Text(row.Subcategory.ID, "name", row.Subcategory.Name)
		}
		out = append(out, summary)
	}
	return out
}

func (s *Serializer) productImages(rows []db.ProductImage) []ProductImageView {
	out := make([]ProductImageView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProductImageView{
			ID:        row.ID,
			Image:     nullable(s.media.URL(row.Image)),
			Caption:   row.Caption,
			IsPrimary: row.IsPrimary,
			Order:     row.Order,
		})
	}
	return out
}

func primaryImage(images []ProductImageView) any {
	for _, img := range images {
		if img.IsPrimary {
			return img.Image
		}
	}
	if len(images) > 0 {
		return images[0].Image
	}
	return nil
}

// ProductDetail renders one product with its translated text, then fills
// every gap from the resolved template. factory_images and process_items
// are always present, empty when no template applies.
func (s *Serializer) ProductDetail(ctx context.Context, lang string, row db.Product) (map[string]any, error) {
	lang = language.Resolve(lang)
	products := s.localizers.Localizer(translation.KindProduct, lang)

	detail := map[string]any{
		"id":                  row.ID,
		"name":                products.Text(row.ID, "name", row.Name),
		"slug":                row.Slug,
		"description":         products.Text(row.ID, "description", row.Description),
		"features":            products.Text(row.ID, "features", row.Features),
		"applications":        products.Text(row.ID, "applications", row.Applications),
		"specifications":      row.Specifications,
		"range_param":         row.RangeParam,
		"type_param":          row.TypeParam,
		"surface_treatment":   row.SurfaceTreatment,
		"colors":              row.Colors,
		"grade":               row.Grade,
		"temper":              row.Temper,
		"category":            row.CategoryID,
		"subcategory":         row.SubcategoryID,
		"use_template":        row.UseTemplate,
		"is_featured":         row.IsFeatured,
		"order":               row.Order,
		"created_at":          row.CreatedAt,
		"updated_at":          row.UpdatedAt,
		"language":            lang,
		"images":              s.productImages(row.Images),
		"specification_items": s.productSpecifications(row.SpecificationItems),
		"feature_items":       s.productFeatures(row.FeatureItems),
		"application_items":   s.productApplications(row.ApplicationItems),
	}
	if row.Category != nil {
		cat := s.localizers.Localizer(translation.KindCategory, lang)
		detail["category_name"] = cat.Text(row.Category.ID, "name", row.Category.Name)
	}
	if row.Subcategory != nil {
		sub := s.localizers.Localizer(translation.KindSubcategory, lang)
		detail["subcategory_name"] = sub.Text(row.Subcategory.ID, "name", row.Subcategory.Name)
	}

	subject := templates.Subject{
		Template:      row.Template.AsTemplate(),
		UseTemplate:   row.UseTemplate,
		CategoryID:    &row.CategoryID,
		SubcategoryID: row.SubcategoryID,
	}
	tmpl, err := s.resolver.Resolve(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve template for product %d: %w", row.ID, err)
	}

	detail = s.merger.Merge(detail, tmpl)
	if tmpl != nil {
		detail["template"] = map[string]any{"id": tmpl.ID, "name": tmpl.DisplayName()}
	} else {
		detail["template"] = nil
	}
	ensureCollection(detail, "factory_images")
	ensureCollection(detail, "process_items")
	return detail, nil
}

func ensureCollection(detail map[string]any, key string) {
	if _, ok := detail[key]; !ok {
		detail[key] = []map[string]any{}
	}
}

func (s *Serializer) productSpecifications(rows []db.ProductSpecification) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{"id": row.ID, "name": row.Name, "value": row.Value, "order": row.Order})
	}
	return out
}

func (s *Serializer) productFeatures(rows []db.ProductFeature) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{"id": row.ID, "name": row.Name, "description": row.Description, "order": row.Order})
	}
	return out
}

func (s *Serializer) productApplications(rows []db.ProductApplication) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"id":          row.ID,
			"name":        row.Name,
			"description": row.Description,
			"image":       nullable(s.media.URL(row.Image)),
			"order":       row.Order,
		})
	}
	return out
}

// Template renders a template for the template detail endpoint.
func (s *Serializer) Template(tmpl *templates.Template) map[string]any {
	return s.merger.Represent(tmpl)
}

type ArticleView struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content,omitempty"`
	FeaturedImage   any        `json:"featured_image"`
	IsFeatured      bool       `json:"is_featured"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	PublishedAt     *time.Time `json:"published_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Articles renders article rows; withContent adds the full body.
func (s *Serializer) Articles(lang string, rows []db.Article, withContent bool) []ArticleView {
	loc := s.localizers.Localizer(translation.KindArticle, language.Resolve(lang))

	out := make([]ArticleView, 0, len(rows))
	for _, row := range rows {
		content := loc.Text(row.ID, "content", row.Content)
		stored := loc.Text(row.ID, "excerpt", row.Excerpt)
		view := ArticleView{
			ID:              row.ID,
			Title:           loc.Text(row.ID, "title", row.Title),
			Slug:            row.Slug,
			Excerpt:         reader.Excerpt(stored, content, s.excerptRunes, s.site),
			FeaturedImage:   nullable(s.media.URL(row.FeaturedImage)),
			IsFeatured:      row.IsFeatured,
			MetaTitle:       row.MetaTitle,
			MetaDescription: row.MetaDescription,
			PublishedAt:     row.PublishedAt,
			CreatedAt:       row.CreatedAt,
		}
		if withContent {
			view.Content = content
		}
		out = append(out, view)
	}
	return out
}

type ContactInfoView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

func (s *Serializer) ContactInfo(lang string, rows []db.ContactInfo) []ContactInfoView {
	loc := s.localizers.Localizer(translation.KindContactInfo, language.Resolve(lang))

	out := make([]ContactInfoView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ContactInfoView{
			ID:    row.ID,
			Name:  loc.Text(row.ID, "name", row.Name),
			Value: loc.Text(row.ID, "value", row.Value),
			Type:  row.Type,
			Order: row.Order,
		})
	}
	return out
}

// CompanyInfo renders the keyed company text blocks as one object.
func (s *Serializer) CompanyInfo(lang string, rows []db.CompanyInfo) map[string]string {
	loc := s.localizers.Localizer(translation.KindCompanyInfo, language.Resolve(lang))

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = loc.Text(row.ID, "value", row.Value)
	}
	return out
}

type AdvantageView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

func (s *Serializer) Advantages(lang string, rows []db.Advantage) []AdvantageView {
	loc := s.localizers.Localizer(translation.KindAdvantage, language.Resolve(lang))

	out := make([]AdvantageView, 0, len(rows))
	for _, row := range rows {
		out = append(out, AdvantageView{
			ID:          row.ID,
			Title:       loc.Text(row.ID, "title", row.Title),
			Description: loc.Text(row.ID, "description", row.Description),
			Icon:        row.Icon,
			Order:       row.Order,
		})
	}
	return out
}

type CertificateView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       any        `json:"image"`
	IssueDate   *time.Time `json:"issue_date"`
	Order       int        `json:"order"`
}

func (s *Serializer) Certificates(lang string, rows []db.Certificate) []CertificateView {
	loc := s.localizers.Localizer(translation.KindCertificate, language.Resolve(lang))

	out := make([]CertificateView, 0, len(rows))
	for _, row := range rows {
		out = append(out, CertificateView{
			ID:          row.ID,
			Name:        loc.Text(row.ID, "name", row.Name),
			Description: loc.Text(row.ID, "description", row.Description),
			Image:       nullable(s.media.URL(row.Image)),
			IssueDate:   row.IssueDate,
			Order:       row.Order,
		})
	}
	return out
}
