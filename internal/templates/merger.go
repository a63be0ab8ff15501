package templates

import (
	"reflect"
	"sort"
)

// ImageURL turns a stored image reference into a public URL. Empty
// references render as null.
type ImageURL func(ref string) string

// Merger fills gaps in a serialized product from a template. It never
// overwrites a present value and never touches persisted state.
type Merger struct {
	imageURL ImageURL
}

func NewMerger(imageURL ImageURL) *Merger {
	if imageURL == nil {
		imageURL = func(ref string) string { return ref }
	}
	return &Merger{imageURL: imageURL}
}

type scalarField struct {
	key   string
	value func(*Template) string
}

// scalarFields maps representation keys to template values. The free-text
// blocks are stored on templates under *_text names.
var scalarFields = []scalarField{
	{"range_param", func(t *Template) string { return t.RangeParam }},
	{"type_param", func(t *Template) string { return t.TypeParam }},
	{"surface_treatment", func(t *Template) string { return t.SurfaceTreatment }},
	{"colors", func(t *Template) string { return t.Colors }},
	{"grade", func(t *Template) string { return t.Grade }},
	{"temper", func(t *Template) string { return t.Temper }},
	{"description", func(t *Template) string { return t.Description }},
	{"features", func(t *Template) string { return t.FeaturesText }},
	{"applications", func(t *Template) string { return t.ApplicationsText }},
	{"specifications", func(t *Template) string { return t.SpecificationsText }},
	{"packaging_details", func(t *Template) string { return t.PackagingDetails }},
	{"free_samples", func(t *Template) string { return t.FreeSamples }},
	{"supply_ability", func(t *Template) string { return t.SupplyAbility }},
	{"payment_terms", func(t *Template) string { return t.PaymentTerms }},
	{"product_origin", func(t *Template) string { return t.ProductOrigin }},
	{"shipping_port", func(t *Template) string { return t.ShippingPort }},
	{"lead_time", func(t *Template) string { return t.LeadTime }},
}

// ScalarKeys lists the scalar representation keys the merger fills.
func ScalarKeys() []string {
	keys := make([]string, 0, len(scalarFields)+1)
	for _, field := range scalarFields {
		keys = append(keys, field.key)
	}
	return append(keys, "oem_available")
}

// Merge fills representation in place and returns it. Scalars are filled
// when absent, nil or "". oem_available is filled only when the key is
// missing, so an explicit false survives. A collection is replaced as a
// whole when absent or empty; a partially filled one is left alone.
func (m *Merger) Merge(representation map[string]any, tmpl *Template) map[string]any {
	if representation == nil {
		representation = map[string]any{}
	}
	if tmpl == nil {
		return representation
	}

	for _, field := range scalarFields {
		if isBlank(representation[field.key]) {
			representation[field.key] = field.value(tmpl)
		}
	}
	if _, ok := representation["oem_available"]; !ok {
		representation["oem_available"] = tmpl.OEMAvailable
	}

	if isBlank(representation["specification_items"]) {
		representation["specification_items"] = m.SpecificationItems(tmpl.SpecificationItems)
	}
	if isBlank(representation["feature_items"]) {
		representation["feature_items"] = m.FeatureItems(tmpl.FeatureItems)
	}
	if isBlank(representation["application_items"]) {
		representation["application_items"] = m.ApplicationItems(tmpl.ApplicationItems)
	}
	if isBlank(representation["factory_images"]) {
		representation["factory_images"] = m.FactoryImages(tmpl.FactoryImages)
	}
	if isBlank(representation["process_items"]) {
		representation["process_items"] = m.ProcessItems(tmpl.ProcessItems)
	}
	return representation
}

// Represent renders a template for the template detail endpoint, with the
// same item shapes Merge produces.
func (m *Merger) Represent(tmpl *Template) map[string]any {
	out := map[string]any{
		"id":                  tmpl.ID,
		"name":                tmpl.Name,
		"display_name":        tmpl.DisplayName(),
		"category":            tmpl.CategoryID,
		"category_name":       tmpl.CategoryName,
		"subcategory":         tmpl.SubcategoryID,
		"subcategory_name":    tmpl.SubcategoryName,
		"is_active":           tmpl.IsActive,
		"order":               tmpl.Order,
		"features_text":       tmpl.FeaturesText,
		"applications_text":   tmpl.ApplicationsText,
		"specifications_text": tmpl.SpecificationsText,
		"oem_available":       tmpl.OEMAvailable,
		"specification_items": m.SpecificationItems(tmpl.SpecificationItems),
		"feature_items":       m.FeatureItems(tmpl.FeatureItems),
		"application_items":   m.ApplicationItems(tmpl.ApplicationItems),
		"factory_images":      m.FactoryImages(tmpl.FactoryImages),
		"process_items":       m.ProcessItems(tmpl.ProcessItems),
	}
	for _, field := range scalarFields {
		if _, ok := out[field.key]; !ok {
			out[field.key] = field.value(tmpl)
		}
	}
	return out
}

func (m *Merger) SpecificationItems(items []SpecificationItem) []map[string]any {
	sorted := append([]SpecificationItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]map[string]any, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, map[string]any{
			"id":    item.ID,
			"name":  item.Name,
			"value": item.Value,
			"order": item.Order,
		})
	}
	return out
}

func (m *Merger) FeatureItems(items []FeatureItem) []map[string]any {
	sorted := append([]FeatureItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]map[string]any, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, map[string]any{
			"id":          item.ID,
			"name":        item.Name,
			"description": item.Description,
			"order":       item.Order,
		})
	}
	return out
}

func (m *Merger) ApplicationItems(items []ApplicationItem) []map[string]any {
	sorted := append([]ApplicationItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]map[string]any, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, map[string]any{
			"id":          item.ID,
			"name":        item.Name,
			"description": item.Description,
			"image":       m.image(item.Image),
			"order":       item.Order,
		})
	}
	return out
}

func (m *Merger) FactoryImages(items []FactoryImage) []map[string]any {
	sorted := append([]FactoryImage(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]map[string]any, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, map[string]any{
			"id":          item.ID,
			"title":       item.Title,
			"description": item.Description,
			"image":       m.image(item.Image),
			"category":    item.Category,
			"order":       item.Order,
		})
	}
	return out
}

func (m *Merger) ProcessItems(items []ProcessItem) []map[string]any {
	sorted := append([]ProcessItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]map[string]any, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, map[string]any{
			"id":          item.ID,
			"name":        item.Name,
			"description": item.Description,
			"image":       m.image(item.Image),
			"order":       item.Order,
		})
	}
	return out
}

// image returns nil for an empty reference so JSON renders null.
func (m *Merger) image(ref string) any {
	if ref == "" {
		return nil
	}
	return m.imageURL(ref)
}

// isBlank treats nil, "", nil pointers and empty slices or maps as absent.
// false and 0 are values.
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}
