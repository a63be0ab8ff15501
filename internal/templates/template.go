package templates

// Template is a named bundle of product defaults. It may be scoped to one
// category, one subcategory, both, or neither.
type Template struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CategoryID      *int64 `json:"category,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	SubcategoryID   *int64 `json:"subcategory,omitempty"`
	SubcategoryName string `json:"subcategory_name,omitempty"`
	IsActive        bool   `json:"is_active"`
	Order           int    `json:"order"`

	RangeParam         string `json:"range_param"`
	TypeParam          string `json:"type_param"`
	SurfaceTreatment   string `json:"surface_treatment"`
	Colors             string `json:"colors"`
	Grade              string `json:"grade"`
	Temper             string `json:"temper"`
	Description        string `json:"description"`
	FeaturesText       string `json:"features_text"`
	ApplicationsText   string `json:"applications_text"`
	SpecificationsText string `json:"specifications_text"`
	PackagingDetails   string `json:"packaging_details"`
	OEMAvailable       bool   `json:"oem_available"`
	FreeSamples        string `json:"free_samples"`
	SupplyAbility      string `json:"supply_ability"`
	PaymentTerms       string `json:"payment_terms"`
	ProductOrigin      string `json:"product_origin"`
	ShippingPort       string `json:"shipping_port"`
	LeadTime           string `json:"lead_time"`

	SpecificationItems []SpecificationItem `json:"specification_items"`
	FeatureItems       []FeatureItem       `json:"feature_items"`
	ApplicationItems   []ApplicationItem   `json:"application_items"`
	FactoryImages      []FactoryImage      `json:"factory_images"`
	ProcessItems       []ProcessItem       `json:"process_items"`
}

type SpecificationItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

type FeatureItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// ApplicationItem.Image is a stored file reference, resolved to a URL when
// rendered.
type ApplicationItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       int    `json:"order"`
}

type FactoryImage struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
}

type ProcessItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       int    `json:"order"`
}

// Scope classifies which implicit match, if any, can select a template.
type Scope int

const (
	ScopeUnscoped Scope = iota
	ScopeCategory
	ScopeSubcategory
	// ScopeDual templates carry both references and are only reachable by
	// direct assignment.
	ScopeDual
)

func (t *Template) Scope() Scope {
	switch {
	case t.CategoryID != nil && t.SubcategoryID != nil:
		return ScopeDual
	case t.SubcategoryID != nil:
		return ScopeSubcategory
	case t.CategoryID != nil:
		return ScopeCategory
	default:
		return ScopeUnscoped
	}
}

// DisplayName appends the most specific scope name, as shown in admin lists.
func (t *Template) DisplayName() string {
	switch {
	case t.SubcategoryID != nil && t.SubcategoryName != "":
		return t.Name + " (" + t.SubcategoryName + ")"
	case t.CategoryID != nil && t.CategoryName != "":
		return t.Name + " (" + t.CategoryName + ")"
	default:
		return t.Name
	}
}
