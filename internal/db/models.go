package db

import (
	"time"
)

// Category maps catalog.categories.
type Category struct {
	ID            int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string        `gorm:"column:name;type:varchar(100);not null"`
	Description   string        `gorm:"column:description;type:text;not null;default:''"`
	Image         string        `gorm:"column:image;type:varchar(255);not null;default:''"`
	Slug          string        `gorm:"column:slug;type:varchar(120);not null;uniqueIndex"`
	Order         int           `gorm:"column:order;type:integer;not null;default:0"`
	IsActive      bool          `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time     `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
	Subcategories []SubCategory `gorm:"foreignKey:ParentCategoryID"`
}

func (Category) TableName() string { return "catalog.categories" }

// SubCategory maps catalog.subcategories.
type SubCategory struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ParentCategoryID int64     `gorm:"column:parent_category_id;type:bigint;not null;index"`
	Name             string    `gorm:"column:name;type:varchar(100);not null"`
	Description      string    `gorm:"column:description;type:text;not null;default:''"`
	Image            string    `gorm:"column:image;type:varchar(255);not null;default:''"`
	Slug             string    `gorm:"column:slug;type:varchar(120);not null;uniqueIndex"`
	Order            int       `gorm:"column:order;type:integer;not null;default:0"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (SubCategory) TableName() string { return "catalog.subcategories" }

// Product maps catalog.products. Commercial fields such as packaging or
// lead time live on templates only.
type Product struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CategoryID       int64     `gorm:"column:category_id;type:bigint;not null;index"`
	SubcategoryID    *int64    `gorm:"column:subcategory_id;type:bigint;index"`
	TemplateID       *int64    `gorm:"column:template_id;type:bigint;index"`
	UseTemplate      bool      `gorm:"column:use_template;not null;default:true"`
	Name             string    `gorm:"column:name;type:varchar(200);not null"`
	Description      string    `gorm:"column:description;type:text;not null;default:''"`
	Features         string    `gorm:"column:features;type:text;not null;default:''"`
	Applications     string    `gorm:"column:applications;type:text;not null;default:''"`
	Specifications   string    `gorm:"column:specifications;type:text;not null;default:''"`
	RangeParam       string    `gorm:"column:range_param;type:varchar(200);not null;default:''"`
	TypeParam        string    `gorm:"column:type_param;type:varchar(200);not null;default:''"`
	SurfaceTreatment string    `gorm:"column:surface_treatment;type:varchar(300);not null;default:''"`
	Colors           string    `gorm:"column:colors;type:varchar(300);not null;default:''"`
	Grade            string    `gorm:"column:grade;type:varchar(100);not null;default:''"`
	Temper           string    `gorm:"column:temper;type:varchar(100);not null;default:''"`
	Slug             string    `gorm:"column:slug;type:varchar(220);not null;uniqueIndex"`
	IsFeatured       bool      `gorm:"column:is_featured;not null;default:false"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	Order            int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt        time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`

	Category           *Category              `gorm:"foreignKey:CategoryID"`
	Subcategory        *SubCategory           `gorm:"foreignKey:SubcategoryID"`
	Template           *ProductTemplate       `gorm:"foreignKey:TemplateID"`
	Images             []ProductImage         `gorm:"foreignKey:ProductID"`
	SpecificationItems []ProductSpecification `gorm:"foreignKey:ProductID"`
	FeatureItems       []ProductFeature       `gorm:"foreignKey:ProductID"`
	ApplicationItems   []ProductApplication   `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "catalog.products" }

// ProductImage maps catalog.product_images.
type ProductImage struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;type:bigint;not null;index"`
	Image     string    `gorm:"column:image;type:varchar(255);not null"`
	Caption   string    `gorm:"column:caption;type:varchar(200);not null;default:''"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	Order     int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ProductImage) TableName() string { return "catalog.product_images" }

// ProductSpecification maps catalog.product_specifications.
type ProductSpecification struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;type:bigint;not null;index"`
	Name      string    `gorm:"column:name;type:varchar(200);not null"`
	Value     string    `gorm:"column:value;type:text;not null"`
	Order     int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ProductSpecification) TableName() string { return "catalog.product_specifications" }

// ProductFeature maps catalog.product_features.
type ProductFeature struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:product_id;type:bigint;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(200);not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Order       int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ProductFeature) TableName() string { return "catalog.product_features" }

// ProductApplication maps catalog.product_applications.
type ProductApplication struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:product_id;type:bigint;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(200);not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Image       string    `gorm:"column:image;type:varchar(255);not null;default:''"`
	Order       int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ProductApplication) TableName() string { return "catalog.product_applications" }

// ProductTemplate maps catalog.product_templates. Column defaults carry the
// house values new templates start with.
type ProductTemplate struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string    `gorm:"column:name;type:varchar(200);not null"`
	CategoryID         *int64    `gorm:"column:category_id;type:bigint;index"`
	SubcategoryID      *int64    `gorm:"column:subcategory_id;type:bigint;index"`
	RangeParam         string    `gorm:"column:range_param;type:varchar(200);not null;default:'OEM factory supply aluminium profiles'"`
	TypeParam          string    `gorm:"column:type_param;type:varchar(200);not null;default:'For door and window profiles'"`
	SurfaceTreatment   string    `gorm:"column:surface_treatment;type:varchar(300);not null;default:'Mill Finished, Anodized, Powder Coated, Electrohoresis, Wood Grain'"`
	Colors             string    `gorm:"column:colors;type:varchar(300);not null;default:'Silver, White, Black, Bronze, Champagne, Golden or customized'"`
	Grade              string    `gorm:"column:grade;type:varchar(100);not null;default:'6063 Series'"`
	Temper             string    `gorm:"column:temper;type:varchar(100);not null;default:'T5, T6'"`
	Description        string    `gorm:"column:description;type:text;not null;default:''"`
	FeaturesText       string    `gorm:"column:features_text;type:text;not null;default:''"`
	ApplicationsText   string    `gorm:"column:applications_text;type:text;not null;default:''"`
	SpecificationsText string    `gorm:"column:specifications_text;type:text;not null;default:''"`
	PackagingDetails   string    `gorm:"column:packaging_details;type:text;not null;default:''"`
	OEMAvailable       bool      `gorm:"column:oem_available;not null;default:true"`
	FreeSamples        string    `gorm:"column:free_samples;type:varchar(200);not null;default:'Available, about 1 days can be sent'"`
	SupplyAbility      string    `gorm:"column:supply_ability;type:varchar(200);not null;default:''"`
	PaymentTerms       string    `gorm:"column:payment_terms;type:varchar(200);not null;default:''"`
	ProductOrigin      string    `gorm:"column:product_origin;type:varchar(200);not null;default:'Foshan China'"`
	ShippingPort       string    `gorm:"column:shipping_port;type:varchar(200);not null;default:'Shenzhen/Guangzhou/Foshan'"`
	LeadTime           string    `gorm:"column:lead_time;type:varchar(200);not null;default:'7-15 Days'"`
	IsActive           bool      `gorm:"column:is_active;not null;default:true"`
	Order              int       `gorm:"column:order;type:integer;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`

	Category           *Category               `gorm:"foreignKey:CategoryID"`
	Subcategory        *SubCategory            `gorm:"foreignKey:SubcategoryID"`
	SpecificationItems []TemplateSpecification `gorm:"foreignKey:TemplateID"`
	FeatureItems       []TemplateFeature       `gorm:"foreignKey:TemplateID"`
	ApplicationItems   []TemplateApplication   `gorm:"foreignKey:TemplateID"`
	FactoryImages      []TemplateFactoryImage  `gorm:"foreignKey:TemplateID"`
	ProcessItems       []TemplateProcess       `gorm:"foreignKey:TemplateID"`
}

func (ProductTemplate) TableName() string { return "catalog.product_templates" }

// TemplateSpecification maps catalog.template_specifications.
type TemplateSpecification struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID int64  `gorm:"column:template_id;type:bigint;not null;index"`
	Name       string `gorm:"column:name;type:varchar(200);not null"`
	Value      string `gorm:"column:value;type:text;not null"`
	Order      int    `gorm:"column:order;type:integer;not null;default:0"`
}

func (TemplateSpecification) TableName() string { return "catalog.template_specifications" }

// TemplateFeature maps catalog.template_features.
type TemplateFeature struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID  int64  `gorm:"column:template_id;type:bigint;not null;index"`
	Name        string `gorm:"column:name;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text;not null"`
	Order       int    `gorm:"column:order;type:integer;not null;default:0"`
}

func (TemplateFeature) TableName() string { return "catalog.template_features" }

// TemplateApplication maps catalog.template_applications.
type TemplateApplication struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID  int64  `gorm:"column:template_id;type:bigint;not null;index"`
	Name        string `gorm:"column:name;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text;not null"`
	Image       string `gorm:"column:image;type:varchar(255);not null;default:''"`
	Order       int    `gorm:"column:order;type:integer;not null;default:0"`
}

func (TemplateApplication) TableName() string { return "catalog.template_applications" }

// TemplateFactoryImage maps catalog.template_factory_images.
type TemplateFactoryImage struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID  int64  `gorm:"column:template_id;type:bigint;not null;index"`
	Title       string `gorm:"column:title;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
	Image       string `gorm:"column:image;type:varchar(255);not null;default:''"`
	Category    string `gorm:"column:category;type:varchar(100);not null;default:''"`
	Order       int    `gorm:"column:order;type:integer;not null;default:0"`
}

func (TemplateFactoryImage) TableName() string { return "catalog.template_factory_images" }

// TemplateProcess maps catalog.template_processes.
type TemplateProcess struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID  int64  `gorm:"column:template_id;type:bigint;not null;index"`
	Name        string `gorm:"column:name;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text;not null;default:''"`
	Image       string `gorm:"column:image;type:varchar(255);not null;default:''"`
	Order       int    `gorm:"column:order;type:integer;not null;default:0"`
}

func (TemplateProcess) TableName() string { return "catalog.template_processes" }

// Article maps content.articles.
type Article struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title           string     `gorm:"column:title;type:varchar(200);not null"`
	Slug            string     `gorm:"column:slug;type:varchar(200);not null;uniqueIndex"`
	Content         string     `gorm:"column:content;type:text;not null"`
	Excerpt         string     `gorm:"column:excerpt;type:text;not null;default:''"`
	FeaturedImage   string     `gorm:"column:featured_image;type:varchar(255);not null;default:''"`
	Status          string     `gorm:"column:status;type:varchar(10);not null;default:'draft';index"`
	IsFeatured      bool       `gorm:"column:is_featured;not null;default:false"`
	MetaTitle       string     `gorm:"column:meta_title;type:varchar(200);not null;default:''"`
	MetaDescription string     `gorm:"column:meta_description;type:text;not null;default:''"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
	PublishedAt     *time.Time `gorm:"column:published_at;type:timestamptz"`
}

func (Article) TableName() string { return "content.articles" }

const ArticleStatusPublished = "published"

// ContactInfo maps content.contact_infos. Type is phone, email, address or
// whatsapp.
type ContactInfo struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;type:varchar(100);not null"`
	Value    string `gorm:"column:value;type:varchar(200);not null"`
	Type     string `gorm:"column:type;type:varchar(50);not null"`
	Order    int    `gorm:"column:order;type:integer;not null;default:0"`
	IsActive bool   `gorm:"column:is_active;not null;default:true"`
}

func (ContactInfo) TableName() string { return "content.contact_infos" }

// Inquiry maps content.inquiries, one quote request from the website.
type Inquiry struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;type:varchar(100);not null"`
	Company     string     `gorm:"column:company;type:varchar(200);not null;default:''"`
	Email       string     `gorm:"column:email;type:varchar(254);not null"`
	Phone       string     `gorm:"column:phone;type:varchar(20);not null;default:''"`
	WhatsApp    string     `gorm:"column:whatsapp;type:varchar(20);not null;default:''"`
	Subject     string     `gorm:"column:subject;type:varchar(200);not null"`
	Message     string     `gorm:"column:message;type:text;not null"`
	ProductName string     `gorm:"column:product_name;type:varchar(200);not null;default:''"`
	Quantity    string     `gorm:"column:quantity;type:varchar(100);not null;default:''"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'new';index"`
	Reply       string     `gorm:"column:reply;type:text;not null;default:''"`
	RepliedAt   *time.Time `gorm:"column:replied_at;type:timestamptz"`
	Source      string     `gorm:"column:source;type:varchar(50);not null;default:'website'"`
	IPAddress   *string    `gorm:"column:ip_address;type:inet"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now();index"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (Inquiry) TableName() string { return "content.inquiries" }

const (
	InquiryStatusNew     = "new"
	InquirySourceWebsite = "website"
)

// CompanyInfo maps content.company_infos, one keyed text block per row.
type CompanyInfo struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Key       string    `gorm:"column:key;type:varchar(100);not null;uniqueIndex"`
	Value     string    `gorm:"column:value;type:text;not null;default:''"`
	Order     int       `gorm:"column:order;type:integer;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (CompanyInfo) TableName() string { return "content.company_infos" }

// Advantage maps content.advantages.
type Advantage struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string `gorm:"column:title;type:varchar(200);not null"`
	Description string `gorm:"column:description;type:text;not null"`
	Icon        string `gorm:"column:icon;type:varchar(100);not null;default:''"`
	Order       int    `gorm:"column:order;type:integer;not null;default:0"`
	IsActive    bool   `gorm:"column:is_active;not null;default:true"`
}

func (Advantage) TableName() string { return "content.advantages" }

// Certificate maps content.certificates.
type Certificate struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;type:varchar(200);not null"`
	Image       string     `gorm:"column:image;type:varchar(255);not null"`
	Description string     `gorm:"column:description;type:text;not null;default:''"`
	IssueDate   *time.Time `gorm:"column:issue_date;type:date"`
	Order       int        `gorm:"column:order;type:integer;not null;default:0"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
}

func (Certificate) TableName() string { return "content.certificates" }

// TranslationLog maps catalog.translation_logs. Rows are append-only.
type TranslationLog struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID         string    `gorm:"column:run_uuid;type:uuid;not null;unique"`
	TranslationType string    `gorm:"column:translation_type;type:varchar(20);not null"`
	TargetLanguage  string    `gorm:"column:target_language;type:varchar(10);not null"`
	Status          string    `gorm:"column:status;type:varchar(10);not null"`
	Message         string    `gorm:"column:message;type:text;not null;default:''"`
	Logs            string    `gorm:"column:logs;type:text;not null;default:''"`
	ItemsProcessed  int       `gorm:"column:items_processed;type:integer;not null;default:0"`
	ItemsSuccess    int       `gorm:"column:items_success;type:integer;not null;default:0"`
	ItemsFailed     int       `gorm:"column:items_failed;type:integer;not null;default:0"`
	DurationSeconds *float64  `gorm:"column:duration;type:double precision"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now();index"`
}

func (TranslationLog) TableName() string { return "catalog.translation_logs" }

func autoMigrateModels() []any {
	return []any{
		&Category{},
		&SubCategory{},
		&ProductTemplate{},
		&TemplateSpecification{},
		&TemplateFeature{},
		&TemplateApplication{},
		&TemplateFactoryImage{},
		&TemplateProcess{},
		&Product{},
		&ProductImage{},
		&ProductSpecification{},
		&ProductFeature{},
		&ProductApplication{},
		&Article{},
		&ContactInfo{},
		&Inquiry{},
		&CompanyInfo{},
		&Advantage{},
		&Certificate{},
		&TranslationLog{},
	}
}
