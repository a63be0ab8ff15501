package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const listingOrder = `"order" ASC, name ASC`

// ProductFilter narrows ListProducts. Zero values match everything active.
type ProductFilter struct {
	CategoryID    int64
	SubcategoryID int64
	CategorySlug  string
	FeaturedOnly  bool
	Search        string
	Limit         int
	Offset        int
}

func (p *Pool) ListCategories(ctx context.Context) ([]Category, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Category
	err = gdb.
		Preload("Subcategories", func(q *gorm.DB) *gorm.DB {
			return q.Where("is_active = ?", true).Order(listingOrder)
		}).
		Where("is_active = ?", true).
		Order(listingOrder).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (p *Pool) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return Category{}, err
	}

	var row Category
	err = gdb.
		Preload("Subcategories", func(q *gorm.DB) *gorm.DB {
			return q.Where("is_active = ?", true).Order(listingOrder)
		}).
		Where("slug = ? AND is_active = ?", strings.TrimSpace(slug), true).
		First(&row).Error
	if err != nil {
		return Category{}, fmt.Errorf("get category %q: %w", slug, err)
	}
	return row, nil
}

func (p *Pool) ListSubcategories(ctx context.Context, categoryID int64) ([]SubCategory, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	q := gdb.Where("is_active = ?", true).Order(listingOrder)
	if categoryID > 0 {
		q = q.Where("parent_category_id = ?", categoryID)
	}
	var rows []SubCategory
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return rows, nil
}

func preloadProductDetail(tx *gorm.DB) *gorm.DB {
	byOrder := func(q *gorm.DB) *gorm.DB { return q.Order(`"order" ASC, id ASC`) }
	return tx.
		Preload("Category").
		Preload("Subcategory").
		Preload("Template", preloadTemplateItems).
		Preload("Images", byOrder).
		Preload("SpecificationItems", byOrder).
		Preload("FeatureItems", byOrder).
		Preload("ApplicationItems", byOrder)
}

// ListProducts returns active products with their category, subcategory and
// images. Item collections are left for the detail view.
func (p *Pool) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	q := gdb.
		Preload("Category").
		Preload("Subcategory").
		Preload("Images", func(q *gorm.DB) *gorm.DB { return q.Order(`"order" ASC, id ASC`) }).
		Where("catalog.products.is_active = ?", true)
	if filter.CategoryID > 0 {
		q = q.Where("catalog.products.category_id = ?", filter.CategoryID)
	}
	if filter.SubcategoryID > 0 {
		q = q.Where("catalog.products.subcategory_id = ?", filter.SubcategoryID)
	}
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		q = q.Where("catalog.products.category_id IN (?)",
			gdb.Model(&Category{}).Select("id").Where("slug = ?", slug))
	}
	if filter.FeaturedOnly {
		q = q.Where("catalog.products.is_featured = ?", true)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + term + "%"
		q = q.Where("catalog.products.name ILIKE ? OR catalog.products.description ILIKE ?", like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var rows []Product
	if err := q.Order(`catalog.products."order" ASC, catalog.products.name ASC`).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return rows, nil
}

// GetProduct loads one active product with everything the detail view and
// the template merge read.
func (p *Pool) GetProduct(ctx context.Context, id int64) (Product, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return Product{}, err
	}

	var row Product
	err = preloadProductDetail(gdb).
		Where("is_active = ?", true).
		First(&row, id).Error
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return row, nil
}

func (p *Pool) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return Product{}, err
	}

	var row Product
	err = preloadProductDetail(gdb).
		Where("slug = ? AND is_active = ?", strings.TrimSpace(slug), true).
		First(&row).Error
	if err != nil {
		return Product{}, fmt.Errorf("get product %q: %w", slug, err)
	}
	return row, nil
}

// ListArticles returns published articles, newest first.
func (p *Pool) ListArticles(ctx context.Context, featuredOnly bool, limit int) ([]Article, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	q := gdb.Where("status = ?", ArticleStatusPublished).
		Order("published_at DESC NULLS LAST, id DESC")
	if featuredOnly {
		q = q.Where("is_featured = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Article
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return rows, nil
}

func (p *Pool) GetArticleBySlug(ctx context.Context, slug string) (Article, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return Article{}, err
	}

	var row Article
	err = gdb.Where("slug = ? AND status = ?", strings.TrimSpace(slug), ArticleStatusPublished).
		First(&row).Error
	if err != nil {
		return Article{}, fmt.Errorf("get article %q: %w", slug, err)
	}
	return row, nil
}

func (p *Pool) ListContactInfo(ctx context.Context) ([]ContactInfo, error) {
	var rows []ContactInfo
	if err := p.listActive(ctx, &rows, `type ASC, "order" ASC`); err != nil {
		return nil, fmt.Errorf("list contact info: %w", err)
	}
	return rows, nil
}

func (p *Pool) ListCompanyInfo(ctx context.Context) ([]CompanyInfo, error) {
	var rows []CompanyInfo
	if err := p.listActive(ctx, &rows, `"order" ASC, key ASC`); err != nil {
		return nil, fmt.Errorf("list company info: %w", err)
	}
	return rows, nil
}

func (p *Pool) ListAdvantages(ctx context.Context) ([]Advantage, error) {
	var rows []Advantage
	if err := p.listActive(ctx, &rows, `"order" ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("list advantages: %w", err)
	}
	return rows, nil
}

func (p *Pool) ListCertificates(ctx context.Context) ([]Certificate, error) {
	var rows []Certificate
	if err := p.listActive(ctx, &rows, `"order" ASC, issue_date DESC NULLS LAST`); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return rows, nil
}

func (p *Pool) listActive(ctx context.Context, dest any, order string) error {
	gdb, err := p.session(ctx)
	if err != nil {
		return err
	}
	return gdb.Where("is_active = ?", true).Order(order).Find(dest).Error
}
