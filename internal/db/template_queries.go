package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lingye.co/catalog/internal/templates"
)

func preloadTemplateItems(tx *gorm.DB) *gorm.DB {
	byOrder := func(q *gorm.DB) *gorm.DB { return q.Order(`"order" ASC, id ASC`) }
	return tx.
		Preload("Category").
		Preload("Subcategory").
		Preload("SpecificationItems", byOrder).
		Preload("FeatureItems", byOrder).
		Preload("ApplicationItems", byOrder).
		Preload("FactoryImages", byOrder).
		Preload("ProcessItems", byOrder)
}

// GetTemplate loads one template with its item collections, active or not.
func (p *Pool) GetTemplate(ctx context.Context, id int64) (*templates.Template, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	var row ProductTemplate
	if err := preloadTemplateItems(gdb).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	return row.AsTemplate(), nil
}

// ListTemplates returns templates ordered the way admins see them.
func (p *Pool) ListTemplates(ctx context.Context, activeOnly bool) ([]*templates.Template, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	q := preloadTemplateItems(gdb).Order(`"order" ASC, name ASC`)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var rows []ProductTemplate
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	out := make([]*templates.Template, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].AsTemplate())
	}
	return out, nil
}

func (p *Pool) FindSubcategoryTemplate(ctx context.Context, subcategoryID int64) (*templates.Template, error) {
	return p.findScopedTemplate(ctx, "subcategory_id = ? AND category_id IS NULL", subcategoryID)
}

func (p *Pool) FindCategoryTemplate(ctx context.Context, categoryID int64) (*templates.Template, error) {
	return p.findScopedTemplate(ctx, "category_id = ? AND subcategory_id IS NULL", categoryID)
}

func (p *Pool) findScopedTemplate(ctx context.Context, scope string, id int64) (*templates.Template, error) {
	gdb, err := p.session(ctx)
	if err != nil {
		return nil, err
	}

	var row ProductTemplate
	err = preloadTemplateItems(gdb).
		Where("is_active = ?", true).
		Where(scope, id).
		Order(`"order" ASC, name ASC`).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.AsTemplate(), nil
}

func (t *ProductTemplate) AsTemplate() *templates.Template {
	if t == nil {
		return nil
	}

	out := &templates.Template{
		ID:                 t.ID,
		Name:               t.Name,
		CategoryID:         t.CategoryID,
		SubcategoryID:      t.SubcategoryID,
		IsActive:           t.IsActive,
		Order:              t.Order,
		RangeParam:         t.RangeParam,
		TypeParam:          t.TypeParam,
		SurfaceTreatment:   t.SurfaceTreatment,
		Colors:             t.Colors,
		Grade:              t.Grade,
		Temper:             t.Temper,
		Description:        t.Description,
		FeaturesText:       t.FeaturesText,
		ApplicationsText:   t.ApplicationsText,
		SpecificationsText: t.SpecificationsText,
		PackagingDetails:   t.PackagingDetails,
		OEMAvailable:       t.OEMAvailable,
		FreeSamples:        t.FreeSamples,
		SupplyAbility:      t.SupplyAbility,
		PaymentTerms:       t.PaymentTerms,
		ProductOrigin:      t.ProductOrigin,
		ShippingPort:       t.ShippingPort,
		LeadTime:           t.LeadTime,
	}
	if t.Category != nil {
		out.CategoryName = t.Category.Name
	}
	if t.Subcategory != nil {
		out.SubcategoryName = t.Subcategory.Name
	}

	out.SpecificationItems = make([]templates.SpecificationItem, 0, len(t.SpecificationItems))
	for _, item := range t.SpecificationItems {
		out.SpecificationItems = append(out.SpecificationItems, templates.SpecificationItem{
			ID: item.ID, Name: item.Name, Value: item.Value, Order: item.Order,
		})
	}
	out.FeatureItems = make([]templates.FeatureItem, 0, len(t.FeatureItems))
	for _, item := range t.FeatureItems {
		out.FeatureItems = append(out.FeatureItems, templates.FeatureItem{
			ID: item.ID, Name: item.Name, Description: item.Description, Order: item.Order,
		})
	}
	out.ApplicationItems = make([]templates.ApplicationItem, 0, len(t.ApplicationItems))
	for _, item := range t.ApplicationItems {
		out.ApplicationItems = append(out.ApplicationItems, templates.ApplicationItem{
			ID: item.ID, Name: item.Name, Description: item.Description, Image: item.Image, Order: item.Order,
		})
	}
	out.FactoryImages = make([]templates.FactoryImage, 0, len(t.FactoryImages))
	for _, item := range t.FactoryImages {
		out.FactoryImages = append(out.FactoryImages, templates.FactoryImage{
			ID: item.ID, Title: item.Title, Description: item.Description, Image: item.Image, Category: item.Category, Order: item.Order,
		})
	}
	out.ProcessItems = make([]templates.ProcessItem, 0, len(t.ProcessItems))
	for _, item := range t.ProcessItems {
		out.ProcessItems = append(out.ProcessItems, templates.ProcessItem{
			ID: item.ID, Name: item.Name, Description: item.Description, Image: item.Image, Order: item.Order,
		})
	}
	return out
}
