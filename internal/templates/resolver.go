package templates

import (
	"context"
	"fmt"
	"sort"
)

// Finder looks up scoped templates. Both methods return the active template
// with the lowest order, or nil when none matches.
type Finder interface {
	// FindSubcategoryTemplate matches templates scoped to the subcategory
	// with no category reference.
	FindSubcategoryTemplate(ctx context.Context, subcategoryID int64) (*Template, error)
	// FindCategoryTemplate matches templates scoped to the category with no
	// subcategory reference.
	FindCategoryTemplate(ctx context.Context, categoryID int64) (*Template, error)
}

// Subject is the part of a product the resolver reads.
type Subject struct {
	Template      *Template
	UseTemplate   bool
	CategoryID    *int64
	SubcategoryID *int64
}

type Resolver struct {
	finder Finder
}

func NewResolver(finder Finder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve picks the template that applies to a product, first match wins:
// an active direct assignment, then nothing when UseTemplate is off, then a
// subcategory template, then a category template. A nil template with a nil
// error is a normal outcome.
func (r *Resolver) Resolve(ctx context.Context, subject Subject) (*Template, error) {
	if subject.Template != nil && subject.Template.IsActive {
		return subject.Template, nil
	}
	if !subject.UseTemplate {
		return nil, nil
	}

	if subject.SubcategoryID != nil {
		tmpl, err := r.finder.FindSubcategoryTemplate(ctx, *subject.SubcategoryID)
		if err != nil {
			return nil, fmt.Errorf("find subcategory %d template: %w", *subject.SubcategoryID, err)
		}
		if tmpl != nil {
			return tmpl, nil
		}
	}

	if subject.CategoryID != nil {
		tmpl, err := r.finder.FindCategoryTemplate(ctx, *subject.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("find category %d template: %w", *subject.CategoryID, err)
		}
		if tmpl != nil {
			return tmpl, nil
		}
	}

	return nil, nil
}

// SliceFinder is a Finder over an in-memory list of templates. It backs
// tests and fixtures; it applies the same active, order and name rules as
// the database queries.
type SliceFinder []*Template

func (f SliceFinder) FindSubcategoryTemplate(_ context.Context, subcategoryID int64) (*Template, error) {
	return f.first(func(t *Template) bool {
		return t.Scope() == ScopeSubcategory && *t.SubcategoryID == subcategoryID
	}), nil
}

func (f SliceFinder) FindCategoryTemplate(_ context.Context, categoryID int64) (*Template, error) {
	return f.first(func(t *Template) bool {
		return t.Scope() == ScopeCategory && *t.CategoryID == categoryID
	}), nil
}

func (f SliceFinder) first(match func(*Template) bool) *Template {
	candidates := make([]*Template, 0, len(f))
	for _, tmpl := range f {
		if tmpl != nil && tmpl.IsActive && match(tmpl) {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Order != candidates[j].Order {
			return candidates[i].Order < candidates[j].Order
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0]
}
