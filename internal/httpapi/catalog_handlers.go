package httpapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"lingye.co/catalog/internal/db"
	"lingye.co/catalog/internal/language"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"source":    language.Source,
		"languages": language.Options(),
	})
}

func (s *Server) handleCategories(c echo.Context) error {
	lang := requestLanguage(c)
	rows, err := s.store.ListCategories(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list categories failed")
		return internalError(c, "Failed to load categories")
	}
	withChildren := parseBool(c.QueryParam("include_subcategories"))
	return success(c, map[string]any{
		"language": lang,
		"items":    s.serializer.Categories(lang, rows, withChildren),
	})
}

func (s *Server) handleCategoryDetail(c echo.Context) error {
	lang := requestLanguage(c)
	row, err := s.store.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Category not found")
		}
		s.logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("get category failed")
		return internalError(c, "Failed to load category")
	}
	return success(c, s.serializer.Categories(lang, []db.Category{row}, true)[0])
}

func (s *Server) handleSubcategories(c echo.Context) error {
	categoryID, err := parseOptionalID(c.QueryParam("category"))
	if err != nil {
		return failValidation(c, map[string]string{"category": err.Error()})
	}
	lang := requestLanguage(c)
	rows, err := s.store.ListSubcategories(c.Request().Context(), categoryID)
	if err != nil {
		s.logger.Error().Err(err).Msg("list subcategories failed")
		return internalError(c, "Failed to load subcategories")
	}
	return success(c, map[string]any{
		"language": lang,
		"items":    s.serializer.Subcategories(lang, rows),
	})
}

func (s *Server) handleSubcategoryProducts(c echo.Context) error {
	subcategoryID, err := parseID(c.Param("id"))
	if err != nil {
		return failValidation(c, map[string]string{"id": err.Error()})
	}
	return s.renderProducts(c, db.ProductFilter{SubcategoryID: subcategoryID})
}

func (s *Server) handleProducts(c echo.Context) error {
	fieldErrors := map[string]string{}
	categoryID, err := parseOptionalID(c.QueryParam("category"))
	if err != nil {
		fieldErrors["category"] = err.Error()
	}
	subcategoryID, err := parseOptionalID(c.QueryParam("subcategory"))
	if err != nil {
		fieldErrors["subcategory"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	return s.renderProducts(c, db.ProductFilter{
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		CategorySlug:  c.QueryParam("category_slug"),
		FeaturedOnly:  parseBool(c.QueryParam("featured")),
		Search:        c.QueryParam("q"),
	})
}

func (s *Server) renderProducts(c echo.Context, filter db.ProductFilter) error {
	fieldErrors := map[string]string{}
	page, err := parsePositiveInt(c.QueryParam("page"), 1, 1, 100000)
	if err != nil {
		fieldErrors["page"] = err.Error()
	}
	pageSize, err := parsePositiveInt(c.QueryParam("page_size"), defaultPageSize, 1, maxPageSize)
	if err != nil {
		fieldErrors["page_size"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	lang := requestLanguage(c)
	rows, err := s.store.ListProducts(c.Request().Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("list products failed")
		return internalError(c, "Failed to load products")
	}
	return success(c, map[string]any{
		"language":  lang,
		"page":      page,
		"page_size": pageSize,
		"items":     s.serializer.Products(lang, rows),
	})
}

// handleProductDetail accepts a numeric id or a slug.
func (s *Server) handleProductDetail(c echo.Context) error {
	ref := strings.TrimSpace(c.Param("ref"))
	ctx := c.Request().Context()

	var (
		row db.Product
		err error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil && id > 0 {
		row, err = s.store.GetProduct(ctx, id)
	} else {
		row, err = s.store.GetProductBySlug(ctx, ref)
	}
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Product not found")
		}
		s.logger.Error().Err(err).Str("product", ref).Msg("get product failed")
		return internalError(c, "Failed to load product")
	}

	detail, err := s.serializer.ProductDetail(ctx, requestLanguage(c), row)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", row.ID).Msg("render product detail failed")
		return internalError(c, "Failed to load product")
	}
	return success(c, detail)
}

func (s *Server) handleTemplateDetail(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return failValidation(c, map[string]string{"id": err.Error()})
	}
	tmpl, err := s.store.GetTemplate(c.Request().Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Template not found")
		}
		s.logger.Error().Err(err).Int64("template_id", id).Msg("get template failed")
		return internalError(c, "Failed to load template")
	}
	return success(c, s.serializer.Template(tmpl))
}

func (s *Server) handleArticles(c echo.Context) error {
	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultPageSize, 1, maxPageSize)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}
	lang := requestLanguage(c)
	rows, err := s.store.ListArticles(c.Request().Context(), parseBool(c.QueryParam("featured")), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list articles failed")
		return internalError(c, "Failed to load articles")
	}
	return success(c, map[string]any{
		"language": lang,
		"items":    s.serializer.Articles(lang, rows, false),
	})
}

func (s *Server) handleArticleDetail(c echo.Context) error {
	row, err := s.store.GetArticleBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Article not found")
		}
		s.logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("get article failed")
		return internalError(c, "Failed to load article")
	}
	return success(c, s.serializer.Articles(requestLanguage(c), []db.Article{row}, true)[0])
}

func (s *Server) handleCompanyInfo(c echo.Context) error {
	rows, err := s.store.ListCompanyInfo(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list company info failed")
		return internalError(c, "Failed to load company info")
	}
	return success(c, s.serializer.CompanyInfo(requestLanguage(c), rows))
}

func (s *Server) handleAdvantages(c echo.Context) error {
	rows, err := s.store.ListAdvantages(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list advantages failed")
		return internalError(c, "Failed to load advantages")
	}
	return success(c, map[string]any{"items": s.serializer.Advantages(requestLanguage(c), rows)})
}

func (s *Server) handleCertificates(c echo.Context) error {
	rows, err := s.store.ListCertificates(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list certificates failed")
		return internalError(c, "Failed to load certificates")
	}
	return success(c, map[string]any{"items": s.serializer.Certificates(requestLanguage(c), rows)})
}

func (s *Server) handleContactInfo(c echo.Context) error {
	rows, err := s.store.ListContactInfo(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list contact info failed")
		return internalError(c, "Failed to load contact info")
	}
	return success(c, map[string]any{"items": s.serializer.ContactInfo(requestLanguage(c), rows)})
}
