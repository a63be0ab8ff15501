package httpapi

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"lingye.co/catalog/internal/db"
)

type inquiryRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WhatsApp    string `json:"whatsapp"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
}

func (r *inquiryRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Company = strings.TrimSpace(r.Company)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.WhatsApp = strings.TrimSpace(r.WhatsApp)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Quantity = strings.TrimSpace(r.Quantity)
}

func (r inquiryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Company, validation.RuneLength(0, 200)),
		validation.Field(&r.Email, validation.Required, validation.RuneLength(3, 254), is.EmailFormat),
		validation.Field(&r.Phone, validation.RuneLength(0, 20)),
		validation.Field(&r.WhatsApp, validation.RuneLength(0, 20)),
		validation.Field(&r.Subject, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Message, validation.Required, validation.RuneLength(1, 5000)),
		validation.Field(&r.ProductName, validation.RuneLength(0, 200)),
		validation.Field(&r.Quantity, validation.RuneLength(0, 100)),
	)
}

// handleCreateInquiry stores a quote request from the public site with the
// caller's IP.
func (s *Server) handleCreateInquiry(c echo.Context) error {
	var req inquiryRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		return failValidation(c, validationErrors(err))
	}

	inquiry := db.Inquiry{
		Name:        req.Name,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		WhatsApp:    req.WhatsApp,
		Subject:     req.Subject,
		Message:     req.Message,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
	}
	if ip := strings.TrimSpace(c.RealIP()); ip != "" {
		inquiry.IPAddress = &ip
	}

	if err := s.store.CreateInquiry(c.Request().Context(), &inquiry); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("create inquiry failed")
		return internalError(c, "Failed to submit inquiry")
	}

	s.logger.Info().Int64("inquiry_id", inquiry.ID).Str("subject", inquiry.Subject).Msg("inquiry received")
	return successWithStatus(c, http.StatusCreated, map[string]any{
		"id":      inquiry.ID,
		"message": "Inquiry submitted. We will contact you soon.",
	})
}
