package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// ServiceFields are the optional service attributes; nil means "not supplied".
type ServiceFields struct {
	ServiceName *string
	Category    *string
	Description *string
	Price       *decimal.Decimal
	Duration    *string
	ImageURL    *string
	Icon        *string
	IsActive    *bool
}

// patch whitelists the supplied fields into column updates.
func (f ServiceFields) patch() (domain.Patch, error) {
	p := domain.Patch{}

	if f.ServiceName != nil {
		name := strings.TrimSpace(*f.ServiceName)
		if name == "" {
			return nil, httperr.Validation("Service name required")
		}
		p["service_name"] = name
	}
	if f.Category != nil {
		p["category"] = strings.TrimSpace(*f.Category)
	}
	if f.Description != nil {
		p["description"] = strings.TrimSpace(*f.Description)
	}
	if f.Price != nil {
		if f.Price.IsNegative() {
			return nil, httperr.Validation("Price must not be negative")
		}
		p["price"] = f.Price.Round(2)
	}
	if f.Duration != nil {
		p["duration"] = strings.TrimSpace(*f.Duration)
	}
	if f.ImageURL != nil {
		p["image_url"] = strings.TrimSpace(*f.ImageURL)
	}
	if f.Icon != nil {
		p["icon"] = strings.TrimSpace(*f.Icon)
	}
	if f.IsActive != nil {
		p["is_active"] = *f.IsActive
	}
	return p, nil
}

func orDefault(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return strings.TrimSpace(*v)
}
