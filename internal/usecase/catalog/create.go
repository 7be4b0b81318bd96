package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

type CreateService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateService(repo domain.Repository, audit *audit.Dispatcher) *CreateService {
	return &CreateService{repo: repo, audit: audit}
}

func (uc *CreateService) Execute(ctx context.Context, adminID uint, in ServiceFields) (*models.Service, error) {
	if in.ServiceName == nil || strings.TrimSpace(*in.ServiceName) == "" {
		return nil, httperr.Validation("Service name required")
	}
	// validates price and trims the rest
	if _, err := in.patch(); err != nil {
		return nil, err
	}

	price := decimal.Zero
	if in.Price != nil {
		price = in.Price.Round(2)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	svc := &models.Service{
		ServiceName: strings.TrimSpace(*in.ServiceName),
		Category:    orDefault(in.Category, models.DefaultServiceCategory),
		Description: orDefault(in.Description, ""),
		Price:       price,
		Duration:    orDefault(in.Duration, models.DefaultServiceDuration),
		ImageURL:    orDefault(in.ImageURL, ""),
		Icon:        orDefault(in.Icon, models.DefaultServiceIcon),
		IsActive:    active,
	}

	if err := uc.repo.Create(ctx, svc); err != nil {
		return nil, httperr.Server("create service", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "admin",
		ActorID:   &adminID,
		Action:    "service_created",
		Entity:    "service",
		EntityID:  &svc.ID,
		Metadata:  map[string]any{"service_name": svc.ServiceName},
	})
	return svc, nil
}
