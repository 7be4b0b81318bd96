package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/infra/sms"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	ServiceID uint
	Date      string
	Time      string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	users account.UserRepository
	sms   sms.Notifier
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	users account.UserRepository,
	notifier sms.Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		users: users,
		sms:   notifier,
		audit: audit,
		log:   log.Named("create_booking"),
	}
}

func (uc *CreateBooking) Execute(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.UserID == 0 || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return nil, httperr.Validation("Missing required fields")
	}
	if in.ServiceID == 0 {
		return nil, httperr.Validation("Missing serviceId")
	}

	date, hm, err := parseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.FindByID(ctx, in.UserID)
	if errors.Is(err, account.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, httperr.Server("lookup user", err)
	}

	serviceName, err := uc.repo.ServiceName(ctx, in.ServiceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.NotFound("Service not found")
	}
	if err != nil {
		return nil, httperr.Server("lookup service", err)
	}

	serviceID := in.ServiceID
	b := &models.Booking{
		UserID:    user.ID,
		ServiceID: &serviceID,
		Date:      date,
		Time:      hm,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, httperr.Server("create booking", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorKind: "customer",
		ActorID:   &user.ID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	if user.Contact != "" {
		msg := sms.BookingConfirmation(user.Name, serviceName, date, hm)
		if err := uc.sms.Send(ctx, user.Contact, msg); err != nil {
			uc.log.Warn("booking sms not sent", zap.Uint("booking_id", b.ID), zap.Error(err))
		}
	}

	return b, nil
}
