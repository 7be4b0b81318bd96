// Package testutil holds in-memory implementations of the repository
// interfaces for use-case and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/domain/catalog"
	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/dto"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

// Store is a single in-memory database shared by the repository views.
type Store struct {
	mu sync.Mutex

	users    map[uint]*models.User
	admins   map[uint]*models.AdminUser
	services map[uint]*models.Service
	bookings map[uint]*models.Booking
	sessions map[string]session.Session

	nextID uint
	Now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[uint]*models.User{},
		admins:   map[uint]*models.AdminUser{},
		services: map[uint]*models.Service{},
		bookings: map[uint]*models.Booking{},
		sessions: map[string]session.Session{},
		Now:      time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Admins() *Admins     { return &Admins{s} }
func (s *Store) Services() *Services { return &Services{s} }
func (s *Store) Bookings() *Bookings { return &Bookings{s} }
func (s *Store) Sessions() *Sessions { return &Sessions{s} }

// AddAdmin inserts an admin directly, bypassing any use case.
func (s *Store) AddAdmin(a models.AdminUser) *models.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.admins[a.ID] = &a
	return &a
}

// User returns a copy of the stored user.
func (s *Store) User(id uint) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

// Booking returns a copy of the stored booking.
func (s *Store) Booking(id uint) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, false
	}
	return *b, true
}

// ======================================================
// Users
// ======================================================

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = r.s.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *Users) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *Users) FindByID(_ context.Context, id uint) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *Users) FindByVerifyToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.VerifyToken != nil && *u.VerifyToken == token })
}

func (r *Users) FindByResetToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (r *Users) MarkVerified(_ context.Context, id uint, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.VerifyToken == nil || *u.VerifyToken != token {
		return account.ErrNotFound
	}
	u.IsVerified = true
	u.VerifyToken = nil
	u.VerifyExpires = nil
	return nil
}

func (r *Users) MarkVerifiedByEmail(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == strings.ToLower(email) {
			u.IsVerified = true
			u.VerifyToken = nil
			u.VerifyExpires = nil
		}
	}
	return nil
}

func (r *Users) SetResetToken(_ context.Context, id uint, token string, expires time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return account.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetExpires = &expires
	return nil
}

func (r *Users) ResetPassword(_ context.Context, id uint, token, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.ResetToken == nil || *u.ResetToken != token {
		return account.ErrNotFound
	}
	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetExpires = nil
	return nil
}

// ======================================================
// Admins
// ======================================================

type Admins struct{ s *Store }

func (r *Admins) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, account.ErrNotFound
}

// ======================================================
// Services
// ======================================================

type Services struct{ s *Store }

func (r *Services) List(_ context.Context) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Service{}
	for _, svc := range r.s.services {
		if svc.DeletedAt.Valid {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceName < out[j].ServiceName })
	return out, nil
}

func (r *Services) Create(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc.ID = r.s.id()
	cp := *svc
	r.s.services[svc.ID] = &cp
	return nil
}

func (r *Services) live(id uint) (*models.Service, bool) {
	svc, ok := r.s.services[id]
	if !ok || svc.DeletedAt.Valid {
		return nil, false
	}
	return svc, true
}

func (r *Services) Update(_ context.Context, id uint, patch catalog.Patch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.live(id)
	if !ok {
		return catalog.ErrNotFound
	}
	applyServicePatch(svc, patch)
	return nil
}

func (r *Services) SoftDelete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.live(id)
	if !ok {
		return catalog.ErrNotFound
	}
	svc.DeletedAt.Time = r.s.Now()
	svc.DeletedAt.Valid = true
	return nil
}

func (r *Services) SetImageURL(ctx context.Context, id uint, url string) error {
	return r.Update(ctx, id, catalog.Patch{"image_url": url})
}

func (r *Services) Exists(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.live(id)
	return ok, nil
}

// ======================================================
// Bookings
// ======================================================

type Bookings struct{ s *Store }

func (r *Bookings) Create(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *Bookings) List(_ context.Context, userID *uint) ([]dto.BookingListDTO, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []dto.BookingListDTO{}
	for _, b := range r.s.bookings {
		if userID != nil && b.UserID != *userID {
			continue
		}
		row := dto.BookingListDTO{
			ID:        b.ID,
			UserID:    b.UserID,
			ServiceID: b.ServiceID,
			Date:      b.Date,
			Time:      b.Time,
			Notes:     b.Notes,
			Status:    b.Status,
		}
		if u, ok := r.s.users[b.UserID]; ok {
			row.Name = u.Name
			row.Email = u.Email
		}
		if b.ServiceID != nil {
			if svc, ok := r.s.services[*b.ServiceID]; ok {
				name := svc.ServiceName
				row.ServiceName = &name
			}
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (r *Bookings) ServiceExists(ctx context.Context, serviceID uint) (bool, error) {
	return r.s.Services().Exists(ctx, serviceID)
}

func (r *Bookings) ServiceName(_ context.Context, serviceID uint) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.Services().live(serviceID)
	if !ok {
		return "", booking.ErrNotFound
	}
	return svc.ServiceName, nil
}

func (r *Bookings) owned(bookingID, userID uint) (*models.Booking, error) {
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, booking.ErrNotFound
	}
	if b.UserID != userID {
		return nil, booking.ErrNotOwner
	}
	return b, nil
}

func (r *Bookings) UpdateOwned(_ context.Context, bookingID, userID uint, date, hm, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, err := r.owned(bookingID, userID)
	if err != nil {
		return err
	}
	b.Date, b.Time, b.Notes = date, hm, notes
	return nil
}

func (r *Bookings) DeleteOwned(_ context.Context, bookingID, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.owned(bookingID, userID); err != nil {
		return err
	}
	delete(r.s.bookings, bookingID)
	return nil
}

func (r *Bookings) AdminUpdate(
	_ context.Context,
	bookingID uint,
	patch booking.Patch,
	check func(current booking.Status) error,
) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return booking.ErrNotFound
	}
	if patch.Status != nil && check != nil {
		if err := check(booking.Status(b.Status)); err != nil {
			return err
		}
	}
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	if patch.Time != nil {
		b.Time = *patch.Time
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	if patch.ServiceID != nil {
		id := *patch.ServiceID
		b.ServiceID = &id
	}
	if patch.Status != nil {
		b.Status = string(*patch.Status)
	}
	return nil
}

func (r *Bookings) AdminDelete(_ context.Context, bookingID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[bookingID]; !ok {
		return booking.ErrNotFound
	}
	delete(r.s.bookings, bookingID)
	return nil
}

func (r *Bookings) CompleteElapsed(_ context.Context, cutoffDate, cutoffTime string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if booking.Status(b.Status).IsTerminal() {
			continue
		}
		if b.Date < cutoffDate || (b.Date == cutoffDate && b.Time <= cutoffTime) {
			b.Status = string(booking.StatusCompleted)
			n++
		}
	}
	return n, nil
}

// ======================================================
// Sessions
// ======================================================

type Sessions struct{ s *Store }

func (r *Sessions) Save(_ context.Context, tokenHash string, sess session.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[tokenHash] = sess
	return nil
}

func (r *Sessions) Get(_ context.Context, tokenHash string) (*session.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[tokenHash]
	if !ok || !sess.ExpiresAt.After(r.s.Now()) {
		return nil, session.ErrNotFound
	}
	return &sess, nil
}

var (
	_ account.UserRepository  = (*Users)(nil)
	_ account.AdminRepository = (*Admins)(nil)
	_ catalog.Repository      = (*Services)(nil)
	_ booking.Repository      = (*Bookings)(nil)
	_ session.Store           = (*Sessions)(nil)
)

func applyServicePatch(svc *models.Service, patch catalog.Patch) {
	for k, v := range patch {
		switch k {
		case "service_name":
			svc.ServiceName = v.(string)
		case "category":
			svc.Category = v.(string)
		case "description":
			svc.Description = v.(string)
		case "price":
			svc.Price = v.(decimal.Decimal)
		case "duration":
			svc.Duration = v.(string)
		case "image_url":
			svc.ImageURL = v.(string)
		case "icon":
			svc.Icon = v.(string)
		case "is_active":
			svc.IsActive = v.(bool)
		}
	}
}
