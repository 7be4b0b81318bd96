package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/booking"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

func TestBookingGorm_OwnershipRejectedWithoutMutation(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "a@x.com")
	bob := seedUser(t, db, "Bob", "b@x.com")
	svc := seedService(t, db, "Haircut")
	b := seedBooking(t, db, alice.ID, &svc.ID, "2025-12-01", "10:00", "pending")

	err := repo.UpdateOwned(ctx, b.ID, bob.ID, "2025-12-05", "15:00", "mine now")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	err = repo.DeleteOwned(ctx, b.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	after := reload(t, db, b.ID)
	assert.Equal(t, "2025-12-01", after.Date)
	assert.Equal(t, "10:00", after.Time)
	assert.Equal(t, "", after.Notes)

	require.NoError(t, repo.UpdateOwned(ctx, b.ID, alice.ID, "2025-12-05", "15:00", "moved"))
	after = reload(t, db, b.ID)
	assert.Equal(t, "2025-12-05", after.Date)
	assert.Equal(t, "15:00", after.Time)
	assert.Equal(t, "moved", after.Notes)

	assert.ErrorIs(t, repo.UpdateOwned(ctx, 999999, alice.ID, "2025-12-05", "15:00", ""), domain.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, 999999, alice.ID), domain.ErrNotFound)
}

func TestBookingGorm_ConcurrentOwnerDeletesSerialize(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)

	alice := seedUser(t, db, "Alice", "a@x.com")
	b := seedBooking(t, db, alice.ID, nil, "2025-12-01", "10:00", "pending")

	const workers = 5
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.DeleteOwned(context.Background(), b.ID, alice.ID)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, notFound int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrNotFound):
			notFound++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, notFound)
}

func TestBookingGorm_ListOrderingAndJoins(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "a@x.com")
	bob := seedUser(t, db, "Bob", "b@x.com")
	cut := seedService(t, db, "Haircut")
	nails := seedService(t, db, "Nails")

	first := seedBooking(t, db, alice.ID, &cut.ID, "2025-12-01", "10:00", "pending")
	latest := seedBooking(t, db, alice.ID, &nails.ID, "2025-12-02", "09:00", "pending")
	later := seedBooking(t, db, alice.ID, nil, "2025-12-01", "15:00", "confirmed")
	seedBooking(t, db, bob.ID, &cut.ID, "2025-11-30", "11:00", "pending")

	require.NoError(t, NewServiceGormRepository(db).SoftDelete(ctx, cut.ID))

	rows, err := repo.List(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []uint{latest.ID, later.ID, first.ID}, []uint{rows[0].ID, rows[1].ID, rows[2].ID})
	for _, r := range rows {
		assert.Equal(t, "Alice", r.Name)
		assert.Equal(t, "a@x.com", r.Email)
	}

	require.NotNil(t, rows[0].ServiceName)
	assert.Equal(t, "Nails", *rows[0].ServiceName)
	assert.Nil(t, rows[1].ServiceName)
	assert.Nil(t, rows[1].ServiceID)
	// soft-deleted service still resolves
	require.NotNil(t, rows[2].ServiceName)
	assert.Equal(t, "Haircut", *rows[2].ServiceName)
	assert.Equal(t, "2025-12-01", rows[2].Date)
	assert.Equal(t, "10:00", rows[2].Time)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Bob", all[3].Name)
}

func TestBookingGorm_CompleteElapsed(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)

	alice := seedUser(t, db, "Alice", "a@x.com")
	dayBefore := seedBooking(t, db, alice.ID, nil, "2025-11-19", "18:00", "pending")
	earlier := seedBooking(t, db, alice.ID, nil, "2025-11-20", "08:30", "confirmed")
	atCutoff := seedBooking(t, db, alice.ID, nil, "2025-11-20", "09:00", "pending")
	laterToday := seedBooking(t, db, alice.ID, nil, "2025-11-20", "09:01", "pending")
	nextMonth := seedBooking(t, db, alice.ID, nil, "2025-12-01", "08:00", "confirmed")
	cancelled := seedBooking(t, db, alice.ID, nil, "2025-11-01", "10:00", "cancelled")

	n, err := repo.CompleteElapsed(context.Background(), "2025-11-20", "09:00")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	want := map[uint]string{
		dayBefore.ID:  "completed",
		earlier.ID:    "completed",
		atCutoff.ID:   "completed",
		laterToday.ID: "pending",
		nextMonth.ID:  "confirmed",
		cancelled.ID:  "cancelled",
	}
	for id, status := range want {
		assert.Equal(t, status, reload(t, db, id).Status, "booking %d", id)
	}

	n, err = repo.CompleteElapsed(context.Background(), "2025-11-20", "09:00")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookingGorm_AdminUpdate(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "a@x.com")
	cut := seedService(t, db, "Haircut")
	nails := seedService(t, db, "Nails")
	b := seedBooking(t, db, alice.ID, &cut.ID, "2025-12-01", "10:00", "completed")

	status := domain.StatusConfirmed
	var seen domain.Status
	err := repo.AdminUpdate(ctx, b.ID, domain.Patch{Status: &status, ServiceID: &nails.ID}, func(from domain.Status) error {
		seen = from
		return domain.CanTransition(from, status)
	})
	require.Error(t, err)
	assert.Equal(t, domain.StatusCompleted, seen)

	after := reload(t, db, b.ID)
	assert.Equal(t, "completed", after.Status)
	require.NotNil(t, after.ServiceID)
	assert.Equal(t, cut.ID, *after.ServiceID)

	notes := "walk-in"
	require.NoError(t, repo.AdminUpdate(ctx, b.ID, domain.Patch{Notes: &notes, ServiceID: &nails.ID}, nil))
	after = reload(t, db, b.ID)
	assert.Equal(t, "walk-in", after.Notes)
	assert.Equal(t, nails.ID, *after.ServiceID)

	assert.ErrorIs(t, repo.AdminUpdate(ctx, 999999, domain.Patch{Notes: &notes}, nil), domain.ErrNotFound)

	require.NoError(t, repo.AdminDelete(ctx, b.ID))
	assert.ErrorIs(t, repo.AdminDelete(ctx, b.ID), domain.ErrNotFound)
	assert.ErrorIs(t, db.First(&models.Booking{}, b.ID).Error, gorm.ErrRecordNotFound)
}

func TestBookingGorm_ServiceLookups(t *testing.T) {
	db := requireDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	svc := seedService(t, db, "Facial")

	name, err := repo.ServiceName(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Facial", name)

	exists, err := repo.ServiceExists(ctx, svc.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, NewServiceGormRepository(db).SoftDelete(ctx, svc.ID))

	_, err = repo.ServiceName(ctx, svc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err = repo.ServiceExists(ctx, svc.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
