package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kosrental/internal/database"
	"kosrental/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// One connection, or the pool hands out fresh empty in-memory DBs.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

type fixtures struct {
	tenant *domain.User
	other  *domain.User
	room   *domain.Room
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	ctx := context.Background()
	users := NewUserRepository(db)
	types := NewRoomTypeRepository(db)
	rooms := NewRoomRepository(db)

	tenant := &domain.User{Name: "Budi Santoso", Email: "budi@gmail.com", PasswordHash: "x", Role: domain.RoleTenant}
	require.NoError(t, users.Create(ctx, tenant))

	other := &domain.User{Name: "Siti Nurhaliza", Email: "siti@gmail.com", PasswordHash: "x", Role: domain.RoleTenant}
	require.NoError(t, users.Create(ctx, other))

	rt := &domain.RoomType{Name: "Kamar AC", Price: 1600000, Facilities: []string{"AC", "Kasur"}, IsActive: true}
	require.NoError(t, types.Create(ctx, rt))

	room := &domain.Room{Code: "A1", RoomTypeID: rt.ID, Price: rt.Price, Floor: 1, Status: domain.RoomAvailable}
	require.NoError(t, rooms.Create(ctx, room))

	return fixtures{tenant: tenant, other: other, room: room}
}

func newBooking(f fixtures, moveIn, moveOut time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		UserID:      f.tenant.ID,
		RoomID:      f.room.ID,
		MoveInDate:  moveIn,
		MoveOutDate: moveOut,
		Status:      status,
		IdentityDoc: "ktp.jpg",
	}
}

func TestBookingRepository_HasConflict_InclusiveBounds(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newBooking(f, jan1, feb1, domain.BookingApproved)))

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"identical interval", jan1, feb1, true},
		{"contained inside", jan1.AddDate(0, 0, 10), jan1.AddDate(0, 0, 20), true},
		{"starts on move-out day", feb1, feb1.AddDate(0, 1, 0), true},
		{"ends on move-in day", jan1.AddDate(0, -1, 0), jan1, true},
		{"day after move-out", feb1.AddDate(0, 0, 1), feb1.AddDate(0, 1, 0), false},
		{"day before move-in", jan1.AddDate(0, -1, 0), jan1.AddDate(0, 0, -1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.HasConflict(ctx, f.room.ID, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, got)
		})
	}
}

func TestBookingRepository_HasConflict_IgnoresRejected(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newBooking(f, jan1, feb1, domain.BookingRejected)))

	got, err := repo.HasConflict(ctx, f.room.ID, jan1, feb1)
	require.NoError(t, err)
	assert.False(t, got, "rejected bookings must not block the calendar")
}

func TestBookingRepository_HasConflict_PendingBlocks(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newBooking(f, jan1, feb1, domain.BookingPending)))

	got, err := repo.HasConflict(ctx, f.room.ID, jan1.AddDate(0, 0, 15), feb1.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, got, "pending bookings hold their dates")
}

func TestBookingRepository_ApproveWithRental_Atomic(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	bookings := NewBookingRepository(db)
	rooms := NewRoomRepository(db)
	rentals := NewRentalRepository(db)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	b := newBooking(f, jan1, feb1, domain.BookingPending)
	require.NoError(t, bookings.Create(ctx, b))

	rental := &domain.Rental{
		UserID:      f.tenant.ID,
		RoomID:      f.room.ID,
		StartDate:   jan1,
		DueDate:     feb1,
		Status:      domain.RentalActive,
		TotalAmount: 1600000,
	}
	require.NoError(t, bookings.ApproveWithRental(ctx, b.ID, rental))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, got.Status)

	room, err := rooms.GetByID(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, room.Status)

	list, err := rentals.ListByRoom(ctx, f.room.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.tenant.ID, list[0].UserID)
	assert.Equal(t, 1600000.0, list[0].TotalAmount)
	assert.Equal(t, domain.RentalActive, list[0].Status)
}

func TestBookingRepository_ApproveWithRental_MissingBooking(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	bookings := NewBookingRepository(db)
	rentals := NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		UserID:    f.tenant.ID,
		RoomID:    f.room.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.RentalActive,
	}
	err := bookings.ApproveWithRental(ctx, 12345, rental)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The failed approval must not leave a rental behind.
	list, err := rentals.ListByRoom(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRentalRepository_ListByUser_ScopedToTenant(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	bookings := NewBookingRepository(db)
	rentals := NewRentalRepository(db)
	ctx := context.Background()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	b := newBooking(f, jan1, feb1, domain.BookingPending)
	require.NoError(t, bookings.Create(ctx, b))
	require.NoError(t, bookings.ApproveWithRental(ctx, b.ID, &domain.Rental{
		UserID:      f.tenant.ID,
		RoomID:      f.room.ID,
		StartDate:   jan1,
		DueDate:     feb1,
		Status:      domain.RentalActive,
		TotalAmount: 1600000,
	}))

	mine, err := rentals.ListByUser(ctx, f.tenant.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, f.room.ID, mine[0].RoomID)
	assert.Equal(t, domain.RentalActive, mine[0].Status)

	other, err := rentals.ListByUser(ctx, f.tenant.ID+1000)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBookingRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testDB(t)
	seedFixtures(t, db)
	repo := NewBookingRepository(db)

	err := repo.UpdateStatus(context.Background(), 12345, domain.BookingRejected)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingRepository_IsOwnedByUser(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := newBooking(f,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		domain.BookingPending)
	require.NoError(t, repo.Create(ctx, b))

	owned, err := repo.IsOwnedByUser(ctx, b.ID, f.tenant.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = repo.IsOwnedByUser(ctx, b.ID, f.other.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestBookingRepository_SetProofs(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := newBooking(f,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		domain.BookingApproved)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.SetPaymentProof(ctx, b.ID, "payment.jpg"))
	require.NoError(t, repo.SetAgreementProof(ctx, b.ID, "agreement.pdf"))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "payment.jpg", got.PaymentProof)
	assert.Equal(t, "agreement.pdf", got.AgreementProof)

	assert.ErrorIs(t, repo.SetPaymentProof(ctx, 12345, "x.jpg"), gorm.ErrRecordNotFound)
}

// Active bookings for one room must never overlap pairwise, whatever
// sequence of creations and rejections got them there.
func TestBookingRepository_ActiveBookingsNeverOverlap(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Attempt a series of one-month stays, some overlapping previous
	// ones. Mirror the service's check-then-insert discipline.
	offsets := []int{0, 15, 32, 40, 70, 75, 102}
	for _, off := range offsets {
		start := base.AddDate(0, 0, off)
		end := start.AddDate(0, 1, 0)

		conflict, err := repo.HasConflict(ctx, f.room.ID, start, end)
		require.NoError(t, err)
		if conflict {
			continue
		}
		require.NoError(t, repo.Create(ctx, newBooking(f, start, end, domain.BookingPending)))
	}

	active, err := repo.ListActiveForRoom(ctx, f.room.ID)
	require.NoError(t, err)
	require.NotEmpty(t, active)

	for i := range active {
		for j := i + 1; j < len(active); j++ {
			assert.False(t,
				domain.Overlaps(active[i].MoveInDate, active[i].MoveOutDate, active[j].MoveInDate, active[j].MoveOutDate),
				"bookings %d and %d overlap", active[i].ID, active[j].ID)
		}
	}
}

func TestRoomTypeRepository_PricePropagation(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	types := NewRoomTypeRepository(db)
	rooms := NewRoomRepository(db)
	ctx := context.Background()

	rt, err := types.GetByID(ctx, f.room.RoomTypeID)
	require.NoError(t, err)

	rt.Price = 1750000
	require.NoError(t, types.Update(ctx, rt))

	room, err := rooms.GetByID(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1750000.0, room.Price)
}

func TestPaymentRepository_UpdateStatus_LastWriteWins(t *testing.T) {
	db := testDB(t)
	f := seedFixtures(t, db)
	bookings := NewBookingRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	b := newBooking(f,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		domain.BookingApproved)
	require.NoError(t, bookings.Create(ctx, b))

	p := &domain.Payment{BookingID: b.ID, PaymentProof: "jan.jpg", Status: domain.PaymentPending}
	require.NoError(t, payments.Create(ctx, p))

	got, err := payments.UpdateStatus(ctx, p.ID, domain.PaymentVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerified, got.Status)

	got, err = payments.UpdateStatus(ctx, p.ID, domain.PaymentRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, got.Status)

	_, err = payments.UpdateStatus(ctx, 12345, domain.PaymentVerified)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
