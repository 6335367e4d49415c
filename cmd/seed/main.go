package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kosrental/internal/config"
	"kosrental/internal/database"
	"kosrental/internal/domain"
	"kosrental/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM rentals")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	types := repository.NewRoomTypeRepository(db)
	rooms := repository.NewRoomRepository(db)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := createUser(ctx, users, "Pak Le", "admin@kospakle.com", "admin123", domain.RoleAdmin)
	log.Printf("Admin created: %s / admin123", admin.Email)

	budi := createUser(ctx, users, "Budi Santoso", "budi@gmail.com", "budi123", domain.RoleTenant)
	siti := createUser(ctx, users, "Siti Nurhaliza", "siti@gmail.com", "siti123", domain.RoleTenant)

	// ================== ROOM TYPES ==================
	log.Println("Creating room types...")

	typeAC := &domain.RoomType{
		Name:       "Kamar AC",
		Price:      1600000,
		Facilities: []string{"AC", "Kasur", "Lemari", "Meja Belajar", "Kamar Mandi Dalam"},
		IsActive:   true,
	}
	mustCreateType(ctx, types, typeAC)

	typeNonAC := &domain.RoomType{
		Name:       "Kamar Non-AC",
		Price:      1200000,
		Facilities: []string{"Kipas Angin", "Kasur", "Lemari", "Meja Belajar", "Kamar Mandi Dalam"},
		IsActive:   true,
	}
	mustCreateType(ctx, types, typeNonAC)

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	roomA1 := createRoom(ctx, rooms, "A1", typeAC, 1)
	createRoom(ctx, rooms, "A2", typeAC, 1)
	createRoom(ctx, rooms, "A3", typeAC, 1)
	createRoom(ctx, rooms, "A4", typeAC, 1)
	roomA5 := createRoom(ctx, rooms, "A5", typeAC, 1)
	for _, code := range []string{"B1", "B2", "B3", "B4", "B5"} {
		createRoom(ctx, rooms, code, typeNonAC, 2)
	}

	// ================== TENANCIES ==================
	// Two tenants move in through the real approval path so the rooms
	// end up OCCUPIED with matching rentals.
	log.Println("Creating bookings, rentals and payments...")

	moveInBudi := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedTenancy(ctx, bookings, payments, budi, roomA1, moveInBudi)

	moveInSiti := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	seedTenancy(ctx, bookings, payments, siti, roomA5, moveInSiti)

	log.Println("Seed completed")
}

func createUser(ctx context.Context, repo *repository.UserRepository, name, email, password string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash password failed:", err)
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("create user %s failed: %v", email, err)
	}
	return u
}

func mustCreateType(ctx context.Context, repo *repository.RoomTypeRepository, t *domain.RoomType) {
	if err := repo.Create(ctx, t); err != nil {
		log.Fatalf("create room type %s failed: %v", t.Name, err)
	}
}

func createRoom(ctx context.Context, repo *repository.RoomRepository, code string, t *domain.RoomType, floor int) *domain.Room {
	room := &domain.Room{
		Code:       code,
		RoomTypeID: t.ID,
		Price:      t.Price,
		Floor:      floor,
		Status:     domain.RoomAvailable,
	}
	if err := repo.Create(ctx, room); err != nil {
		log.Fatalf("create room %s failed: %v", code, err)
	}
	return room
}

// seedTenancy books a room for a year, approves the booking (which
// flips the room to OCCUPIED and opens the rental) and records one
// verified month of payment plus a pending one.
func seedTenancy(ctx context.Context, bookings *repository.BookingRepository, payments *repository.PaymentRepository, tenant *domain.User, room *domain.Room, moveIn time.Time) {
	moveOut := domain.MoveOutFor(moveIn, 12)

	b := &domain.Booking{
		UserID:         tenant.ID,
		RoomID:         room.ID,
		MoveInDate:     moveIn,
		MoveOutDate:    moveOut,
		Status:         domain.BookingPending,
		IdentityDoc:    "https://example.com/ktp-" + room.Code + ".jpg",
		Photo:          "https://example.com/photo-" + room.Code + ".jpg",
		PaymentProof:   "https://example.com/bukti-" + room.Code + ".jpg",
		AgreementProof: "https://example.com/agreement-" + room.Code + ".pdf",
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatalf("create booking for %s failed: %v", room.Code, err)
	}

	rental := &domain.Rental{
		UserID:      tenant.ID,
		RoomID:      room.ID,
		StartDate:   moveIn,
		DueDate:     moveOut,
		Status:      domain.RentalActive,
		TotalAmount: domain.AmountDue(room.Price, moveIn, moveOut),
	}
	if err := bookings.ApproveWithRental(ctx, b.ID, rental); err != nil {
		log.Fatalf("approve booking for %s failed: %v", room.Code, err)
	}

	verified := &domain.Payment{
		BookingID:    b.ID,
		PaymentProof: "https://example.com/payment-" + room.Code + ".jpg",
		Status:       domain.PaymentVerified,
	}
	if err := payments.Create(ctx, verified); err != nil {
		log.Fatalf("create payment for %s failed: %v", room.Code, err)
	}

	pending := &domain.Payment{
		BookingID: b.ID,
		Status:    domain.PaymentPending,
	}
	if err := payments.Create(ctx, pending); err != nil {
		log.Fatalf("create payment for %s failed: %v", room.Code, err)
	}
}
