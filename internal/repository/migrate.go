package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every persisted table.
// Used by cmd/seed and by tests running against in-memory SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomTypeModel{},
		&roomModel{},
		&bookingModel{},
		&paymentModel{},
		&rentalModel{},
	); err != nil {
		return err
	}

	// Backstop for the per-room lock in the booking service: identical
	// submissions racing from different processes collide here.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON bookings (room_id, move_in_date, move_out_date)
WHERE status IN ('PENDING', 'APPROVED')`).Error
}
