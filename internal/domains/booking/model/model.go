package model

import (
	"time"

	"zifaf/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldVendorID    = "vendor_id"
	FieldEventDate   = "event_date"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDescription = "description"
)

const (
	OwnerBookingTableName  = "owner_bookings"
	OwnerBookingEntityName = "owner_booking"

	FieldGuestName  = "guest_name"
	FieldGuestPhone = "guest_phone"
	FieldGuestCity  = "guest_city"
	FieldFinalPrice = "final_price"
)

// Reservation is a customer booking. Confirmed rows are guarded by a partial
// unique index on (vendor_id, event_date), so a date can only be won once.
type Reservation struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	VendorID    string    `db:"vendor_id"`
	EventDate   time.Time `db:"event_date"`
	Price       float64   `db:"price"`
	Status      string    `db:"status"`
	Description *string   `db:"description"`
	model.Metadata
}

// OwnerBooking is a manual booking recorded by the vendor owner for a guest
// who never went through the marketplace. It blocks the date the same way a
// confirmed reservation does.
type OwnerBooking struct {
	ID         string    `db:"id"`
	VendorID   string    `db:"vendor_id"`
	GuestName  string    `db:"guest_name"`
	GuestPhone string    `db:"guest_phone"`
	GuestCity  *string   `db:"guest_city"`
	EventDate  time.Time `db:"event_date"`
	FinalPrice float64   `db:"final_price"`
	model.Metadata
}
