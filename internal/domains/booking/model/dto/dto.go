package dto

import (
	"fmt"

	"zifaf/internal/domains/booking/model"
	"zifaf/shared"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	gModel "zifaf/shared/model"
	"zifaf/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	VendorID    string  `json:"vendor_id"   validate:"required,uuid"`
	EventDate   string  `json:"event_date"  validate:"required,datetime=2006-01-02"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	eventDate, err := timezone.Parse(constant.EventDateFormat, c.EventDate)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("failed to parse event date: %w", err)
	}

	return model.Reservation{
		ID:          uuid.NewString(),
		UserID:      user,
		VendorID:    c.VendorID,
		EventDate:   eventDate,
		Price:       c.Price,
		Status:      constant.ReservationStatusConfirmed,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type CreateOwnerBookingRequest struct {
	VendorID   string  `json:"vendor_id"   validate:"required,uuid"`
	GuestName  string  `json:"guest_name"  validate:"required,max=255"`
	GuestPhone string  `json:"guest_phone" validate:"required,max=20"`
	GuestCity  *string `json:"guest_city"  validate:"omitempty,max=100"`
	EventDate  string  `json:"event_date"  validate:"required,datetime=2006-01-02"`
	FinalPrice float64 `json:"final_price" validate:"required,gte=0"`
}

func (c *CreateOwnerBookingRequest) ToModel(user string) (model.OwnerBooking, error) {
	eventDate, err := timezone.Parse(constant.EventDateFormat, c.EventDate)
	if err != nil {
		return model.OwnerBooking{}, fmt.Errorf("failed to parse event date: %w", err)
	}

	return model.OwnerBooking{
		ID:         uuid.NewString(),
		VendorID:   c.VendorID,
		GuestName:  c.GuestName,
		GuestPhone: c.GuestPhone,
		GuestCity:  c.GuestCity,
		EventDate:  eventDate,
		FinalPrice: c.FinalPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateReservationStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type ReservationResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	VendorID    string  `json:"vendor_id"`
	EventDate   string  `json:"event_date"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.UserID = reservation.UserID
	r.VendorID = reservation.VendorID
	r.EventDate = timezone.Format(reservation.EventDate, constant.EventDateFormat)
	r.Price = reservation.Price
	r.Status = reservation.Status
	r.Description = reservation.Description
	r.Metadata.FromModel(reservation.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type OwnerBookingResponse struct {
	ID         string  `json:"id"`
	VendorID   string  `json:"vendor_id"`
	GuestName  string  `json:"guest_name"`
	GuestPhone string  `json:"guest_phone"`
	GuestCity  *string `json:"guest_city"`
	EventDate  string  `json:"event_date"`
	FinalPrice float64 `json:"final_price"`
	gDto.Metadata
}

func (r *OwnerBookingResponse) FromModel(booking model.OwnerBooking) {
	r.ID = booking.ID
	r.VendorID = booking.VendorID
	r.GuestName = booking.GuestName
	r.GuestPhone = booking.GuestPhone
	r.GuestCity = booking.GuestCity
	r.EventDate = timezone.Format(booking.EventDate, constant.EventDateFormat)
	r.FinalPrice = booking.FinalPrice
	r.Metadata.FromModel(booking.Metadata)
}

type GetOwnerBookingsResponse struct {
	Bookings  []OwnerBookingResponse `json:"bookings"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetOwnerBookingsResponse) FromModels(models []model.OwnerBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]OwnerBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookedDatesResponse struct {
	VendorID string   `json:"vendor_id"`
	Dates    []string `json:"dates"`
}

type DateAvailabilityResponse struct {
	VendorID  string `json:"vendor_id"`
	EventDate string `json:"event_date"`
	Available bool   `json:"available"`
}
