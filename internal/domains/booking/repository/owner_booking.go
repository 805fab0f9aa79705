package repository

//go:generate go run go.uber.org/mock/mockgen -source=./owner_booking.go -destination=../mocks/owner_booking_mock.go -package=mocks

import (
	"context"

	"zifaf/infras/otel"
	"zifaf/infras/postgres"
	"zifaf/internal/domains/booking/model"
	gDto "zifaf/shared/dto"
	gRepo "zifaf/shared/repository"
)

type OwnerBooking interface {
	Insert(ctx context.Context, model model.OwnerBooking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.OwnerBooking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OwnerBooking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type ownerBookingImpl struct {
	gRepo.Repository[model.OwnerBooking]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOwnerBooking(db *postgres.Connection, otel otel.Otel) OwnerBooking {
	return &ownerBookingImpl{
		Repository: gRepo.NewRepository[model.OwnerBooking](model.OwnerBookingEntityName, model.OwnerBookingTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
