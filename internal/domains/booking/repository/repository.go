package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"zifaf/infras/otel"
	"zifaf/infras/postgres"
	"zifaf/internal/domains/booking/model"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/logger"
	gRepo "zifaf/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetBookedDates(ctx context.Context, vendorID string) ([]time.Time, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetBookedDates returns the event dates of confirmed reservations for a
// vendor. Only confirmed rows block availability.
func (repo *repositoryImpl) GetBookedDates(ctx context.Context, vendorID string) (dates []time.Time, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetBookedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC",
		model.FieldEventDate, model.TableName, model.FieldVendorID, model.FieldStatus, model.FieldEventDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &dates, query, vendorID, constant.ReservationStatusConfirmed)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get booked dates (%s): %w", model.EntityName, err)
	}

	return dates, nil
}
