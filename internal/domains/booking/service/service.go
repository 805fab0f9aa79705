package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zifaf/config"
	"zifaf/infras/otel"
	"zifaf/internal/domains/booking/model"
	"zifaf/internal/domains/booking/model/dto"
	"zifaf/internal/domains/booking/repository"
	vendorModel "zifaf/internal/domains/vendors/model"
	vendorRepo "zifaf/internal/domains/vendors/repository"
	"zifaf/shared"
	"zifaf/shared/cache"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"
	"zifaf/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBooking  = "booking:gets"
	cacheCountBooking   = "booking:count"
	cacheBookedDates    = "booking:dates"
	cacheGetAllOwnerBkg = "booking:owner:gets"
	cacheCountOwnerBkg  = "booking:owner:count"

	argCallerUser    = "caller_user"
	argCallerVendors = "caller_vendors"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateReservationStatusRequest, id string) error
	GetBookedDates(ctx context.Context, vendorID string) (dto.BookedDatesResponse, error)
	IsDateAvailable(ctx context.Context, vendorID, eventDate string) (dto.DateAvailabilityResponse, error)
	CreateOwnerBooking(ctx context.Context, req dto.CreateOwnerBookingRequest) error
	GetAllOwnerBookings(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOwnerBookingsResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	ownerRepo  repository.OwnerBooking
	vendorRepo vendorRepo.Vendor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Booking, ownerRepo repository.OwnerBooking, vendorRepo vendorRepo.Vendor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		ownerRepo:  ownerRepo,
		vendorRepo: vendorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// mapUniqueViolation turns the partial unique index violation on
// (vendor_id, event_date) into the conflict failure callers expect. The
// insert itself is the availability check, so two concurrent bookings on one
// date resolve inside Postgres and exactly one wins.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return failure.DateAlreadyBooked
	}

	return err
}

func hasScope(filter gDto.FilterGroup, argName string) bool {
	for _, f := range filter.Filters {
		if existing, ok := f.(gDto.Filter); ok && existing.ArgName == argName {
			return true
		}
	}

	return false
}

// ownedVendorIDs returns the ids of the vendors owned by the caller.
func (s *serviceImpl) ownedVendorIDs(ctx context.Context, userID string) ([]string, error) {
	vendors, err := s.vendorRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    vendorModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    vendorModel.TableName,
			},
		},
	}, vendorModel.FieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to get caller vendors: %w", err)
	}

	ids := make([]string, len(vendors))
	for i, vendor := range vendors {
		ids[i] = vendor.ID
	}

	return ids, nil
}

// scopeToOwnedVendors narrows a list read to the vendors the caller owns.
// An owner with no vendors reads an empty ledger.
func (s *serviceImpl) scopeToOwnedVendors(ctx context.Context, filter gDto.FilterGroup, table, userID string) (gDto.FilterGroup, error) {
	ids, err := s.ownedVendorIDs(ctx, userID)
	if err != nil {
		return filter, err
	}

	if len(ids) == 0 {
		ids = []string{""}
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldVendorID,
		Operator: gDto.FilterOperatorIn,
		Value:    ids,
		Table:    table,
		ArgName:  argCallerVendors,
	})

	return filter, nil
}

// scopeToCaller narrows reservation reads to what the caller may see:
// customers their own reservations, vendor owners the reservations against
// their vendors, admins everything.
func (s *serviceImpl) scopeToCaller(ctx context.Context, filter gDto.FilterGroup) (gDto.FilterGroup, error) {
	if hasScope(filter, argCallerUser) || hasScope(filter, argCallerVendors) {
		return filter, nil
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	switch role {
	case constant.RoleAdmin:
		return filter, nil
	case constant.RoleVendor:
		return s.scopeToOwnedVendors(ctx, filter, model.TableName, userID)
	default:
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
			ArgName:  argCallerUser,
		})

		return filter, nil
	}
}

// authorizeReservationRead lets a reservation be read by its customer, the
// owner of the booked vendor, or an admin.
func (s *serviceImpl) authorizeReservationRead(ctx context.Context, reservationUserID, vendorID string) error {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin || reservationUserID == userID {
		return nil
	}

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(vendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.UserID != userID {
		return failure.ResourceRestrictedError
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid event date: %v", err)) //nolint:wrapcheck
	}

	if err = s.validateEventDate(reservation.EventDate); err != nil {
		return err
	}

	if err = s.validateVendorBookable(ctx, reservation.VendorID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		if conflict := mapUniqueViolation(err); conflict != err {
			log.Warn().Str("vendor_id", reservation.VendorID).Str("event_date", req.EventDate).Msg("date already booked")

			return conflict
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return fmt.Errorf("failed to create reservation: %w", err)
	}

	s.invalidateListings(ctx, reservation.VendorID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err = s.scopeToCaller(ctx, filter)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, err = s.scopeToCaller(ctx, filter)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		if err = s.authorizeReservationRead(ctx, res.UserID, res.VendorID); err != nil {
			return dto.ReservationResponse{}, err
		}

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found")
	}

	if err = s.authorizeReservationRead(ctx, reservation.UserID, reservation.VendorID); err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateReservationStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return failure.NotFound("reservation not found")
	}

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(reservation.VendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	// The customer may cancel their own reservation; everything else is for
	// the vendor owner or an admin.
	allowed := role == constant.RoleAdmin ||
		vendor.UserID == userID ||
		(reservation.UserID == userID && req.Status == constant.ReservationStatusCancelled)
	if !allowed {
		return failure.ResourceRestrictedError
	}

	updatedFields := shared.TransformFields(req, userID)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		if conflict := mapUniqueViolation(err); conflict != err {
			return conflict
		}

		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}
	}()
	s.invalidateListings(ctx, reservation.VendorID)

	return nil
}

func (s *serviceImpl) GetBookedDates(ctx context.Context, vendorID string) (res dto.BookedDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBookedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheBookedDates, vendorID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booked dates")

		return res, nil
	}

	dates, err := s.repo.GetBookedDates(ctx, vendorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked dates")

		return res, fmt.Errorf("failed to get booked dates: %w", err)
	}

	res.VendorID = vendorID
	res.Dates = make([]string, len(dates))

	for i, date := range dates {
		res.Dates[i] = timezone.Format(date, constant.EventDateFormat)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booked dates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) IsDateAvailable(ctx context.Context, vendorID, eventDate string) (res dto.DateAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsDateAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.Parse(constant.EventDateFormat, eventDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid event date: %v", err)) //nolint:wrapcheck
	}

	booked, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVendorID,
				Operator: gDto.FilterOperatorEq,
				Value:    vendorID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEventDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.ReservationStatusConfirmed,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check date availability")

		return res, fmt.Errorf("failed to check date availability: %w", err)
	}

	res.VendorID = vendorID
	res.EventDate = eventDate
	res.Available = !booked

	return res, nil
}

func (s *serviceImpl) CreateOwnerBooking(ctx context.Context, req dto.CreateOwnerBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOwnerBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(req.VendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.ID == "" {
		return failure.NotFound("vendor not found")
	}

	if vendor.UserID != userID && role != constant.RoleAdmin {
		return failure.ResourceRestrictedError
	}

	booking, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse owner booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid event date: %v", err)) //nolint:wrapcheck
	}

	if err = s.validateEventDate(booking.EventDate); err != nil {
		return err
	}

	// The marketplace side may already hold the date.
	availability, err := s.IsDateAvailable(ctx, req.VendorID, req.EventDate)
	if err != nil {
		return err
	}

	if !availability.Available {
		return failure.DateAlreadyBooked
	}

	if err = s.ownerRepo.Insert(ctx, booking); err != nil {
		if conflict := mapUniqueViolation(err); conflict != err {
			return conflict
		}

		log.Error().Err(err).Msg("failed to create owner booking")

		return fmt.Errorf("failed to create owner booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOwnerBkg)
		shared.InvalidateCaches(c, s.cache, cacheCountOwnerBkg)
	}()

	return nil
}

func (s *serviceImpl) GetAllOwnerBookings(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOwnerBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllOwnerBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	// The manual ledger holds guest contact details, so only admins read it
	// unscoped; vendor owners read their own vendors' entries.
	if role != constant.RoleAdmin && !hasScope(filter, argCallerVendors) {
		if role != constant.RoleVendor {
			return res, failure.ResourceRestrictedError
		}

		filter, err = s.scopeToOwnedVendors(ctx, filter, model.OwnerBookingTableName, userID)
		if err != nil {
			return res, err
		}
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOwnerBkg, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for owner bookings")

		return res, nil
	}

	total, err := s.ownerRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count owner bookings")

		return res, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	models, err := s.ownerRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner bookings")

		return res, fmt.Errorf("failed to get owner bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) validateEventDate(eventDate time.Time) error {
	// Midnight in the app location, not on the UTC day boundary, so a
	// same-day booking made in the evening still counts as today.
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())

	if eventDate.Before(today) {
		return failure.BadRequestFromString("event date cannot be in the past")
	}

	return nil
}

func (s *serviceImpl) validateVendorBookable(ctx context.Context, vendorID string) error {
	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(vendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	// Hidden vendors are indistinguishable from missing ones.
	if vendor.ID == "" || !vendor.Visible {
		return failure.NotFound("vendor not found")
	}

	if !vendor.Accepting {
		return failure.BadRequestFromString("vendor is not accepting reservations")
	}

	return nil
}

func (s *serviceImpl) invalidateListings(ctx context.Context, vendorID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheBookedDates, vendorID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booked dates from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
