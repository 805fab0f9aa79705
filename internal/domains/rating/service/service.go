package service

import (
	"context"
	"fmt"

	"zifaf/config"
	"zifaf/infras/otel"
	bookingModel "zifaf/internal/domains/booking/model"
	bookingRepo "zifaf/internal/domains/booking/repository"
	"zifaf/internal/domains/rating/model/dto"
	vendorModel "zifaf/internal/domains/vendors/model"
	vendorRepo "zifaf/internal/domains/vendors/repository"
	"zifaf/shared"
	"zifaf/shared/cache"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"
	"zifaf/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVendor    = "vendor:get"
	cacheGetAllVendor = "vendor:gets"
)

type Rating interface {
	Submit(ctx context.Context, req dto.SubmitRatingRequest, vendorID string) (dto.RatingResponse, error)
}

type serviceImpl struct {
	vendorRepo  vendorRepo.Vendor
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(vendorRepo vendorRepo.Vendor, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Rating {
	return &serviceImpl{
		vendorRepo:  vendorRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Submit folds a star rating into the vendor's running mean:
// newRate = (oldRate*oldCount + stars) / (oldCount + 1). Individual ratings
// are not stored; the mean and count are the whole record.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRatingRequest, vendorID string) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Stars < constant.RatingMinStars || req.Stars > constant.RatingMaxStars {
		return res, failure.InvalidStarValue
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(vendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return res, fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.ID == "" {
		return res, failure.NotFound("vendor not found")
	}

	eligible, err := s.bookingRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldVendorID,
				Operator: gDto.FilterOperatorEq,
				Value:    vendorID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.ReservationStatusConfirmed,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check rating eligibility")

		return res, fmt.Errorf("failed to check rating eligibility: %w", err)
	}

	if !eligible {
		return res, failure.NotEligibleToRate
	}

	newCount := vendor.RatingCount + 1
	newRate := (vendor.Rate*float64(vendor.RatingCount) + float64(req.Stars)) / float64(newCount)

	updatedFields := map[string]any{
		vendorModel.FieldRate:        newRate,
		vendorModel.FieldRatingCount: newCount,
		constant.FieldModifiedAt:     timezone.Now(),
		constant.FieldModifiedBy:     userID,
	}

	if err = s.vendorRepo.Update(ctx, updatedFields, shared.FilterByID(vendorID, vendorModel.FieldID, vendorModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update vendor rating")

		return res, fmt.Errorf("failed to update vendor rating: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVendor, vendorID)); err != nil {
			log.Error().Err(err).Msg("failed to delete vendor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVendor)
	}()

	res.VendorID = vendorID
	res.Rate = newRate
	res.RatingCount = newCount

	return res, nil
}
