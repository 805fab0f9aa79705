package service

import (
	"context"
	"fmt"

	"zifaf/config"
	"zifaf/infras/otel"
	"zifaf/internal/domains/listing/model"
	"zifaf/internal/domains/listing/model/dto"
	"zifaf/internal/domains/listing/repository"
	vendorModel "zifaf/internal/domains/vendors/model"
	vendorRepo "zifaf/internal/domains/vendors/repository"
	"zifaf/shared"
	"zifaf/shared/cache"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetListing    = "listing:get"
	cacheGetAllListing = "listing:gets"
	cacheCountListing  = "listing:count"
)

type Listing interface {
	Create(ctx context.Context, req dto.CreateListingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetListingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ListingResponse, error)
	Update(ctx context.Context, req dto.UpdateListingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Listing
	vendorRepo vendorRepo.Vendor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Listing, vendorRepo vendorRepo.Vendor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Listing {
	return &serviceImpl{
		repo:       repo,
		vendorRepo: vendorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateListingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
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

	// Listing kind always mirrors the owning vendor's type.
	if err = s.repo.Insert(ctx, req.ToModel(vendor.VendorType, userID)); err != nil {
		log.Error().Err(err).Msg("failed to create listing")

		return fmt.Errorf("failed to create listing: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllListing)
		shared.InvalidateCaches(c, s.cache, cacheCountListing)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetListingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllListing, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get listings")

		return res, fmt.Errorf("failed to get listings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountListing, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count listings")

		return res, fmt.Errorf("failed to count listings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listing count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ListingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetListing, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for listing")

		return res, nil
	}

	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return res, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == "" {
		return res, failure.NotFound("listing not found")
	}

	res.FromModel(listing)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save listing to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateListingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateListingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userID, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	updatedFields := shared.TransformFields(req, userID)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update listing")

		return fmt.Errorf("failed to update listing: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.authorize(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete listing")

		return fmt.Errorf("failed to delete listing: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// authorize loads the listing and checks the actor owns the vendor behind it.
func (s *serviceImpl) authorize(ctx context.Context, id string) (string, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	listing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return userID, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == "" {
		return userID, failure.NotFound("listing not found")
	}

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(listing.VendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return userID, fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.UserID != userID && role != constant.RoleAdmin {
		return userID, failure.ResourceRestrictedError
	}

	return userID, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetListing, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete listing from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllListing)
		shared.InvalidateCaches(c, s.cache, cacheCountListing)
	}()
}
