package service

import (
	"context"
	"fmt"

	"zifaf/config"
	"zifaf/infras/otel"
	"zifaf/internal/domains/vendors/model"
	"zifaf/internal/domains/vendors/model/dto"
	"zifaf/internal/domains/vendors/repository"
	"zifaf/shared"
	"zifaf/shared/cache"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVendor    = "vendor:get"
	cacheGetAllVendor = "vendor:gets"
	cacheCountVendor  = "vendor:count"

	argVisibleScope = "visible_scope"
)

type Vendor interface {
	Register(ctx context.Context, req dto.RegisterVendorRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVendorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VendorResponse, error)
	Update(ctx context.Context, req dto.UpdateVendorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Vendor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Vendor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Vendor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterVendorRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// One profile per owner and vendor type.
	duplicateFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldVendorType,
				Operator: gDto.FilterOperatorEq,
				Value:    req.VendorType,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, duplicateFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if vendor exists")

		return fmt.Errorf("failed to check if vendor exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("vendor profile already registered for this type")
	}

	if err = s.repo.Insert(ctx, req.ToModel(userID)); err != nil {
		log.Error().Err(err).Msg("failed to register vendor")

		return fmt.Errorf("failed to register vendor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVendor)
		shared.InvalidateCaches(c, s.cache, cacheCountVendor)
	}()

	return nil
}

// scopeToVisible hides unlisted vendors from everyone but admins. The forced
// filter carries its own arg name so a caller-supplied visible filter cannot
// collide with it, and appending is skipped when the scope is already applied.
func scopeToVisible(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return filter
	}

	for _, f := range filter.Filters {
		if existing, ok := f.(gDto.Filter); ok && existing.ArgName == argVisibleScope {
			return filter
		}
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldVisible,
		Operator: gDto.FilterOperatorEq,
		Value:    true,
		Table:    model.TableName,
		ArgName:  argVisibleScope,
	})

	return filter
}

// canSeeHidden reports whether the caller may read a vendor that is not
// publicly listed: its owner or an admin.
func canSeeHidden(ctx context.Context, ownerID string) bool {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin || (userID != "" && userID == ownerID)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVendorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = scopeToVisible(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVendor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vendors")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vendors")

		return res, fmt.Errorf("failed to count vendors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendors")

		return res, fmt.Errorf("failed to get vendors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = scopeToVisible(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVendor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vendor count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vendors")

		return res, fmt.Errorf("failed to count vendors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VendorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVendor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for vendor")

		if !res.Visible && !canSeeHidden(ctx, res.UserID) {
			return dto.VendorResponse{}, failure.NotFound("vendor not found")
		}

		return res, nil
	}

	vendor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return res, fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.ID == "" {
		return res, failure.NotFound("vendor not found")
	}

	if !vendor.Visible && !canSeeHidden(ctx, vendor.UserID) {
		return res, failure.NotFound("vendor not found")
	}

	res.FromModel(vendor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vendor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVendorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateVendorRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	vendor, err := s.repo.Get(ctx, filter)
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

	updatedFields := shared.TransformFields(req, userID)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update vendor")

		return fmt.Errorf("failed to update vendor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVendor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete vendor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVendor)
		shared.InvalidateCaches(c, s.cache, cacheCountVendor)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	vendor, err := s.repo.Get(ctx, filter)
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

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete vendor")

		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVendor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete vendor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVendor)
		shared.InvalidateCaches(c, s.cache, cacheCountVendor)
	}()

	return nil
}
