package service

import (
	"context"
	"fmt"

	"zifaf/config"
	"zifaf/infras/otel"
	vendorModel "zifaf/internal/domains/vendors/model"
	vendorRepo "zifaf/internal/domains/vendors/repository"
	"zifaf/internal/domains/visit/model"
	"zifaf/internal/domains/visit/model/dto"
	"zifaf/internal/domains/visit/repository"
	"zifaf/shared"
	"zifaf/shared/cache"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVisit    = "visit:get"
	cacheGetAllVisit = "visit:gets"
	cacheCountVisit  = "visit:count"
)

type Visit interface {
	Create(ctx context.Context, req dto.CreateVisitRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVisitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VisitResponse, error)
	Accept(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Visit
	vendorRepo vendorRepo.Vendor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Visit, vendorRepo vendorRepo.Vendor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Visit {
	return &serviceImpl{
		repo:       repo,
		vendorRepo: vendorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVisitRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(req.VendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.ID == "" || !vendor.Visible {
		return failure.NotFound("vendor not found")
	}

	visit, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse visit request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid visit date: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, visit); err != nil {
		log.Error().Err(err).Msg("failed to create visit")

		return fmt.Errorf("failed to create visit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVisit)
		shared.InvalidateCaches(c, s.cache, cacheCountVisit)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVisitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visits")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get visits")

		return res, fmt.Errorf("failed to get visits: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visits to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visit count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VisitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetVisit, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visit")

		return res, nil
	}

	visit, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get visit")

		return res, fmt.Errorf("failed to get visit: %w", err)
	}

	if visit.ID == "" {
		return res, failure.NotFound("visit not found")
	}

	res.FromModel(visit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visit to cache")
		}
	}()

	return res, nil
}

// Accept marks the visit accepted. Accepting an already accepted visit is a
// no-op that still succeeds; there is no transition back to pending.
func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	visit, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get visit")

		return fmt.Errorf("failed to get visit: %w", err)
	}

	if visit.ID == "" {
		return failure.NotFound("visit not found")
	}

	vendor, err := s.vendorRepo.Get(ctx, shared.FilterByID(visit.VendorID, vendorModel.FieldID, vendorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vendor")

		return fmt.Errorf("failed to get vendor: %w", err)
	}

	if vendor.UserID != userID && role != constant.RoleAdmin {
		return failure.ResourceRestrictedError
	}

	if visit.Accepted {
		return nil
	}

	accepted := dto.AcceptVisitRequest{Accepted: true}
	updatedFields := shared.TransformFields(accepted, userID)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to accept visit")

		return fmt.Errorf("failed to accept visit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVisit, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete visit from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVisit)
		shared.InvalidateCaches(c, s.cache, cacheCountVisit)
	}()

	return nil
}
