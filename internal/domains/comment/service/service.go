package service

import (
	"context"
	"fmt"

	"zifaf/config"
	"zifaf/infras/otel"
	bookingModel "zifaf/internal/domains/booking/model"
	bookingRepo "zifaf/internal/domains/booking/repository"
	"zifaf/internal/domains/comment/model"
	"zifaf/internal/domains/comment/model/dto"
	"zifaf/internal/domains/comment/repository"
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
	cacheGetAllComment = "comment:gets"
	cacheCountComment  = "comment:count"
)

type Comment interface {
	Post(ctx context.Context, req dto.PostCommentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCommentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Comment
	bookingRepo bookingRepo.Booking
	vendorRepo  vendorRepo.Vendor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Comment, bookingRepo bookingRepo.Booking, vendorRepo vendorRepo.Vendor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Comment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Post appends a comment. Commenting requires at least one confirmed
// reservation between the author and the vendor.
func (s *serviceImpl) Post(ctx context.Context, req dto.PostCommentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Post")
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
				Value:    req.VendorID,
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
		log.Error().Err(err).Msg("failed to check comment eligibility")

		return fmt.Errorf("failed to check comment eligibility: %w", err)
	}

	if !eligible {
		return failure.NotEligibleToComment
	}

	if err = s.repo.Insert(ctx, req.ToModel(userID)); err != nil {
		log.Error().Err(err).Msg("failed to post comment")

		return fmt.Errorf("failed to post comment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllComment)
		shared.InvalidateCaches(c, s.cache, cacheCountComment)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCommentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Newest first is the contract, whatever the caller sends.
	req.SortBy = constant.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllComment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for comments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count comments")

		return res, fmt.Errorf("failed to count comments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get comments")

		return res, fmt.Errorf("failed to get comments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save comments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountComment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for comment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count comments")

		return res, fmt.Errorf("failed to count comments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save comment count to cache")
		}
	}()

	return res, nil
}

// Delete removes a comment. Moderation only: admins and no one else.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if comment exists")

		return fmt.Errorf("failed to check if comment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("comment not found")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete comment")

		return fmt.Errorf("failed to delete comment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllComment)
		shared.InvalidateCaches(c, s.cache, cacheCountComment)
	}()

	return nil
}
