//go:build wireinject
// +build wireinject

package di

import (
	"zifaf/config"
	"zifaf/infras/jwt"
	"zifaf/infras/otel"
	"zifaf/infras/postgres"
	"zifaf/infras/redis"
	"zifaf/infras/s3"
	"zifaf/permissions"
	"zifaf/shared/cache"
	"zifaf/transport/http"
	"zifaf/transport/http/middleware"
	"zifaf/transport/http/router"

	"github.com/google/wire"

	authService "zifaf/internal/domains/auth/service"
	bookingRepository "zifaf/internal/domains/booking/repository"
	bookingService "zifaf/internal/domains/booking/service"
	commentRepository "zifaf/internal/domains/comment/repository"
	commentService "zifaf/internal/domains/comment/service"
	galleryRepository "zifaf/internal/domains/gallery/repository"
	galleryService "zifaf/internal/domains/gallery/service"
	listingRepository "zifaf/internal/domains/listing/repository"
	listingService "zifaf/internal/domains/listing/service"
	ratingService "zifaf/internal/domains/rating/service"
	userRepository "zifaf/internal/domains/user/repository"
	userService "zifaf/internal/domains/user/service"
	vendorRepository "zifaf/internal/domains/vendors/repository"
	vendorService "zifaf/internal/domains/vendors/service"
	visitRepository "zifaf/internal/domains/visit/repository"
	visitService "zifaf/internal/domains/visit/service"

	authHandler "zifaf/internal/handlers/auth"
	bookingHandler "zifaf/internal/handlers/booking"
	commentHandler "zifaf/internal/handlers/comment"
	galleryHandler "zifaf/internal/handlers/gallery"
	listingHandler "zifaf/internal/handlers/listing"
	userHandler "zifaf/internal/handlers/user"
	vendorHandler "zifaf/internal/handlers/vendors"
	visitHandler "zifaf/internal/handlers/visit"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var vendorDomain = wire.NewSet(
	vendorRepository.New,
	vendorService.New,
	ratingService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewOwnerBooking,
	bookingService.New,
)

var visitDomain = wire.NewSet(
	visitRepository.New,
	visitService.New,
)

var commentDomain = wire.NewSet(
	commentRepository.New,
	commentService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	authDomain,
	vendorDomain,
	listingDomain,
	bookingDomain,
	visitDomain,
	commentDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	vendorHandler.New,
	listingHandler.New,
	bookingHandler.New,
	visitHandler.New,
	commentHandler.New,
	galleryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
