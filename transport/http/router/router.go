package router

import (
	"zifaf/internal/handlers/auth"
	"zifaf/internal/handlers/booking"
	"zifaf/internal/handlers/comment"
	"zifaf/internal/handlers/gallery"
	"zifaf/internal/handlers/listing"
	"zifaf/internal/handlers/user"
	vendor "zifaf/internal/handlers/vendors"
	"zifaf/internal/handlers/visit"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Vendor  vendor.Handler
	Listing listing.Handler
	Booking booking.Handler
	Visit   visit.Handler
	Comment comment.Handler
	Gallery gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Vendor.Router(routerGroup)
		r.DomainHandlers.Listing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Visit.Router(routerGroup)
		r.DomainHandlers.Comment.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
