package listing

import (
	"net/http"
	"zifaf/infras/otel"
	"zifaf/internal/domains/listing/model"
	"zifaf/internal/domains/listing/model/dto"
	"zifaf/internal/domains/listing/service"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/validator"
	"zifaf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/listings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateListing)
		routerGroup.Get("/", handler.GetListings)
		routerGroup.Get("/{id}", handler.GetListingByID)
		routerGroup.Patch("/{id}", handler.UpdateListing)
		routerGroup.Delete("/{id}", handler.DeleteListing)
	})
}

// CreateListing handles the creation of a new listing.
// @Summary Create a new listing
// @Description Create a listing under a vendor owned by the authenticated user.
// @Tags Listing
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Create Listing Request"
// @Success 201 {object} response.Message "Listing created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [post]
// @Security BearerAuth
func (handler *Handler) CreateListing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateListing")
	defer scope.End()

	req := dto.CreateListingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Listing created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Listing created successfully")
}

// GetListings retrieves all listings based on query parameters.
// @Summary Get all listings
// @Description Retrieve listings with optional filtering and pagination.
// @Tags Listing
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param vendor_id query string false "Filter by vendor"
// @Param kind query string false "Filter by kind"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_men_capacity query int false "Minimum men capacity"
// @Param min_women_capacity query int false "Minimum women capacity"
// @Success 200 {object} dto.GetListingsResponse "List of listings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [get]
func (handler *Handler) GetListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	if vendorID := r.URL.Query().Get(model.FieldVendorID); vendorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVendorID,
			Operator: gDto.FilterOperatorEq,
			Value:    vendorID,
			Table:    model.TableName,
		})
	}

	if kind := r.URL.Query().Get(model.FieldKind); kind != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldKind,
			Operator: gDto.FilterOperatorEq,
			Value:    kind,
			Table:    model.TableName,
		})
	}

	if minPrice := r.URL.Query().Get("min_price"); minPrice != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPrice,
			ArgName:  "min_price",
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minPrice,
			Table:    model.TableName,
		})
	}

	if maxPrice := r.URL.Query().Get("max_price"); maxPrice != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPrice,
			ArgName:  "max_price",
			Operator: gDto.FilterOperatorLessEq,
			Value:    maxPrice,
			Table:    model.TableName,
		})
	}

	if minMen := r.URL.Query().Get("min_men_capacity"); minMen != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldMenCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minMen,
			Table:    model.TableName,
		})
	}

	if minWomen := r.URL.Query().Get("min_women_capacity"); minWomen != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldWomenCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minWomen,
			Table:    model.TableName,
		})
	}

	listings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listings retrieved successfully")

	response.WithJSON(w, http.StatusOK, listings)
}

// GetListingByID retrieves a listing by its ID.
// @Summary Get a listing by ID
// @Description Retrieve a listing by its unique identifier.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.ListingResponse "Listing details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [get]
func (handler *Handler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	listing, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing retrieved successfully")

	response.WithJSON(w, http.StatusOK, listing)
}

// UpdateListing updates an existing listing by its ID.
// @Summary Update a listing by ID
// @Description Update the details of an existing listing, owner or admin only.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Update Listing Request"
// @Success 200 {object} response.Message "Listing updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateListingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Listing updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Listing updated successfully")
}

// DeleteListing deletes a listing by its ID.
// @Summary Delete a listing by ID
// @Description Delete a listing using its unique identifier, owner or admin only.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Listing deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Listing deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Listing deleted successfully")
}
