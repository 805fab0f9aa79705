package vendor

import (
	"net/http"
	"zifaf/infras/otel"
	bookingDto "zifaf/internal/domains/booking/model/dto"
	bookingService "zifaf/internal/domains/booking/service"
	ratingDto "zifaf/internal/domains/rating/model/dto"
	ratingService "zifaf/internal/domains/rating/service"
	"zifaf/internal/domains/vendors/model"
	"zifaf/internal/domains/vendors/model/dto"
	"zifaf/internal/domains/vendors/service"
	"zifaf/shared"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/failure"
	"zifaf/shared/validator"
	"zifaf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service        service.Vendor
	ratingService  ratingService.Rating
	bookingService bookingService.Booking
	otel           otel.Otel
}

func New(service service.Vendor, ratingService ratingService.Rating, bookingService bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		ratingService:  ratingService,
		bookingService: bookingService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vendors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RegisterVendor)
		routerGroup.Get("/", handler.GetVendors)
		routerGroup.Get("/{id}", handler.GetVendorByID)
		routerGroup.Patch("/{id}", handler.UpdateVendor)
		routerGroup.Delete("/{id}", handler.DeleteVendor)
		routerGroup.Post("/{id}/ratings", handler.SubmitRating)
		routerGroup.Get("/{id}/booked-dates", handler.GetBookedDates)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
	})
}

// RegisterVendor handles the creation of a new vendor profile.
// @Summary Register a new vendor
// @Description Register a vendor profile owned by the authenticated user.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param request body dto.RegisterVendorRequest true "Register Vendor Request"
// @Success 201 {object} response.Message "Vendor registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors [post]
// @Security BearerAuth
func (handler *Handler) RegisterVendor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterVendor")
	defer scope.End()

	req := dto.RegisterVendorRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register vendor")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor registered successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Vendor registered successfully")
}

// GetVendors retrieves all vendors based on query parameters.
// @Summary Get all vendors
// @Description Retrieve visible vendors with optional filtering and pagination.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param vendor_type query string false "Filter by vendor type"
// @Param city query string false "Filter by city"
// @Success 200 {object} dto.GetVendorsResponse "List of vendors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors [get]
func (handler *Handler) GetVendors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVendors")
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

	if vendorType := r.URL.Query().Get(model.FieldVendorType); vendorType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVendorType,
			Operator: gDto.FilterOperatorEq,
			Value:    vendorType,
			Table:    model.TableName,
		})
	}

	if city := r.URL.Query().Get(model.FieldCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if visible := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldVisible)); visible != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVisible,
			Operator: gDto.FilterOperatorEq,
			Value:    *visible,
			Table:    model.TableName,
		})
	}

	vendors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vendors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vendors retrieved successfully")

	response.WithJSON(w, http.StatusOK, vendors)
}

// GetVendorByID retrieves a vendor by its ID.
// @Summary Get a vendor by ID
// @Description Retrieve a vendor by its unique identifier.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse "Vendor details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [get]
func (handler *Handler) GetVendorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVendorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	vendor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vendor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vendor retrieved successfully")

	response.WithJSON(w, http.StatusOK, vendor)
}

// UpdateVendor updates an existing vendor by its ID.
// @Summary Update a vendor by ID
// @Description Update the details of an existing vendor, owner or admin only.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param request body dto.UpdateVendorRequest true "Update Vendor Request"
// @Success 200 {object} response.Message "Vendor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVendor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateVendorRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update vendor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Vendor updated successfully")
}

// DeleteVendor deletes a vendor by its ID.
// @Summary Delete a vendor by ID
// @Description Delete a vendor using its unique identifier, owner or admin only.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Message "Vendor deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVendor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete vendor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Vendor deleted successfully")
}

// SubmitRating records a star rating for a vendor.
// @Summary Rate a vendor
// @Description Submit a 1-5 star rating for a vendor. Requires a confirmed reservation with the vendor.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param request body ratingDto.SubmitRatingRequest true "Submit Rating Request"
// @Success 200 {object} ratingDto.RatingResponse "Rating recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id}/ratings [post]
// @Security BearerAuth
func (handler *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitRating")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := ratingDto.SubmitRatingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.ratingService.Submit(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit rating")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rating submitted successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookedDates lists confirmed event dates for a vendor.
// @Summary Get booked dates
// @Description Retrieve all upcoming dates with a confirmed reservation for the vendor.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} bookingDto.BookedDatesResponse "Booked dates"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id}/booked-dates [get]
func (handler *Handler) GetBookedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var dates bookingDto.BookedDatesResponse

	dates, err := handler.bookingService.GetBookedDates(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booked dates retrieved successfully")

	response.WithJSON(w, http.StatusOK, dates)
}

// GetAvailability checks whether a vendor is free on a given date.
// @Summary Check date availability
// @Description Check whether the vendor has no confirmed reservation on the given date.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param date query string true "Event date (YYYY-MM-DD)"
// @Success 200 {object} bookingDto.DateAvailabilityResponse "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	date := r.URL.Query().Get("date")
	if date == "" {
		err := failure.BadRequestFromString("date query parameter is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	var availability bookingDto.DateAvailabilityResponse

	availability, err := handler.bookingService.IsDateAvailable(ctx, id, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check date availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Date availability checked successfully")

	response.WithJSON(w, http.StatusOK, availability)
}
