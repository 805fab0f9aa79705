package visit

import (
	"net/http"
	"zifaf/infras/otel"
	"zifaf/internal/domains/visit/model"
	"zifaf/internal/domains/visit/model/dto"
	"zifaf/internal/domains/visit/service"
	"zifaf/shared"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/validator"
	"zifaf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Visit
	otel    otel.Otel
}

func New(service service.Visit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/visits", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVisit)
		routerGroup.Get("/", handler.GetVisits)
		routerGroup.Get("/{id}", handler.GetVisitByID)
		routerGroup.Patch("/{id}/accept", handler.AcceptVisit)
	})
}

// CreateVisit schedules a site visit with a vendor.
// @Summary Request a visit
// @Description Schedule a visit to a vendor on a given date and time.
// @Tags Visit
// @Accept json
// @Produce json
// @Param request body dto.CreateVisitRequest true "Create Visit Request"
// @Success 201 {object} response.Message "Visit requested successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits [post]
// @Security BearerAuth
func (handler *Handler) CreateVisit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVisit")
	defer scope.End()

	req := dto.CreateVisitRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create visit")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Visit requested successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Visit requested successfully")
}

// GetVisits retrieves visits based on query parameters.
// @Summary Get all visits
// @Description Retrieve visits with optional filtering and pagination.
// @Tags Visit
// @Accept json
// @Produce json
// @Param vendor_id query string false "Filter by vendor"
// @Param user_id query string false "Filter by user"
// @Param accepted query boolean false "Filter by acceptance"
// @Success 200 {object} dto.GetVisitsResponse "List of visits"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits [get]
// @Security BearerAuth
func (handler *Handler) GetVisits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVisits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if vendorID := r.URL.Query().Get(model.FieldVendorID); vendorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVendorID,
			Operator: gDto.FilterOperatorEq,
			Value:    vendorID,
			Table:    model.TableName,
		})
	}

	if userID := r.URL.Query().Get(model.FieldUserID); userID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		})
	}

	if accepted := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldAccepted)); accepted != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAccepted,
			Operator: gDto.FilterOperatorEq,
			Value:    *accepted,
			Table:    model.TableName,
		})
	}

	visits, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get visits")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Visits retrieved successfully")

	response.WithJSON(w, http.StatusOK, visits)
}

// GetVisitByID retrieves a visit by its ID.
// @Summary Get a visit by ID
// @Description Retrieve a visit by its unique identifier.
// @Tags Visit
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} dto.VisitResponse "Visit details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetVisitByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVisitByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	visit, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get visit by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Visit retrieved successfully")

	response.WithJSON(w, http.StatusOK, visit)
}

// AcceptVisit marks a visit request as accepted.
// @Summary Accept a visit
// @Description Accept a visit request, vendor owner or admin only. Accepting twice is a no-op.
// @Tags Visit
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Success 200 {object} response.Message "Visit accepted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits/{id}/accept [patch]
// @Security BearerAuth
func (handler *Handler) AcceptVisit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptVisit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept visit")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Visit accepted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Visit accepted successfully")
}
