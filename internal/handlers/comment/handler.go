package comment

import (
	"net/http"
	"zifaf/infras/otel"
	"zifaf/internal/domains/comment/model"
	"zifaf/internal/domains/comment/model/dto"
	"zifaf/internal/domains/comment/service"
	"zifaf/shared/constant"
	gDto "zifaf/shared/dto"
	"zifaf/shared/validator"
	"zifaf/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Comment
	otel    otel.Otel
}

func New(service service.Comment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/comments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.PostComment)
		routerGroup.Get("/", handler.GetComments)
		routerGroup.Delete("/{id}", handler.DeleteComment)
	})
}

// PostComment leaves a comment on a vendor's page.
// @Summary Post a comment
// @Description Post a comment on a vendor. Requires a confirmed reservation with the vendor.
// @Tags Comment
// @Accept json
// @Produce json
// @Param request body dto.PostCommentRequest true "Post Comment Request"
// @Success 201 {object} response.Message "Comment posted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/comments [post]
// @Security BearerAuth
func (handler *Handler) PostComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PostComment")
	defer scope.End()

	req := dto.PostCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Post(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to post comment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Comment posted successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Comment posted successfully")
}

// GetComments retrieves comments, newest first.
// @Summary Get all comments
// @Description Retrieve comments with optional vendor filtering, always ordered newest first.
// @Tags Comment
// @Accept json
// @Produce json
// @Param vendor_id query string false "Filter by vendor"
// @Success 200 {object} dto.GetCommentsResponse "List of comments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/comments [get]
func (handler *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComments")
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

	comments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get comments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Comments retrieved successfully")

	response.WithJSON(w, http.StatusOK, comments)
}

// DeleteComment removes a comment by its ID.
// @Summary Delete a comment by ID
// @Description Delete a comment using its unique identifier, admin only.
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Message "Comment deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/comments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteComment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete comment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Comment deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Comment deleted successfully")
}
