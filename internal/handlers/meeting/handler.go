package meeting

import (
	"net/http"

	"huddle/infras/otel"
	"huddle/internal/domains/meeting/model"
	"huddle/internal/domains/meeting/model/dto"
	"huddle/internal/domains/meeting/service"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/validator"
	"huddle/transport/http/middleware"
	"huddle/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Meeting
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Meeting, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meetings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth)

		routerGroup.Post("/", handler.CreateMeeting)
		routerGroup.Get("/", handler.GetMeetings)
		routerGroup.Get("/{id}", handler.GetMeetingByID)
		routerGroup.Post("/{id}/cancel", handler.CancelMeeting)
		routerGroup.Patch("/{id}/title", handler.UpdateTitle)
		routerGroup.Patch("/{id}/description", handler.UpdateDescription)
		routerGroup.Patch("/{id}/duration", handler.UpdateDuration)
	})
}

// CreateMeeting books a room for a time range.
// @Summary Book a meeting
// @Description Book a room for a time range. The room must exist, be available, the range must fit the room window, and no active meeting of the room may overlap.
// @Tags Meeting
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting details"
// @Success 201 {object} response.Data[dto.MeetingResponse] "Meeting booked"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings [post]
// @Security BearerAuth
func (handler *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMeeting")
	defer scope.End()

	var req dto.CreateMeetingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	meeting, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create meeting")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting created successfully")

	response.WithJSON(w, http.StatusCreated, meeting)
}

// GetMeetings lists the caller's meetings.
// @Summary Get meetings
// @Description List the caller's meetings with optional state and room filters.
// @Tags Meeting
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param state query string false "Filter by lifecycle state"
// @Param room_id query string false "Filter by room"
// @Success 200 {object} response.Data[dto.GetMeetingsResponse] "List of meetings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings [get]
// @Security BearerAuth
func (handler *Handler) GetMeetings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if state := r.URL.Query().Get(model.FieldState); state != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldState,
			Operator: gDto.FilterOperatorEq,
			Value:    state,
			Table:    model.TableName,
		})
	}

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	meetings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meetings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meetings retrieved successfully")

	response.WithJSON(w, http.StatusOK, meetings)
}

// GetMeetingByID retrieves a meeting by its ID.
// @Summary Get a meeting by ID
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} response.Data[dto.MeetingResponse] "Meeting details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMeetingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	meeting, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meeting by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting retrieved successfully")

	response.WithJSON(w, http.StatusOK, meeting)
}

// CancelMeeting cancels a meeting hosted by the caller.
// @Summary Cancel a meeting
// @Description Cancel a created or in-progress meeting. Only the host may cancel.
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} response.Message "Meeting cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelMeeting")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel meeting")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Meeting cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Meeting cancelled successfully")
}

// UpdateTitle renames a meeting.
// @Summary Update a meeting title
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateTitleRequest true "New title"
// @Success 200 {object} response.Message "Meeting updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings/{id}/title [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTitle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateTitleRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateTitle(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting title")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting title updated successfully")

	response.WithMessage(w, http.StatusOK, "Meeting updated successfully")
}

// UpdateDescription updates a meeting description.
// @Summary Update a meeting description
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateDescriptionRequest true "New description"
// @Success 200 {object} response.Message "Meeting updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings/{id}/description [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDescription")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateDescriptionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDescription(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting description")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting description updated successfully")

	response.WithMessage(w, http.StatusOK, "Meeting updated successfully")
}

// UpdateDuration moves a meeting that has not started yet.
// @Summary Update a meeting duration
// @Description Change the start and end of a meeting that is still in the created state.
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateDurationRequest true "New time range"
// @Success 200 {object} response.Message "Meeting updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings/{id}/duration [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDuration(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDuration")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateDurationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDuration(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting duration")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meeting duration updated successfully")

	response.WithMessage(w, http.StatusOK, "Meeting updated successfully")
}
