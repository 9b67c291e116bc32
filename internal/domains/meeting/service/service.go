package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/roomgate_mock.go -package=mocks -exclude_interfaces=Meeting

import (
	"context"
	"fmt"

	"huddle/config"
	"huddle/infras/otel"
	"huddle/internal/domains/meeting/model"
	"huddle/internal/domains/meeting/model/dto"
	"huddle/internal/domains/meeting/repository"
	roomModel "huddle/internal/domains/room/model"
	"huddle/shared"
	"huddle/shared/cache"
	"huddle/shared/clock"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMeeting    = "meeting:get"
	cacheGetAllMeeting = "meeting:gets"
	cacheCountMeeting  = "meeting:count"
)

// RoomGate is the slice of the room service the booking path needs: the room
// lookup, the availability read, and the lifecycle-only availability writer.
type RoomGate interface {
	GetRoom(ctx context.Context, id string) (roomModel.Room, error)
	IsAvailable(ctx context.Context, id string) (bool, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

type Meeting interface {
	Create(ctx context.Context, req dto.CreateMeetingRequest) (dto.MeetingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMeetingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.MeetingResponse, error)
	Cancel(ctx context.Context, id string) error
	UpdateTitle(ctx context.Context, req dto.UpdateTitleRequest, id string) error
	UpdateDescription(ctx context.Context, req dto.UpdateDescriptionRequest, id string) error
	UpdateDuration(ctx context.Context, req dto.UpdateDurationRequest, id string) error
	SweepStart(ctx context.Context)
	SweepEnd(ctx context.Context)
}

type serviceImpl struct {
	repo     repository.Meeting
	roomGate RoomGate
	clock    clock.Clock
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Meeting, roomGate RoomGate, clk clock.Clock, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Meeting {
	return &serviceImpl{
		repo:     repo,
		roomGate: roomGate,
		clock:    clk,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create runs the admission path. The checks run in a fixed order so each
// rejection is distinct for the caller: room exists, the range is coherent,
// the range fits the room's daily window, the room is available, and no
// active meeting of the room overlaps.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMeetingRequest) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	host, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if host == constant.Empty {
		return res, failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	room, err := s.roomGate.GetRoom(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	start, end, err := req.ParseRange()
	if err != nil {
		return res, failure.BadRequestFromString("dates must be RFC 3339 timestamps") // nolint:wrapcheck
	}

	if start.After(end) {
		return res, failure.BadRequestFromString("meeting start must not be after its end") // nolint:wrapcheck
	}

	if !room.SupportsRange(start, end) {
		return res, failure.BadRequestFromString("meeting falls outside the room availability window") // nolint:wrapcheck
	}

	available, err := s.roomGate.IsAvailable(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if !available {
		return res, failure.Conflict("room is unavailable") // nolint:wrapcheck
	}

	active, err := s.repo.GetAll(ctx, gDto.QueryParams{}, activeRoomFilter(req.RoomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to list active meetings")

		return res, fmt.Errorf("failed to list active meetings: %w", err)
	}

	for _, existing := range active {
		if existing.Overlaps(start, end) {
			return res, failure.Conflict("room is already booked for the requested time range") // nolint:wrapcheck
		}
	}

	meeting := req.ToModel(host, start, end)
	if err = s.repo.Insert(ctx, meeting); err != nil {
		return res, err
	}

	s.invalidate(ctx, meeting.ID)

	res.FromModel(meeting)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMeetingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = scopeToHost(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMeeting, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meetings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count meetings")

		return res, fmt.Errorf("failed to count meetings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get meetings")

		return res, fmt.Errorf("failed to get meetings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meetings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = scopeToHost(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMeeting, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meeting count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count meetings")

		return res, fmt.Errorf("failed to count meetings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetMeeting, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for meeting")

		return res, nil
	}

	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(meeting)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save meeting to cache")
		}
	}()

	return res, nil
}

// Cancel ends the meeting's lifecycle early. The host check runs before the
// state check so a non-host probing someone else's meeting always sees a
// privilege error, never a state hint.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	host, _ := ctx.Value(constant.ContextKeyUserID).(string)

	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return err
	}

	if meeting.HostID != host {
		return failure.Forbidden("only the host may modify this meeting") // nolint:wrapcheck
	}

	transition, err := meeting.State.Apply(model.EventCancel)
	if err != nil {
		return failure.BadRequestFromString("meeting cannot be cancelled in its current state") // nolint:wrapcheck
	}

	return s.applyTransition(ctx, meeting, transition, host)
}

func (s *serviceImpl) UpdateTitle(ctx context.Context, req dto.UpdateTitleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateTitle")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.updateFields(ctx, id, req)
}

func (s *serviceImpl) UpdateDescription(ctx context.Context, req dto.UpdateDescriptionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDescription")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.updateFields(ctx, id, req)
}

// UpdateDuration moves a meeting before it starts. Only created meetings
// qualify; the new range must still be coherent. Overlap is not re-validated
// here, matching long-standing client expectations.
func (s *serviceImpl) UpdateDuration(ctx context.Context, req dto.UpdateDurationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDuration")
	defer scope.End()
	defer scope.TraceIfError(err)

	host, _ := ctx.Value(constant.ContextKeyUserID).(string)

	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return err
	}

	if meeting.HostID != host {
		return failure.Forbidden("only the host may modify this meeting") // nolint:wrapcheck
	}

	if meeting.State != model.StateCreated {
		return failure.BadRequestFromString("duration can only change before the meeting starts") // nolint:wrapcheck
	}

	start, end, err := req.ParseRange()
	if err != nil {
		return failure.BadRequestFromString("dates must be RFC 3339 timestamps") // nolint:wrapcheck
	}

	if start.After(end) {
		return failure.BadRequestFromString("meeting start must not be after its end") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStartDate:     start,
		model.FieldEndDate:       end,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: host,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update meeting duration")

		return fmt.Errorf("failed to update meeting duration: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SweepStart moves every created meeting whose start has passed into
// in_progress, closing the room gate behind it. Failures are logged and left
// for the next tick.
func (s *serviceImpl) SweepStart(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweepScopeName, constant.OtelSweepScopeName+".Start")
	defer scope.End()

	now := s.clock.Now()

	meetings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, stateFilter(model.StateCreated))
	if err != nil {
		log.Error().Err(err).Msg("start sweep: failed to list created meetings")

		return
	}

	for _, meeting := range meetings {
		if !meeting.Due(now) {
			continue
		}

		transition, err := meeting.State.Apply(model.EventStart)
		if err != nil {
			continue
		}

		if err := s.applyTransition(ctx, meeting, transition, constant.SystemActor); err != nil {
			log.Error().Err(err).Str("meetingID", meeting.ID).Msg("start sweep: transition failed, retrying next tick")

			continue
		}

		log.Info().Str("meetingID", meeting.ID).Str("roomID", meeting.RoomID).Msg("meeting started")
	}
}

// SweepEnd moves every in_progress meeting whose end has passed into ended,
// reopening the room gate.
func (s *serviceImpl) SweepEnd(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSweepScopeName, constant.OtelSweepScopeName+".End")
	defer scope.End()

	now := s.clock.Now()

	meetings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, stateFilter(model.StateInProgress))
	if err != nil {
		log.Error().Err(err).Msg("end sweep: failed to list in-progress meetings")

		return
	}

	for _, meeting := range meetings {
		if !meeting.Expired(now) {
			continue
		}

		transition, err := meeting.State.Apply(model.EventEnd)
		if err != nil {
			continue
		}

		if err := s.applyTransition(ctx, meeting, transition, constant.SystemActor); err != nil {
			log.Error().Err(err).Str("meetingID", meeting.ID).Msg("end sweep: transition failed, retrying next tick")

			continue
		}

		log.Info().Str("meetingID", meeting.ID).Str("roomID", meeting.RoomID).Msg("meeting ended")
	}
}

func (s *serviceImpl) getMeeting(ctx context.Context, id string) (model.Meeting, error) {
	meeting, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get meeting")

		return meeting, fmt.Errorf("failed to get meeting: %w", err)
	}

	if meeting.ID == constant.Empty {
		return meeting, failure.NotFound("meeting not found") // nolint:wrapcheck
	}

	return meeting, nil
}

func (s *serviceImpl) updateFields(ctx context.Context, id string, req any) error {
	host, _ := ctx.Value(constant.ContextKeyUserID).(string)

	meeting, err := s.getMeeting(ctx, id)
	if err != nil {
		return err
	}

	if meeting.HostID != host {
		return failure.Forbidden("only the host may modify this meeting") // nolint:wrapcheck
	}

	if meeting.State.Terminal() {
		return failure.BadRequestFromString("meeting can no longer be modified") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, host), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update meeting")

		return fmt.Errorf("failed to update meeting: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// applyTransition persists a resolved lifecycle transition and its room
// availability side effect. The current state is part of the update predicate
// so a replayed transition matches zero rows instead of clobbering state.
func (s *serviceImpl) applyTransition(ctx context.Context, meeting model.Meeting, transition model.Transition, actor string) error {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    meeting.ID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldState,
				Value:    string(meeting.State),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	updatedFields := map[string]any{
		model.FieldState:         string(transition.To),
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to transition meeting")

		return fmt.Errorf("failed to transition meeting: %w", err)
	}

	if transition.RoomAvailable != nil {
		if err := s.roomGate.SetAvailable(ctx, meeting.RoomID, *transition.RoomAvailable); err != nil {
			log.Error().Err(err).Str("roomID", meeting.RoomID).Msg("failed to update room availability after transition")

			return fmt.Errorf("failed to update room availability: %w", err)
		}
	}

	s.invalidate(ctx, meeting.ID)

	return nil
}

func activeRoomFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldState,
				Value:    model.ActiveStates(),
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}

func stateFilter(state model.State) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldState,
				Value:    string(state),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func scopeToHost(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	host, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if host == constant.Empty {
		return filter
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldHostID,
		Value:    host,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return filter
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMeeting, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete meeting cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllMeeting)
		shared.InvalidateCaches(c, s.cache, cacheCountMeeting)
	}()
}
