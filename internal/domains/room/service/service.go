package service

import (
	"context"
	"fmt"
	"sync"

	"huddle/config"
	"huddle/infras/otel"
	resourceModel "huddle/internal/domains/resource/model"
	resourceDto "huddle/internal/domains/resource/model/dto"
	resourceRepo "huddle/internal/domains/resource/repository"
	"huddle/internal/domains/room/model"
	"huddle/internal/domains/room/model/dto"
	"huddle/internal/domains/room/repository"
	"huddle/shared"
	"huddle/shared/cache"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom          = "room:get"
	cacheGetAllRoom       = "room:gets"
	cacheCountRoom        = "room:count"
	cacheGetRoomResources = "room:resources"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error

	// Gate reads and the lifecycle-only availability writer. These bypass the
	// cache: a stale availability read would let two meetings occupy one room.
	GetRoom(ctx context.Context, id string) (model.Room, error)
	IsAvailable(ctx context.Context, id string) (bool, error)
	SetAvailable(ctx context.Context, id string, available bool) error

	AddResource(ctx context.Context, roomID, resourceID string) error
	RemoveResource(ctx context.Context, roomID, resourceID string) error
	GetResources(ctx context.Context, roomID string) ([]resourceDto.ResourceResponse, error)
}

type serviceImpl struct {
	repo             repository.Room
	roomResourceRepo repository.RoomResource
	resourceRepo     resourceRepo.Resource
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel

	// One mutex per room id; every availability write serializes through it.
	gates sync.Map
}

func New(repo repository.Room, roomResourceRepo repository.RoomResource, resourceRepo resourceRepo.Resource, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:             repo,
		roomResourceRepo: roomResourceRepo,
		resourceRepo:     resourceRepo,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) gate(roomID string) *sync.Mutex {
	mu, _ := s.gates.LoadOrStore(roomID, &sync.Mutex{})

	return mu.(*sync.Mutex)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.OpensAt > req.ClosesAt {
		return failure.BadRequestFromString("availability window must open before it closes") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetRoom(ctx context.Context, id string) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// IsAvailable answers the gate read. Unknown rooms read as unavailable, so a
// booking against a room deleted mid-flight is refused rather than admitted.
func (s *serviceImpl) IsAvailable(ctx context.Context, id string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.FieldID, model.FieldAvailable)
	if err != nil {
		log.Error().Err(err).Msg("failed to read room availability")

		return false, fmt.Errorf("failed to read room availability: %w", err)
	}

	if room.ID == constant.Empty {
		return false, nil
	}

	return room.Available, nil
}

// SetAvailable is the only writer of the available flag. Lifecycle
// transitions call it; it is never exposed through a handler.
func (s *serviceImpl) SetAvailable(ctx context.Context, id string, available bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	mu := s.gate(id)
	mu.Lock()
	defer mu.Unlock()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == constant.Empty {
		actor = constant.SystemActor
	}

	updatedFields := map[string]any{
		model.FieldAvailable:     available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room availability")

		return fmt.Errorf("failed to update room availability: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentRoom, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if !currentRoom.Available {
		return failure.Conflict("room is unavailable") // nolint:wrapcheck
	}

	opensAt, closesAt := currentRoom.OpensAt, currentRoom.ClosesAt
	if req.OpensAt != constant.Empty {
		opensAt = req.OpensAt
	}
	if req.ClosesAt != constant.Empty {
		closesAt = req.ClosesAt
	}
	if opensAt > closesAt {
		return failure.BadRequestFromString("availability window must open before it closes") // nolint:wrapcheck
	}

	if err := s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	if !room.Available {
		return failure.Conflict("room is unavailable") // nolint:wrapcheck
	}

	if err := s.roomResourceRepo.Delete(ctx, shared.FilterByID(id, model.RoomResourceFieldRoomID, model.RoomResourceTableName)); err != nil {
		log.Error().Err(err).Msg("failed to detach resources from room")

		return fmt.Errorf("failed to detach resources from room: %w", err)
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) AddResource(ctx context.Context, roomID, resourceID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddResource")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if !room.Available {
		return failure.Conflict("room is unavailable") // nolint:wrapcheck
	}

	exist, err := s.resourceRepo.Exist(ctx, shared.FilterByID(resourceID, resourceModel.FieldID, resourceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if resource exists")

		return fmt.Errorf("failed to check if resource exists: %w", err)
	}

	if !exist {
		return failure.NotFound("resource not found") // nolint:wrapcheck
	}

	attached, err := s.roomResourceRepo.Exist(ctx, associationFilter(roomID, resourceID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check resource attachment")

		return fmt.Errorf("failed to check resource attachment: %w", err)
	}

	if attached {
		return failure.Conflict("resource is already attached to this room") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	association := model.RoomResource{
		ID:         uuid.NewString(),
		RoomID:     roomID,
		ResourceID: resourceID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err := s.roomResourceRepo.Insert(ctx, association); err != nil {
		log.Error().Err(err).Msg("failed to attach resource to room")

		return fmt.Errorf("failed to attach resource to room: %w", err)
	}

	s.invalidate(ctx, roomID)

	return nil
}

func (s *serviceImpl) RemoveResource(ctx context.Context, roomID, resourceID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveResource")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if !room.Available {
		return failure.Conflict("room is unavailable") // nolint:wrapcheck
	}

	attached, err := s.roomResourceRepo.Exist(ctx, associationFilter(roomID, resourceID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check resource attachment")

		return fmt.Errorf("failed to check resource attachment: %w", err)
	}

	if !attached {
		return failure.NotFound("resource is not attached to this room") // nolint:wrapcheck
	}

	if err := s.roomResourceRepo.Delete(ctx, associationFilter(roomID, resourceID)); err != nil {
		log.Error().Err(err).Msg("failed to detach resource from room")

		return fmt.Errorf("failed to detach resource from room: %w", err)
	}

	s.invalidate(ctx, roomID)

	return nil
}

func (s *serviceImpl) GetResources(ctx context.Context, roomID string) (res []resourceDto.ResourceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetResources")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoomResources, roomID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room resources")

		return res, nil
	}

	if _, err = s.GetRoom(ctx, roomID); err != nil {
		return res, err
	}

	associations, err := s.roomResourceRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(roomID, model.RoomResourceFieldRoomID, model.RoomResourceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list room resources")

		return res, fmt.Errorf("failed to list room resources: %w", err)
	}

	res = make([]resourceDto.ResourceResponse, 0, len(associations))
	if len(associations) == 0 {
		return res, nil
	}

	resourceIDs := make([]string, len(associations))
	for i, association := range associations {
		resourceIDs[i] = association.ResourceID
	}

	resources, err := s.resourceRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    resourceModel.FieldID,
				Value:    resourceIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    resourceModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get resources")

		return res, fmt.Errorf("failed to get resources: %w", err)
	}

	for _, resource := range resources {
		var item resourceDto.ResourceResponse
		item.FromModel(resource)
		res = append(res, item)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room resources to cache")
		}
	}()

	return res, nil
}

func associationFilter(roomID, resourceID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.RoomResourceFieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomResourceTableName,
			},
			gDto.Filter{
				Field:    model.RoomResourceFieldResourceID,
				Value:    resourceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomResourceTableName,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoomResources, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room resources cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
