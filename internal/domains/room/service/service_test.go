package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"huddle/config"
	otelMocks "huddle/infras/otel/mocks"
	resourceModel "huddle/internal/domains/resource/model"
	resourceMocks "huddle/internal/domains/resource/mocks"
	"huddle/internal/domains/room/mocks"
	"huddle/internal/domains/room/model"
	"huddle/internal/domains/room/model/dto"
	cacheMocks "huddle/shared/cache/mocks"
	"huddle/shared/constant"
	"huddle/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	testRoomID     = "1bd877bd-60c2-4b0c-b291-4d78ad902222"
	testResourceID = "7c2e9a11-4b6d-4f3a-9c8e-5d6f7a8b3333"
	testUserID     = "9f1c5ae0-26a5-4cfa-a9d6-1f4b4a3c1111"
)

type fixture struct {
	repo         *mocks.MockRoom
	roomResource *mocks.MockRoomResource
	resource     *resourceMocks.MockResource
	cache        *cacheMocks.MockRedisCache
	svc          Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRoom(ctrl)
	roomResource := mocks.NewMockRoomResource(ctrl)
	resource := resourceMocks.NewMockResource(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)

	return fixture{
		repo:         repo,
		roomResource: roomResource,
		resource:     resource,
		cache:        cacheMock,
		svc:          New(repo, roomResource, resource, &config.Config{}, cacheMock, otelMocks.NewOtel()),
	}
}

// expectInvalidation allows the asynchronous cache invalidation and returns a
// channel that receives once per completed invalidation.
func expectInvalidation(f fixture) chan struct{} {
	done := make(chan struct{}, 8)

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), cacheGetAllRoom+"*").Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), cacheCountRoom+"*").DoAndReturn(func(context.Context, string) error {
		done <- struct{}{}

		return nil
	}).AnyTimes()

	return done
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testUserID)
}

func openRoom() model.Room {
	return model.Room{
		ID:        testRoomID,
		Name:      "War Room",
		Capacity:  6,
		Available: true,
		OpensAt:   "08:00",
		ClosesAt:  "18:00",
	}
}

func closedRoom() model.Room {
	room := openRoom()
	room.Available = false

	return room
}

func TestCreateRoom(t *testing.T) {
	t.Run("inverted window is rejected", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Create(userContext(), dto.CreateRoomRequest{
			Name:     "War Room",
			Capacity: 6,
			OpensAt:  "18:00",
			ClosesAt: "08:00",
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "availability window must open before it closes")
	})

	t.Run("new rooms start available", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		var inserted model.Room
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Room) error {
			inserted = m

			return nil
		})

		err := f.svc.Create(userContext(), dto.CreateRoomRequest{
			Name:     "War Room",
			Capacity: 6,
			OpensAt:  "08:00",
			ClosesAt: "18:00",
		})

		assert.NoError(t, err)
		assert.True(t, inserted.Available)
		assert.Equal(t, testUserID, inserted.CreatedBy)

		<-done
	})
}

func TestIsAvailable(t *testing.T) {
	t.Run("unknown room reads as unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldAvailable).Return(model.Room{}, nil)

		available, err := f.svc.IsAvailable(context.Background(), "missing")

		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("known room reports its flag", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldAvailable).Return(openRoom(), nil)

		available, err := f.svc.IsAvailable(context.Background(), testRoomID)

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("read failures propagate as unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldAvailable).Return(model.Room{}, errors.New("connection reset"))

		available, err := f.svc.IsAvailable(context.Background(), testRoomID)

		assert.Error(t, err)
		assert.False(t, available)
	})
}

func TestSetAvailable(t *testing.T) {
	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.SetAvailable(context.Background(), "missing", false)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("lifecycle writes are stamped with the system actor", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldAvailable])
				assert.Equal(t, constant.SystemActor, fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.SetAvailable(context.Background(), testRoomID, false)

		assert.NoError(t, err)

		<-done
	})
}

func TestUpdateRoom(t *testing.T) {
	t.Run("unavailable room rejects metadata changes", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closedRoom(), nil)

		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{Name: "Situation Room"}, testRoomID)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, "room is unavailable")
	})

	t.Run("partial window update is validated against the stored half", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)

		// Moving only the opening past the stored 18:00 close must fail.
		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{OpensAt: "19:00"}, testRoomID)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "availability window must open before it closes")
	})

	t.Run("available room accepts changes", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, "Situation Room", fields[model.FieldName])
				assert.Equal(t, testUserID, fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{Name: "Situation Room"}, testRoomID)

		assert.NoError(t, err)

		<-done
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("unavailable room cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closedRoom(), nil)

		err := f.svc.Delete(userContext(), testRoomID)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deletion detaches resources first", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)

		gomock.InOrder(
			f.roomResource.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
			f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
		)

		err := f.svc.Delete(userContext(), testRoomID)

		assert.NoError(t, err)

		<-done
	})
}

func TestAddResource(t *testing.T) {
	t.Run("unavailable room rejects attachments", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(closedRoom(), nil)

		err := f.svc.AddResource(userContext(), testRoomID, testResourceID)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.resource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.AddResource(userContext(), testRoomID, testResourceID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "resource not found")
	})

	t.Run("duplicate attachment", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.resource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomResource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.AddResource(userContext(), testRoomID, testResourceID)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.EqualError(t, err, "resource is already attached to this room")
	})

	t.Run("attachment succeeds", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.resource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomResource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.roomResource.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.RoomResource) error {
			assert.Equal(t, testRoomID, m.RoomID)
			assert.Equal(t, testResourceID, m.ResourceID)

			return nil
		})

		err := f.svc.AddResource(userContext(), testRoomID, testResourceID)

		assert.NoError(t, err)

		<-done
	})
}

func TestRemoveResource(t *testing.T) {
	t.Run("detaching an unattached resource", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.roomResource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.RemoveResource(userContext(), testRoomID, testResourceID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "resource is not attached to this room")
	})

	t.Run("detachment succeeds", func(t *testing.T) {
		f := newFixture(t)
		done := expectInvalidation(f)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.roomResource.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.roomResource.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.RemoveResource(userContext(), testRoomID, testResourceID)

		assert.NoError(t, err)

		<-done
	})
}

func TestGetResources(t *testing.T) {
	t.Run("room with no attachments", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.roomResource.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetResources(context.Background(), testRoomID)

		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("attached resources are resolved", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openRoom(), nil)
		f.roomResource.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.RoomResource{
			{ID: "assoc-1", RoomID: testRoomID, ResourceID: testResourceID},
		}, nil)
		f.resource.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]resourceModel.Resource{
			{ID: testResourceID, Name: "4K projector", Type: resourceModel.TypeProjector},
		}, nil)

		saved := make(chan struct{}, 1)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string, any, int) error {
				saved <- struct{}{}

				return nil
			}).AnyTimes()

		res, err := f.svc.GetResources(context.Background(), testRoomID)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "4K projector", res[0].Name)

		<-saved
	})
}
