package repository

//go:generate go run go.uber.org/mock/mockgen -source=./roomresource.go -destination=../mocks/roomresource_mock.go -package=mocks

import (
	"context"

	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/room/model"
	gDto "huddle/shared/dto"
	gRepo "huddle/shared/repository"
)

type RoomResource interface {
	Insert(ctx context.Context, model model.RoomResource) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomResource, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type roomResourceImpl struct {
	gRepo.Repository[model.RoomResource]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomResource(db *postgres.Connection, otel otel.Otel) RoomResource {
	return &roomResourceImpl{
		Repository: gRepo.NewRepository[model.RoomResource](model.RoomResourceEntityName, model.RoomResourceTableName, model.RoomResourceFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
