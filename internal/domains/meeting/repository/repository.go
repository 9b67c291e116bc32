package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/meeting/model"
	gDto "huddle/shared/dto"
	gRepo "huddle/shared/repository"
)

// Meeting persists meeting rows. There is intentionally no Delete: meetings
// are never hard-deleted, cancellation is a terminal state.
type Meeting interface {
	Insert(ctx context.Context, model model.Meeting) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Meeting, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Meeting, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Meeting]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Meeting {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Meeting](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
