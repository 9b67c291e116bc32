package dto

import (
	"huddle/internal/domains/room/model"
	"huddle/shared"
	gDto "huddle/shared/dto"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Capacity int    `json:"capacity"  validate:"required,min=2"`
	OpensAt  string `json:"opens_at"  validate:"required,timeofday"`
	ClosesAt string `json:"closes_at" validate:"required,timeofday"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Capacity:  c.Capacity,
		Available: true,
		OpensAt:   c.OpensAt,
		ClosesAt:  c.ClosesAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Capacity *int   `db:"capacity"  json:"capacity"  validate:"omitempty,min=2"`
	OpensAt  string `db:"opens_at"  json:"opens_at"  validate:"omitempty,timeofday"`
	ClosesAt string `db:"closes_at" json:"closes_at" validate:"omitempty,timeofday"`
}

type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
	OpensAt   string `json:"opens_at"`
	ClosesAt  string `json:"closes_at"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Available = model.Available
	r.OpensAt = model.OpensAt
	r.ClosesAt = model.ClosesAt
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
