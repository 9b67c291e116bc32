package dto

import (
	"huddle/internal/domains/resource/model"
	"huddle/shared"
	gDto "huddle/shared/dto"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=projector tv whiteboard chart microphone speaker laser_pointer tablet notebook"`
}

func (c *CreateResourceRequest) ToModel(user string) model.Resource {
	return model.Resource{
		ID:   uuid.NewString(),
		Name: c.Name,
		Type: c.Type,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateResourceRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=100"`
	Type string `db:"type" json:"type" validate:"omitempty,oneof=projector tv whiteboard chart microphone speaker laser_pointer tablet notebook"`
}

type ResourceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	gDto.Metadata
}

func (r *ResourceResponse) FromModel(model model.Resource) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Metadata.FromModel(model.Metadata)
}

type GetResourcesResponse struct {
	Resources []ResourceResponse `json:"resources"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetResourcesResponse) FromModels(models []model.Resource, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Resources = make([]ResourceResponse, len(models))
	for i, mod := range models {
		r.Resources[i].FromModel(mod)
	}
}
