package dto

import (
	"time"

	"huddle/internal/domains/meeting/model"
	"huddle/shared"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	gModel "huddle/shared/model"
	"huddle/shared/timezone"

	"github.com/google/uuid"
)

type CreateMeetingRequest struct {
	RoomID      string `json:"room_id"     validate:"required,uuid"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	StartDate   string `json:"start_date"  validate:"required"`
	EndDate     string `json:"end_date"    validate:"required"`
}

// ParseRange converts the RFC 3339 request dates into application-timezone
// instants.
func (c *CreateMeetingRequest) ParseRange() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateFormat, c.EndDate)

	return start, end, err
}

func (c *CreateMeetingRequest) ToModel(host string, start, end time.Time) model.Meeting {
	return model.Meeting{
		ID:          uuid.NewString(),
		HostID:      host,
		RoomID:      c.RoomID,
		Title:       c.Title,
		Description: c.Description,
		State:       model.StateCreated,
		StartDate:   start,
		EndDate:     end,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  host,
			ModifiedBy: host,
		},
	}
}

type UpdateTitleRequest struct {
	Title string `db:"title" json:"title" validate:"required,max=200"`
}

type UpdateDescriptionRequest struct {
	Description string `db:"description" json:"description" validate:"required,max=1000"`
}

type UpdateDurationRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

func (u *UpdateDurationRequest) ParseRange() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, u.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateFormat, u.EndDate)

	return start, end, err
}

type MeetingResponse struct {
	ID          string `json:"id"`
	HostID      string `json:"host_id"`
	RoomID      string `json:"room_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	gDto.Metadata
}

func (m *MeetingResponse) FromModel(model model.Meeting) {
	m.ID = model.ID
	m.HostID = model.HostID
	m.RoomID = model.RoomID
	m.Title = model.Title
	m.Description = model.Description
	m.State = string(model.State)
	m.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	m.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	m.Metadata.FromModel(model.Metadata)
}

type GetMeetingsResponse struct {
	Meetings  []MeetingResponse `json:"meetings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (m *GetMeetingsResponse) FromModels(models []model.Meeting, totalData, limit int) {
	m.TotalData = totalData
	m.TotalPage = shared.CalculateTotalPage(totalData, limit)

	m.Meetings = make([]MeetingResponse, len(models))
	for i, mod := range models {
		m.Meetings[i].FromModel(mod)
	}
}
