package model

import "huddle/shared/model"

const (
	TableName  = "resources"
	EntityName = "resource"

	FieldID   = "id"
	FieldName = "name"
	FieldType = "type"
)

// Types a resource can be; kept in sync with the oneof validation on the
// request DTOs.
const (
	TypeProjector    = "projector"
	TypeTV           = "tv"
	TypeWhiteboard   = "whiteboard"
	TypeChart        = "chart"
	TypeMicrophone   = "microphone"
	TypeSpeaker      = "speaker"
	TypeLaserPointer = "laser_pointer"
	TypeTablet       = "tablet"
	TypeNotebook     = "notebook"
)

type Resource struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Type string `db:"type"`
	model.Metadata
}
