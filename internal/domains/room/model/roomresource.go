package model

import "huddle/shared/model"

const (
	RoomResourceTableName  = "room_resources"
	RoomResourceEntityName = "room_resource"

	RoomResourceFieldID         = "id"
	RoomResourceFieldRoomID     = "room_id"
	RoomResourceFieldResourceID = "resource_id"
)

// RoomResource links a resource to the room it is installed in.
type RoomResource struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	ResourceID string `db:"resource_id"`
	model.Metadata
}
