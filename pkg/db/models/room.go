package models

import "time"

// Room holds containers and loose items. FloorID is optional so rooms can
// exist before the building layout is modeled.
type Room struct {
	ID         int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Name       *string     `gorm:"column:name"`
	FloorID    *int64      `gorm:"column:floor_id"`
	Floor      *Floor      `gorm:"foreignKey:FloorID"`
	Containers []Container `gorm:"foreignKey:RoomID"`
	Items      []Item      `gorm:"foreignKey:RoomID"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (Room) TableName() string { return "rooms" }
