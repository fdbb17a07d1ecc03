package models

import "time"

// Item always belongs to a room; ContainerID is nil for loose items.
type Item struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;not null"`
	Quantity    int        `gorm:"column:quantity;not null;default:1"`
	RoomID      int64      `gorm:"column:room_id;not null"`
	Room        *Room      `gorm:"foreignKey:RoomID"`
	ContainerID *int64     `gorm:"column:container_id"`
	Container   *Container `gorm:"foreignKey:ContainerID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Item) TableName() string { return "items" }
