package models

import "time"

// Container is a physical box or bin. QRCodePath is assigned once at creation
// and only cleared by deleting the container.
type Container struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       *string   `gorm:"column:name"`
	RoomID     *int64    `gorm:"column:room_id"`
	Room       *Room     `gorm:"foreignKey:RoomID"`
	QRCodePath *string   `gorm:"column:qr_code_path"`
	Items      []Item    `gorm:"foreignKey:ContainerID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Container) TableName() string { return "containers" }
