package models

import "time"

// Floor is the top of the location hierarchy. Deleting a floor does not
// cascade to its rooms; they are detached instead.
type Floor struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        *string   `gorm:"column:name"`
	FloorNumber *int      `gorm:"column:floor_number"`
	Rooms       []Room    `gorm:"foreignKey:FloorID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Floor) TableName() string { return "floors" }
