package models

import "time"

// Position is presentational only (floor-plan rendering); it carries no
// business invariant.
type Position struct {
	X     int    `gorm:"not null;default:0" json:"x"`
	Y     int    `gorm:"not null;default:0" json:"y"`
	Align string `gorm:"type:varchar(20);not null;default:'horizontal'" json:"align"`
}

type Table struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TableNo       int        `gorm:"not null;uniqueIndex:idx_tables_restaurant_table_no" json:"table_no"`
	Capacity      int        `gorm:"not null" json:"capacity"`
	CostPerson    int        `gorm:"not null" json:"cost_person"`
	RestaurantID  uint       `gorm:"not null;uniqueIndex:idx_tables_restaurant_table_no" json:"restaurant_id"`
	Restaurant    Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	BookingStatus bool       `gorm:"not null;default:false" json:"booking_status"`
	FloorType     string     `gorm:"type:varchar(50)" json:"floor_type"`
	Position      Position   `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
