package models

import "time"

const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// Order is owned by the order-management side; this service reads the
// restaurant, table bindings, delivery time and customer. An order may span
// multiple tables. Deleting a table does not cascade into historical orders.
type Order struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	CustomerID   uint       `gorm:"not null" json:"customer_id"`
	Customer     Customer   `gorm:"foreignKey:CustomerID" json:"customer"`
	Tables       []Table    `gorm:"many2many:order_tables" json:"tables"`
	DeliveryTime time.Time  `gorm:"not null;index" json:"delivery_time"`
	Status       string     `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
