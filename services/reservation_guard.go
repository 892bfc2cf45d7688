package services

import (
	"time"

	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"gorm.io/gorm"
)

// ReservationGuard runs advisory conflict checks ahead of table writes. The
// unique index on (table_no, restaurant_id) stays the authoritative guard:
// two racing creates can both pass the pre-check and the store rejects the
// loser, so callers must also translate gorm.ErrDuplicatedKey into a
// duplicate-table response.
type ReservationGuard struct {
	DB *gorm.DB
}

func NewReservationGuard(db *gorm.DB) *ReservationGuard {
	return &ReservationGuard{DB: db}
}

// CanCreate reports whether (tableNo, restaurant) is still unused.
func (rg *ReservationGuard) CanCreate(tableNo int, restaurantID uint) error {
	var count int64
	if err := rg.DB.Model(&models.Table{}).
		Where("table_no = ? AND restaurant_id = ?", tableNo, restaurantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &DuplicateTableError{TableNo: tableNo}
	}
	return nil
}

// CanUpdate is CanCreate with the row being edited excluded.
func (rg *ReservationGuard) CanUpdate(tableID uint, tableNo int, restaurantID uint) error {
	var count int64
	if err := rg.DB.Model(&models.Table{}).
		Where("table_no = ? AND restaurant_id = ? AND id <> ?", tableNo, restaurantID, tableID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &DuplicateTableError{TableNo: tableNo}
	}
	return nil
}

// CanAssign rejects binding an order to any table that already has a
// non-cancelled order in the same delivery slot. Uses the same matching rule
// as the resolver, so a rejected assignment is exactly one that would have
// shown the table as reserved.
func (rg *ReservationGuard) CanAssign(tableIDs []uint, restaurantID uint, deliveryTime time.Time) error {
	if len(tableIDs) == 0 {
		return nil
	}

	w := At(deliveryTime)

	var conflicting []uint
	err := rg.DB.Table("order_tables").
		Select("order_tables.table_id").
		Joins("JOIN orders ON orders.id = order_tables.order_id").
		Where("order_tables.table_id IN ?", tableIDs).
		Where("orders.restaurant_id = ? AND orders.delivery_time >= ? AND orders.delivery_time <= ? AND orders.status <> ?",
			restaurantID, w.Start, w.End, models.OrderStatusCancelled).
		Scan(&conflicting).Error
	if err != nil {
		return err
	}
	if len(conflicting) > 0 {
		return &TableAlreadyReservedError{TableID: conflicting[0]}
	}
	return nil
}
