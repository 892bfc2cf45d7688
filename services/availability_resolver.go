package services

import (
	"os"
	"time"

	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"gorm.io/gorm"
)

// Occupancy statuses, strongest first.
const (
	StatusOccupied  = "occupied"
	StatusReserved  = "reserved"
	StatusAvailable = "available"
)

// FloorTypeAll disables the floor filter.
const FloorTypeAll = "all"

// TableAvailabilityView pairs a table with its derived occupancy status.
// TableStatus stays empty when no timestamp was supplied.
type TableAvailabilityView struct {
	models.Table
	TableStatus string `json:"table_status,omitempty"`
	Customer    string `json:"customer,omitempty"`
}

// AvailableTableView is the customer-facing projection. booking_status is not
// consulted on this path, so tables only come back available or reserved.
type AvailableTableView struct {
	models.Table
	AvailableStatus string `json:"available_status"`
	Customer        string `json:"customer,omitempty"`
}

type Counts struct {
	Available int64 `json:"available_count"`
	Occupied  int64 `json:"occupied_count"`
}

// AvailabilityResolver derives the occupancy view of a restaurant's tables
// from two independent signals: the manual booking flag on the table and
// time-slotted orders bound to it. Every resolution reads fresh from the
// store; there is no occupancy cache to invalidate.
type AvailabilityResolver struct {
	DB *gorm.DB

	// IncludeBookedInCounts folds manually booked tables into the occupied
	// counter. Off by default: the legacy counters only reflect order
	// presence even though the per-table status honours booking_status.
	// Inherited inconsistency, see Resolve.
	IncludeBookedInCounts bool
}

func NewAvailabilityResolver(db *gorm.DB) *AvailabilityResolver {
	return &AvailabilityResolver{
		DB:                    db,
		IncludeBookedInCounts: os.Getenv("TABLE_STATS_INCLUDE_BOOKED") == "true",
	}
}

// Resolve computes the occupancy view for every table of a restaurant.
// floorType "all" or "" disables the filter. A nil timestamp skips the status
// computation entirely and returns the bare table list. Status precedence per
// table: booking_status forces occupied, a matching order makes it reserved,
// otherwise available.
//
// The aggregate counters deliberately ignore booking_status and only reflect
// order presence, while the per-table status does honour it. Downstream
// consumers depend on that two-tier signal; IncludeBookedInCounts unifies the
// counters for deployments that want consistency instead.
func (ar *AvailabilityResolver) Resolve(restaurantID uint, floorType string, at *time.Time, ascending bool) ([]TableAvailabilityView, Counts, error) {
	tables, err := ar.fetchTables(restaurantID, floorType, ascending)
	if err != nil {
		return nil, Counts{}, err
	}
	if len(tables) == 0 {
		return nil, Counts{}, ErrNoTablesFound
	}

	views := make([]TableAvailabilityView, 0, len(tables))

	if at == nil {
		for _, t := range tables {
			views = append(views, TableAvailabilityView{Table: t})
		}
		return views, Counts{Available: int64(len(tables))}, nil
	}

	reserved, err := ar.reservedTables(restaurantID, At(*at))
	if err != nil {
		return nil, Counts{}, err
	}

	var occupied int64
	for _, t := range tables {
		view := TableAvailabilityView{Table: t}
		order, hasOrder := reserved[t.ID]

		switch {
		case t.BookingStatus:
			view.TableStatus = StatusOccupied
		case hasOrder:
			view.TableStatus = StatusReserved
		default:
			view.TableStatus = StatusAvailable
		}

		if hasOrder {
			view.Customer = order.Customer.Name
			occupied++
		} else if ar.IncludeBookedInCounts && t.BookingStatus {
			occupied++
		}

		views = append(views, view)
	}

	total := int64(len(tables))
	return views, Counts{Available: total - occupied, Occupied: occupied}, nil
}

// AvailableTables is the customer-facing lookup: every table compared against
// the orders of the requested slot, marked available or reserved, with the
// reserving customer's name attached.
func (ar *AvailabilityResolver) AvailableTables(restaurantID uint, at time.Time) ([]AvailableTableView, error) {
	tables, err := ar.fetchTables(restaurantID, FloorTypeAll, false)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoTablesFound
	}

	reserved, err := ar.reservedTables(restaurantID, At(at))
	if err != nil {
		return nil, err
	}

	views := make([]AvailableTableView, 0, len(tables))
	for _, t := range tables {
		view := AvailableTableView{Table: t, AvailableStatus: StatusAvailable}
		if order, ok := reserved[t.ID]; ok {
			view.AvailableStatus = StatusReserved
			view.Customer = order.Customer.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// fetchTables loads the restaurant's tables, newest first by default.
func (ar *AvailabilityResolver) fetchTables(restaurantID uint, floorType string, ascending bool) ([]models.Table, error) {
	q := ar.DB.Where("restaurant_id = ?", restaurantID)
	if floorType != "" && floorType != FloorTypeAll {
		q = q.Where("floor_type = ?", floorType)
	}

	order := "created_at DESC"
	if ascending {
		order = "created_at ASC"
	}

	var tables []models.Table
	if err := q.Order(order).Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// reservedTables maps table id -> the non-cancelled order holding it inside
// the window. When several orders land on one table in the same slot (the
// store does not prevent that, see ReservationGuard), the first match wins.
func (ar *AvailabilityResolver) reservedTables(restaurantID uint, w Window) (map[uint]models.Order, error) {
	var orders []models.Order
	err := ar.DB.Preload("Tables").Preload("Customer").
		Where("restaurant_id = ? AND delivery_time >= ? AND delivery_time <= ? AND status <> ?",
			restaurantID, w.Start, w.End, models.OrderStatusCancelled).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	reserved := make(map[uint]models.Order)
	for _, o := range orders {
		for _, t := range o.Tables {
			if _, ok := reserved[t.ID]; !ok {
				reserved[t.ID] = o
			}
		}
	}
	return reserved, nil
}
