package services

import (
	"errors"
	"fmt"
)

// ErrNoTablesFound signals an empty table set for a restaurant; callers render
// it as a 404 rather than a system failure.
var ErrNoTablesFound = errors.New("no tables found")

// DuplicateTableError reports a (table_no, restaurant) uniqueness violation.
type DuplicateTableError struct {
	TableNo int
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table number %d already exists for this restaurant", e.TableNo)
}

// TableAlreadyReservedError reports an order-assignment conflict: the target
// table already has a non-cancelled order in the same delivery slot.
type TableAlreadyReservedError struct {
	TableID uint
}

func (e *TableAlreadyReservedError) Error() string {
	return fmt.Sprintf("table %d is already reserved for this delivery time", e.TableID)
}
