package services

import (
	"sort"

	"github.com/kos3l/manageable-kanban-api/models"
)

// OrderIndex owns the integer order positions of columns within a project.
// The order values of a project's columns form a dense permutation of
// 0..n-1 at rest, and the columns slice is kept sorted by order.
//
// Callers must guarantee that the referenced orders exist before calling;
// OrderIndex does not re-validate existence.
type OrderIndex struct{}

// NextOrder returns the order value one past the current maximum.
func (OrderIndex) NextOrder(columns []models.Column) int {
	next := 0
	for i := range columns {
		if columns[i].Order >= next {
			next = columns[i].Order + 1
		}
	}
	return next
}

// InsertAt shifts every column with an order greater than or equal to the
// target up by one and places the new column at the target order.
func (o OrderIndex) InsertAt(columns []models.Column, column models.Column, order int) []models.Column {
	for i := range columns {
		if columns[i].Order >= order {
			columns[i].Order++
		}
	}
	column.Order = order
	columns = append(columns, column)
	sortByOrder(columns)
	return columns
}

// RemoveAndCompact decrements every column with an order greater than the
// removed one, preserving density. The removed column must already be gone
// from the slice.
func (OrderIndex) RemoveAndCompact(columns []models.Column, removedOrder int) {
	for i := range columns {
		if columns[i].Order > removedOrder {
			columns[i].Order--
		}
	}
	sortByOrder(columns)
}

// MoveTo shifts the columns between the old and the new order by one slot in
// the opposite direction and moves the column at oldOrder to newOrder. The
// end state is the same as removing the column and reinserting it.
func (OrderIndex) MoveTo(columns []models.Column, oldOrder, newOrder int) {
	if oldOrder == newOrder {
		return
	}
	for i := range columns {
		switch c := &columns[i]; {
		case c.Order == oldOrder:
			c.Order = newOrder
		case newOrder > oldOrder && c.Order > oldOrder && c.Order <= newOrder:
			c.Order--
		case newOrder < oldOrder && c.Order >= newOrder && c.Order < oldOrder:
			c.Order++
		}
	}
	sortByOrder(columns)
}

func sortByOrder(columns []models.Column) {
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Order < columns[j].Order
	})
}
