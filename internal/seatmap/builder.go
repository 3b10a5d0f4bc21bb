// Package seatmap turns a vehicle layout template and a flat seat list into a
// renderable grid. The builder is deliberately tolerant: layout positions that
// name a seat the backend never sent render as empty slots instead of failing
// the whole map.
package seatmap

import (
	"tiketi/internal/domain/models"
)

type CellState string

const (
	// StateEmpty marks an aisle, a gap, or a layout label with no matching
	// seat record.
	StateEmpty     CellState = "empty"
	StateAvailable CellState = "available"
	StateSelected  CellState = "selected"
	StateBooked    CellState = "booked"
)

// Cell is one renderable grid position.
type Cell struct {
	State CellState    `json:"state"`
	Seat  *models.Seat `json:"seat,omitempty"`
}

// Grid is the full renderable seat map, row-major like the layout.
type Grid struct {
	Rows [][]Cell `json:"rows"`
}

// Index maps seat numbers to their records. Duplicate numbers keep the first
// occurrence, matching lookup-by-first-match on the flat list.
func Index(seats []models.Seat) map[string]models.Seat {
	idx := make(map[string]models.Seat, len(seats))
	for _, s := range seats {
		if _, ok := idx[s.Number]; ok {
			continue
		}
		idx[s.Number] = s
	}
	return idx
}

// Lookup resolves a layout label against the seat index. The boolean is the
// only not-found signal; the zero Seat is never a valid result on false.
func Lookup(idx map[string]models.Seat, label string) (models.Seat, bool) {
	s, ok := idx[label]
	return s, ok
}

// Build produces the grid for a layout and seat list. selected holds the seat
// numbers currently in the user's selection; nil means nothing selected.
func Build(cfg models.VehicleConfiguration, seats []models.Seat, selected map[string]bool) Grid {
	idx := Index(seats)
	rows := make([][]Cell, 0, len(cfg.Layout))
	for _, layoutRow := range cfg.Layout {
		row := make([]Cell, 0, len(layoutRow))
		for _, cell := range layoutRow {
			row = append(row, buildCell(idx, cell, selected))
		}
		rows = append(rows, row)
	}
	return Grid{Rows: rows}
}

func buildCell(idx map[string]models.Seat, cell *models.LayoutCell, selected map[string]bool) Cell {
	if cell == nil {
		return Cell{State: StateEmpty}
	}
	seat, ok := Lookup(idx, cell.Label)
	if !ok {
		// Layout references a seat the backend never sent; render a gap
		// rather than a broken control.
		return Cell{State: StateEmpty}
	}
	state := StateBooked
	if seat.Selectable() {
		state = StateAvailable
		if selected[seat.Number] {
			state = StateSelected
		}
	}
	s := seat
	return Cell{State: state, Seat: &s}
}
