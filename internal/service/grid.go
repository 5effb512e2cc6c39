package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/observability"
	"github.com/labtrack/lims/internal/repo"
)

// Grid projects a box's slots onto its labelled row/column grid.
type Grid struct {
	BoxRepo *repo.Box
}

func NewGrid(boxRepo *repo.Box) *Grid {
	return &Grid{
		BoxRepo: boxRepo,
	}
}

// SlotContent renders what a grid cell shows for an aliquot: the patient pid,
// the aliquot's display name and its id.
func SlotContent(a *model.Aliquot) string {
	pid := ""
	if a.Specimen != nil && a.Specimen.Patient != nil {
		pid = a.Specimen.Patient.PID
	}
	return fmt.Sprintf("%s %s #%d", pid, a.String(), a.AliquotID)
}

// BoxGrid returns one row per occupied row position and, within it, one column
// per occupied slot, both in ascending position order.
func (s *Grid) BoxGrid(ctx context.Context, boxID int64) (*types.BoxGrid, error) {
	box, err := s.BoxRepo.GetBoxByID(ctx, boxID)
	if err != nil {
		return nil, err
	}
	slots, err := s.BoxRepo.GetSlotsByBox(ctx, boxID)
	if err != nil {
		return nil, err
	}

	grid := &types.BoxGrid{
		BoxID:       box.BoxID,
		Name:        box.Name,
		Description: box.Description,
		Rows:        []*types.GridRow{},
	}
	boxType := box.BoxType
	if boxType != nil {
		grid.Length = boxType.Length
		grid.Height = boxType.Height
	}

	byRow := lo.GroupBy(slots, func(slot *model.BoxSlot) int {
		return slot.RowPosition
	})
	rows := lo.Keys(byRow)
	sort.Ints(rows)

	for _, r := range rows {
		rowSlots := byRow[r]
		sort.SliceStable(rowSlots, func(i, j int) bool {
			return rowSlots[i].ColumnPosition < rowSlots[j].ColumnPosition
		})

		row := &types.GridRow{
			Index:   r,
			Label:   rowLabel(boxType, r),
			Columns: make([]*types.GridCell, 0, len(rowSlots)),
		}
		for _, slot := range rowSlots {
			cell := &types.GridCell{
				Index:     slot.ColumnPosition,
				Label:     columnLabel(boxType, slot.ColumnPosition),
				AliquotID: slot.AliquotID,
			}
			if slot.Aliquot != nil {
				cell.Content = SlotContent(slot.Aliquot)
			}
			row.Columns = append(row.Columns, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}

	observability.GridCells.Observe(float64(len(slots)))
	return grid, nil
}

func rowLabel(t *model.BoxType, row int) string {
	if t == nil {
		return model.LabelNumeric.Label(row, row, false)
	}
	return t.RowLabel(row)
}

func columnLabel(t *model.BoxType, column int) string {
	if t == nil {
		return model.LabelNumeric.Label(column, column, false)
	}
	return t.ColumnLabel(column)
}
