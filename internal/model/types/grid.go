package types

// BoxGrid is the UI projection of a box's slots. Rows and their columns are
// ordered by numeric position.
type BoxGrid struct {
	BoxID       int64      `json:"boxId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Length      int        `json:"length"`
	Height      int        `json:"height"`
	Rows        []*GridRow `json:"rows"`
}

type GridRow struct {
	Index   int         `json:"index"`
	Label   string      `json:"label"`
	Columns []*GridCell `json:"columns"`
}

type GridCell struct {
	Index     int    `json:"index"`
	Label     string `json:"label"`
	AliquotID int64  `json:"aliquotId"`
	Content   string `json:"content"`
}

// Mapping flattens the grid into the row label -> column label -> content form
// along with the box's name and description.
func (g *BoxGrid) Mapping() map[string]any {
	m := map[string]any{
		"name":        g.Name,
		"description": g.Description,
	}
	for _, row := range g.Rows {
		cols := make(map[string]string, len(row.Columns))
		for _, cell := range row.Columns {
			cols[cell.Label] = cell.Content
		}
		m[row.Label] = cols
	}
	return m
}
