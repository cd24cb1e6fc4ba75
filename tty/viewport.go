package tty

import (
	"iter"
	"math"

	"github.com/plus3/avoidance/game"
)

// Viewport maps the play area onto a grid of terminal cells.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

func (v Viewport) cellSize() (float64, float64) {
	return v.Width / float64(max(v.Cols, 1)), v.Height / float64(max(v.Rows, 1))
}

// ToPoint returns the play-area point at the centre of a cell.
func (v Viewport) ToPoint(col, row int) game.Point {
	cw, ch := v.cellSize()
	return game.Point{X: (float64(col) + 0.5) * cw, Y: (float64(row) + 0.5) * ch}
}

// ToCell returns the cell containing p, which may lie outside the grid.
func (v Viewport) ToCell(p game.Point) (int, int) {
	cw, ch := v.cellSize()
	return int(math.Floor(p.X / cw)), int(math.Floor(p.Y / ch))
}

func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Cols && row < v.Rows
}

// Cells yields the on-grid cells whose centres lie inside c. A circle
// smaller than a cell still covers the cell holding its centre.
func (v Viewport) Cells(c game.Circle) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		r := c.Size / 2
		minCol, minRow := v.ToCell(game.Point{X: c.X - r, Y: c.Y - r})
		maxCol, maxRow := v.ToCell(game.Point{X: c.X + r, Y: c.Y + r})

		covered := false
		for row := max(minRow, 0); row <= min(maxRow, v.Rows-1); row++ {
			for col := max(minCol, 0); col <= min(maxCol, v.Cols-1); col++ {
				p := v.ToPoint(col, row)
				if math.Hypot(p.X-c.X, p.Y-c.Y) > r {
					continue
				}
				covered = true
				if !yield(col, row) {
					return
				}
			}
		}

		if !covered {
			col, row := v.ToCell(game.Point{X: c.X, Y: c.Y})
			if v.Contains(col, row) {
				yield(col, row)
			}
		}
	}
}
