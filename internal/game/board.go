package game

import "errors"

const (
	Rows    = 6
	Columns = 7
	// Connect is the run length that wins.
	Connect = 4
)

var (
	ErrColumnOutOfRange = errors.New("column_out_of_range")
	ErrColumnFull       = errors.New("column_full")
)

type Cell uint8

const (
	Empty Cell = iota
	CellA
	CellB
)

// Side identifies which of the two players owns a disc.
type Side uint8

const (
	SideA Side = iota + 1
	SideB
)

func (s Side) Cell() Cell { return Cell(s) }

func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "?"
	}
}

// Board is indexed [row][column] with row 0 at the top, so discs settle
// at the highest free row index. It is a value type: assigning a Board
// copies every cell.
type Board [Rows][Columns]Cell

// centerOrder lists columns from the middle outward.
var centerOrder = [Columns]int{3, 2, 4, 1, 5, 0, 6}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func inBounds(r, c int) bool {
	return r >= 0 && r < Rows && c >= 0 && c < Columns
}

// Legal reports whether a disc can be dropped into col.
func (b Board) Legal(col int) bool {
	if col < 0 || col >= Columns {
		return false
	}
	return b[0][col] == Empty
}

// Drop places side's disc at the lowest empty row of col and returns that row.
func (b *Board) Drop(col int, side Side) (int, error) {
	if col < 0 || col >= Columns {
		return -1, ErrColumnOutOfRange
	}
	for r := Rows - 1; r >= 0; r-- {
		if b[r][col] == Empty {
			b[r][col] = side.Cell()
			return r, nil
		}
	}
	return -1, ErrColumnFull
}

// WinsAt reports whether the disc at (row, col) completes a run of at
// least Connect cells for side in any direction.
func (b Board) WinsAt(row, col int, side Side) bool {
	if !inBounds(row, col) {
		return false
	}
	mark := side.Cell()
	if b[row][col] != mark {
		return false
	}
	for _, d := range directions {
		count := 1
		for r, c := row+d[0], col+d[1]; inBounds(r, c) && b[r][c] == mark; r, c = r+d[0], c+d[1] {
			count++
		}
		for r, c := row-d[0], col-d[1]; inBounds(r, c) && b[r][c] == mark; r, c = r-d[0], c-d[1] {
			count++
		}
		if count >= Connect {
			return true
		}
	}
	return false
}

// HasFour scans the whole board for any run of Connect cells owned by side.
func (b Board) HasFour(side Side) bool {
	mark := side.Cell()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != mark {
				continue
			}
			for _, d := range directions {
				n := 1
				for n < Connect {
					rr, cc := r+d[0]*n, c+d[1]*n
					if !inBounds(rr, cc) || b[rr][cc] != mark {
						break
					}
					n++
				}
				if n == Connect {
					return true
				}
			}
		}
	}
	return false
}

func (b Board) Full() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// LegalColumns returns the playable columns ordered center-outward.
func (b Board) LegalColumns() []int {
	out := make([]int, 0, Columns)
	for _, c := range centerOrder {
		if b[0][c] == Empty {
			out = append(out, c)
		}
	}
	return out
}

// Discs counts occupied cells.
func (b Board) Discs() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] != Empty {
				n++
			}
		}
	}
	return n
}
