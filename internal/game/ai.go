package game

import "math"

const DefaultSearchDepth = 4

const (
	scoreFour       = 100
	scoreThree      = 5
	scoreTwo        = 2
	penaltyOppThree = 4
	centerWeight    = 3
)

// Engine picks columns for a computer-controlled side. The zero value
// searches DefaultSearchDepth plies.
type Engine struct {
	Depth int
}

// ChooseMove uses DefaultSearchDepth.
func ChooseMove(b Board, side Side) int {
	return Engine{}.ChooseMove(b, side)
}

// ChooseMove returns the column to play for side, or -1 when the board
// has no legal column. It works on copies and never alters b.
func (e Engine) ChooseMove(b Board, side Side) int {
	legal := b.LegalColumns()
	if len(legal) == 0 {
		return -1
	}
	if col, ok := completingColumn(b, legal, side); ok {
		return col
	}
	if col, ok := completingColumn(b, legal, side.Opponent()); ok {
		return col
	}
	depth := e.Depth
	if depth <= 0 {
		depth = DefaultSearchDepth
	}
	col, _ := minimax(b, side, depth, math.MinInt, math.MaxInt, true)
	if col < 0 {
		return legal[0]
	}
	return col
}

// completingColumn finds the first column, center-outward, where side
// would immediately connect four.
func completingColumn(b Board, legal []int, side Side) (int, bool) {
	for _, col := range legal {
		next := b
		row, err := next.Drop(col, side)
		if err != nil {
			continue
		}
		if next.WinsAt(row, col, side) {
			return col, true
		}
	}
	return -1, false
}

func minimax(b Board, side Side, depth, alpha, beta int, maximizing bool) (int, int) {
	legal := b.LegalColumns()
	if depth == 0 || len(legal) == 0 || b.HasFour(side) || b.HasFour(side.Opponent()) {
		return -1, Evaluate(b, side)
	}
	best := legal[0]
	if maximizing {
		value := math.MinInt
		for _, col := range legal {
			child := b
			if _, err := child.Drop(col, side); err != nil {
				continue
			}
			_, score := minimax(child, side, depth-1, alpha, beta, false)
			if score > value {
				value = score
				best = col
			}
			alpha = max(alpha, value)
			if alpha >= beta {
				break
			}
		}
		return best, value
	}
	value := math.MaxInt
	for _, col := range legal {
		child := b
		if _, err := child.Drop(col, side.Opponent()); err != nil {
			continue
		}
		_, score := minimax(child, side, depth-1, alpha, beta, true)
		if score < value {
			value = score
			best = col
		}
		beta = min(beta, value)
		if alpha >= beta {
			break
		}
	}
	return best, value
}

// Evaluate scores b from side's point of view.
func Evaluate(b Board, side Side) int {
	own, opp := side.Cell(), side.Opponent().Cell()
	score := 0
	for r := 0; r < Rows; r++ {
		if b[r][Columns/2] == own {
			score += centerWeight
		}
	}
	var window [Connect]Cell
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			for _, d := range directions {
				endR, endC := r+d[0]*(Connect-1), c+d[1]*(Connect-1)
				if !inBounds(endR, endC) {
					continue
				}
				for i := 0; i < Connect; i++ {
					window[i] = b[r+d[0]*i][c+d[1]*i]
				}
				score += scoreWindow(window, own, opp)
			}
		}
	}
	return score
}

func scoreWindow(w [Connect]Cell, own, opp Cell) int {
	var mine, theirs, empty int
	for _, cell := range w {
		switch cell {
		case own:
			mine++
		case opp:
			theirs++
		default:
			empty++
		}
	}
	switch {
	case mine == 4:
		return scoreFour
	case mine == 3 && empty == 1:
		return scoreThree
	case mine == 2 && empty == 2:
		return scoreTwo
	case theirs == 3 && empty == 1:
		return -penaltyOppThree
	}
	return 0
}
