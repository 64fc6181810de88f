package game

import (
	"math"
	"testing"
)

func TestChooseMoveTakesImmediateWin(t *testing.T) {
	var b Board
	b[5][0], b[5][1], b[5][2] = CellB, CellB, CellB
	b[5][4], b[5][5], b[5][6] = CellA, CellA, CellA
	// Both sides threaten column 3; the engine's own win comes first.
	if col := ChooseMove(b, SideB); col != 3 {
		t.Fatalf("expected winning column 3, got %d", col)
	}
}

func TestChooseMoveBlocksOpponent(t *testing.T) {
	var b Board
	b[5][6], b[4][6], b[3][6] = CellA, CellA, CellA
	b[5][3] = CellB
	if col := ChooseMove(b, SideB); col != 6 {
		t.Fatalf("expected block at column 6, got %d", col)
	}
}

func TestChooseMoveWinBeatsBlock(t *testing.T) {
	var b Board
	b[5][0], b[4][0], b[3][0] = CellA, CellA, CellA
	b[5][6], b[4][6], b[3][6] = CellB, CellB, CellB
	if col := ChooseMove(b, SideB); col != 6 {
		t.Fatalf("expected own win at column 6, got %d", col)
	}
}

func TestChooseMoveDoesNotMutateBoard(t *testing.T) {
	var b Board
	b[5][3] = CellA
	b[5][2] = CellB
	b[4][3] = CellA
	before := b
	col := Engine{Depth: 4}.ChooseMove(b, SideB)
	if !b.Legal(col) {
		t.Fatalf("expected legal column, got %d", col)
	}
	if b != before {
		t.Fatalf("board was modified by ChooseMove")
	}
}

func TestChooseMoveDeterministic(t *testing.T) {
	var b Board
	b[5][3] = CellA
	first := ChooseMove(b, SideB)
	for i := 0; i < 5; i++ {
		if got := ChooseMove(b, SideB); got != first {
			t.Fatalf("expected %d on every call, got %d", first, got)
		}
	}
}

func TestChooseMoveFullBoard(t *testing.T) {
	b := boardFrom(drawRows)
	if col := ChooseMove(b, SideA); col != -1 {
		t.Fatalf("expected -1 on full board, got %d", col)
	}
}

func TestChooseMoveSingleColumnLeft(t *testing.T) {
	b := boardFrom(drawRows)
	b[0][5] = Empty
	if col := ChooseMove(b, SideA); col != 5 {
		t.Fatalf("expected only legal column 5, got %d", col)
	}
}

func TestEvaluateCenterAndWindows(t *testing.T) {
	var b Board
	if got := Evaluate(b, SideA); got != 0 {
		t.Fatalf("expected empty board score 0, got %d", got)
	}
	b[5][3] = CellA
	if got := Evaluate(b, SideA); got != centerWeight {
		t.Fatalf("expected %d for one center disc, got %d", centerWeight, got)
	}

	var threat Board
	threat[5][0], threat[5][1], threat[5][2] = CellB, CellB, CellB
	if got := Evaluate(threat, SideA); got >= 0 {
		t.Fatalf("expected negative score facing an open three, got %d", got)
	}
}

func TestChooseMoveCenterOutwardOrder(t *testing.T) {
	var centerFull Board
	for r := 0; r < Rows; r++ {
		if r%2 == 1 {
			centerFull[r][3] = CellA
		} else {
			centerFull[r][3] = CellB
		}
	}

	var twoWinsOuter Board
	twoWinsOuter[5][1], twoWinsOuter[4][1], twoWinsOuter[3][1] = CellA, CellA, CellA
	twoWinsOuter[5][5], twoWinsOuter[4][5], twoWinsOuter[3][5] = CellA, CellA, CellA
	twoWinsOuter[5][0], twoWinsOuter[5][2], twoWinsOuter[5][4], twoWinsOuter[5][6] = CellB, CellB, CellB, CellB
	twoWinsOuter[4][0] = CellB

	var twoWinsInner Board
	twoWinsInner[5][2], twoWinsInner[4][2], twoWinsInner[3][2] = CellA, CellA, CellA
	twoWinsInner[5][4], twoWinsInner[4][4], twoWinsInner[3][4] = CellA, CellA, CellA
	twoWinsInner[5][0], twoWinsInner[5][1], twoWinsInner[5][5], twoWinsInner[5][6] = CellB, CellB, CellB, CellB
	twoWinsInner[4][0] = CellB

	tests := []struct {
		name  string
		board Board
		depth int
		want  int
	}{
		{name: "empty board opens in the center", board: Board{}, depth: DefaultSearchDepth, want: 3},
		{name: "equal scores keep the first column", board: centerFull, depth: 1, want: 2},
		{name: "first of two wins in columns 1 and 5", board: twoWinsOuter, depth: DefaultSearchDepth, want: 1},
		{name: "first of two wins in columns 2 and 4", board: twoWinsInner, depth: DefaultSearchDepth, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Engine{Depth: tt.depth}).ChooseMove(tt.board, SideA); got != tt.want {
				t.Fatalf("ChooseMove = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinimaxStopsAtDecidedBoard(t *testing.T) {
	var aWon Board
	aWon[5][0], aWon[5][1], aWon[5][2], aWon[5][3] = CellA, CellA, CellA, CellA
	aWon[4][0], aWon[4][1], aWon[4][2] = CellB, CellB, CellB

	tests := []struct {
		name       string
		side       Side
		maximizing bool
	}{
		{name: "winner to move", side: SideA, maximizing: true},
		{name: "loser to move", side: SideB, maximizing: true},
		{name: "minimizing node", side: SideB, maximizing: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, score := minimax(aWon, tt.side, 3, math.MinInt, math.MaxInt, tt.maximizing)
			if col != -1 {
				t.Fatalf("expected no column at a decided board, got %d", col)
			}
			if want := Evaluate(aWon, tt.side); score != want {
				t.Fatalf("score = %d, want static evaluation %d", score, want)
			}
		})
	}
}
