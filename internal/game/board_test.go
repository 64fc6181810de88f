package game

import (
	"errors"
	"testing"
)

// drawRows is a full board with no run of four for either side.
var drawRows = [Rows]string{
	"AABBAAB",
	"BBAABBA",
	"AABBAAB",
	"BBAABBA",
	"AABBAAB",
	"BBAABBA",
}

func boardFrom(rows [Rows]string) Board {
	var b Board
	for r, line := range rows {
		for c, ch := range line {
			switch ch {
			case 'A':
				b[r][c] = CellA
			case 'B':
				b[r][c] = CellB
			}
		}
	}
	return b
}

func TestDropStacksFromBottom(t *testing.T) {
	var b Board
	for want := Rows - 1; want >= 0; want-- {
		row, err := b.Drop(2, SideA)
		if err != nil {
			t.Fatalf("drop: %v", err)
		}
		if row != want {
			t.Fatalf("expected row %d, got %d", want, row)
		}
	}
	if b.Legal(2) {
		t.Fatalf("expected column 2 to be full")
	}
	if _, err := b.Drop(2, SideB); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if _, err := b.Drop(Columns, SideB); !errors.Is(err, ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
	if _, err := b.Drop(-1, SideB); !errors.Is(err, ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
}

func TestWinsAtAllDirections(t *testing.T) {
	cases := []struct {
		name     string
		cells    [][2]int
		row, col int
	}{
		{"horizontal", [][2]int{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, 5, 3},
		{"vertical", [][2]int{{5, 6}, {4, 6}, {3, 6}, {2, 6}}, 2, 6},
		{"diagonal", [][2]int{{5, 0}, {4, 1}, {3, 2}, {2, 3}}, 3, 2},
		{"anti_diagonal", [][2]int{{2, 3}, {3, 4}, {4, 5}, {5, 6}}, 2, 3},
		{"middle_of_run", [][2]int{{5, 1}, {5, 2}, {5, 3}, {5, 4}, {5, 5}}, 5, 3},
	}
	for _, tc := range cases {
		var b Board
		for _, p := range tc.cells {
			b[p[0]][p[1]] = CellB
		}
		if !b.WinsAt(tc.row, tc.col, SideB) {
			t.Fatalf("%s: expected win", tc.name)
		}
		if b.WinsAt(tc.row, tc.col, SideA) {
			t.Fatalf("%s: side A should not win", tc.name)
		}
		if !b.HasFour(SideB) {
			t.Fatalf("%s: expected HasFour", tc.name)
		}
	}
}

func TestWinsAtThreeIsNotWin(t *testing.T) {
	var b Board
	b[5][0], b[5][1], b[5][2] = CellA, CellA, CellA
	b[5][3] = CellB
	if b.WinsAt(5, 2, SideA) || b.HasFour(SideA) {
		t.Fatalf("three in a row must not win")
	}
}

func TestLegalColumnsCenterOutward(t *testing.T) {
	var b Board
	got := b.LegalColumns()
	want := []int{3, 2, 4, 1, 5, 0, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	for i := 0; i < Rows; i++ {
		_, _ = b.Drop(3, SideA)
	}
	got = b.LegalColumns()
	if len(got) != Columns-1 || got[0] != 2 {
		t.Fatalf("expected full column dropped, got %v", got)
	}
}

func TestFullBoardWithoutWinner(t *testing.T) {
	b := boardFrom(drawRows)
	if !b.Full() {
		t.Fatalf("expected full board")
	}
	if b.HasFour(SideA) || b.HasFour(SideB) {
		t.Fatalf("expected no four in a row")
	}
	if len(b.LegalColumns()) != 0 {
		t.Fatalf("expected no legal columns")
	}
	if b.Discs() != Rows*Columns {
		t.Fatalf("expected %d discs, got %d", Rows*Columns, b.Discs())
	}
}
