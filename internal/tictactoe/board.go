package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

type cell struct{ x, y int }

// winLines are scanned in order: rows top to bottom, columns left to right, main diagonal, anti-diagonal.
// On a board with two complete lines the first one in this order decides the winner.
var winLines = [8][3]cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// IsValidMove - reports whether (x, y) is on the board and still empty.
// Out-of-range coordinates are a rejected move, not an error.
func IsValidMove(board entity.Board, x, y int) bool {
	if x < 0 || x >= entity.BoardSize || y < 0 || y >= entity.BoardSize {
		return false
	}

	return board[x][y] == entity.None
}

// ApplyMove - returns a copy of board with symbol placed at (x, y).
// Callers must check IsValidMove first; playing an occupied or off-board cell panics.
func ApplyMove(board entity.Board, x, y int, symbol entity.Symbol) entity.Board {
	if !IsValidMove(board, x, y) {
		panic(fmt.Sprintf("tictactoe: apply move on unavailable cell (%d,%d)", x, y))
	}

	next := board
	next[x][y] = symbol

	return next
}

// CheckWin - returns the symbol owning the first complete line, or None.
func CheckWin(board entity.Board) entity.Symbol {
	for _, line := range winLines {
		a := board[line[0].x][line[0].y]
		b := board[line[1].x][line[1].y]
		c := board[line[2].x][line[2].y]

		if a != entity.None && a == b && b == c {
			return a
		}
	}

	return entity.None
}

// CheckDraw - reports a full board without a winning line.
func CheckDraw(board entity.Board) bool {
	return board.IsFull() && CheckWin(board) == entity.None
}
