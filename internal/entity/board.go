package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const BoardSize = 3

// Symbol is a player's mark. None doubles as the empty cell and the absent turn.
type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
	None    Symbol = ""
)

var ErrInvalidCellValue = errors.New("invalid cell value")

// Opponent - returns the other player's symbol.
func (that Symbol) Opponent() Symbol {
	if that == SymbolX {
		return SymbolO
	}
	return SymbolX
}

// Board is a 3x3 grid indexed as [x][y]. It is a value type: copying a Board copies every cell.
type Board [BoardSize][BoardSize]Symbol

// NewBoard - returns an empty board.
func NewBoard() Board {
	return Board{}
}

func (that Board) Cell(x, y int) Symbol {
	return that[x][y]
}

// IsFull - reports whether every cell has been played.
func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == None {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the board as nested arrays of "X" | "O" | null.
func (that Board) MarshalJSON() ([]byte, error) {
	out := make([][]*string, BoardSize)
	for x, row := range that {
		out[x] = make([]*string, BoardSize)
		for y, cell := range row {
			if cell == None {
				continue
			}
			value := string(cell)
			out[x][y] = &value
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON accepts null and the legacy empty string as an empty cell.
func (that *Board) UnmarshalJSON(data []byte) error {
	var raw [][]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	if len(raw) != BoardSize {
		return fmt.Errorf("%w: board has %d rows", ErrInvalidCellValue, len(raw))
	}

	var board Board
	for x, row := range raw {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidCellValue, x, len(row))
		}

		for y, cell := range row {
			symbol, err := parseCell(cell)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			board[x][y] = symbol
		}
	}

	*that = board
	return nil
}

func parseCell(cell *string) (Symbol, error) {
	if cell == nil {
		return None, nil
	}

	switch Symbol(*cell) {
	case None:
		return None, nil
	case SymbolX:
		return SymbolX, nil
	case SymbolO:
		return SymbolO, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidCellValue, *cell)
	}
}

// ParseSymbol - converts a stored turn or mark into a Symbol.
func ParseSymbol(value string) (Symbol, error) {
	return parseCell(&value)
}
