package tictactoe

import "github.com/rocketscienceinc/tictactoe-api/internal/entity"

// State is where a game stands after a move: either someone is to move, or the game has concluded.
type State struct {
	Turn    entity.Symbol
	Outcome entity.Outcome
}

// InitialState - X always opens.
func InitialState() State {
	return State{Turn: entity.SymbolX, Outcome: entity.OutcomeInProgress}
}

func (that State) IsConcluded() bool {
	return that.Outcome.IsConcluded()
}

// Advance - computes the state that follows a move which produced board.
func Advance(board entity.Board, priorTurn entity.Symbol) State {
	if winner := CheckWin(board); winner != entity.None {
		return State{Turn: entity.None, Outcome: entity.WonBy(winner)}
	}

	if CheckDraw(board) {
		return State{Turn: entity.None, Outcome: entity.OutcomeDraw}
	}

	return State{Turn: toggleMark(priorTurn), Outcome: entity.OutcomeInProgress}
}

func toggleMark(currentMark entity.Symbol) entity.Symbol {
	if currentMark == entity.SymbolX {
		return entity.SymbolO
	}
	return entity.SymbolX
}
