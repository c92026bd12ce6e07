package web

import (
	"fmt"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/domain"
)

type cellView struct {
	X, Y   int
	Class  string
	Facing float64
	Win    bool
}

type boardView struct {
	ID           string
	Rows         [][]cellView
	Status       string
	Error        string
	Mode         app.Mode
	Difficulty   domain.Difficulty
	Difficulties []domain.Difficulty
	TurnLength   int
	Playable     bool
}

func newBoardView(gs app.GameState, errMsg string) boardView {
	win := make(map[domain.Coord]bool, len(gs.Game.WinningLine))
	for _, c := range gs.Game.WinningLine {
		win[c] = true
	}
	rows := make([][]cellView, domain.Size)
	for y := range domain.Size {
		rows[y] = make([]cellView, domain.Size)
		for x := range domain.Size {
			cell := gs.Game.Board[y][x]
			rows[y][x] = cellView{
				X:      x,
				Y:      y,
				Class:  sideClass(cell.Owner),
				Facing: cell.Facing,
				Win:    win[domain.Coord{X: x, Y: y}],
			}
		}
	}
	return boardView{
		ID:           gs.ID,
		Rows:         rows,
		Status:       statusLine(gs),
		Error:        errMsg,
		Mode:         gs.Mode,
		Difficulty:   gs.Difficulty,
		Difficulties: domain.Difficulties,
		TurnLength:   gs.Game.TurnLength,
		Playable:     gs.HumanTurn() && !gs.AIThinking,
	}
}

func sideClass(p domain.Player) string {
	switch p {
	case domain.First:
		return "black"
	case domain.Second:
		return "white"
	default:
		return "empty"
	}
}

func sideName(p domain.Player) string {
	if p == domain.First {
		return "Black"
	}
	return "White"
}

func statusLine(gs app.GameState) string {
	g := gs.Game
	switch {
	case g.Over && g.Winner == domain.None:
		return "Draw"
	case g.Over && gs.Mode == app.PvE && g.Winner == domain.Second:
		return "The computer wins"
	case g.Over:
		return sideName(g.Winner) + " wins"
	case gs.AIThinking:
		return "The computer is thinking..."
	}
	stones := "stones"
	if g.TurnLength == 1 {
		stones = "stone"
	}
	return fmt.Sprintf("%s to play %d %s", sideName(g.Turn), g.TurnLength, stones)
}
