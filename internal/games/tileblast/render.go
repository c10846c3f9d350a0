package tileblast

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tileblast/internal/core"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
)

const (
	cellWidth  = 4 // cursor bracket, two tile columns, cursor bracket
	cellHeight = 1
	hudHeight  = 3
	hudMinW    = 36
	flashTicks = 4 // staged tiles alternate every flashTicks ticks
)

// layout holds the screen areas of one frame.
type layout struct {
	hud   core.Rect // score and moves lines
	frame core.Rect // board border
	board core.Rect // clickable cells
}

func (g *Game) layout() layout {
	grid := g.ctrl.Grid()
	w := grid.Width()*cellWidth + 2
	h := grid.Height()*cellHeight + 2
	frame := core.NewRect(max((g.screenW-w)/2, 0), hudHeight, w, h)
	hudW := max(w, hudMinW)
	return layout{
		hud:   core.NewRect(max((g.screenW-hudW)/2, 0), 0, hudW, hudHeight),
		frame: frame,
		board: core.NewRect(frame.X+1, frame.Y+1, w-2, h-2),
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start TileBlast", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error(), core.ColorDefault)
		return
	}
	if g.ctrl == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	dst.DrawTextCentered(l.frame.Bottom(), g.Controls(), core.ColorGray)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

// renderHUD draws title, score, moves and the status line.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightCyan)

	p := g.ctrl.Progress()
	score := fmt.Sprintf("Score: %d", p.Score)
	if p.ScoreTarget > 0 {
		score = fmt.Sprintf("Score: %d/%d", p.Score, p.ScoreTarget)
	}
	dst.DrawText(l.hud.X, 1, score)

	moves := fmt.Sprintf("Moves: %d", p.MovesUsed)
	if p.MovesLimit > 0 {
		moves = fmt.Sprintf("Moves: %d/%d", p.MovesLeft, p.MovesLimit)
	}
	dst.DrawText(l.hud.Right()-utf8.RuneCountInString(moves), 1, moves)

	switch {
	case g.messageTicks > 0:
		dst.DrawTextColor(l.hud.X, 2, g.message, core.ColorRed)
	case g.ctrl.State() == session.StateResolving:
		msg := "Blast!"
		if d := g.ctrl.CascadeDepth(); d > 0 {
			msg = fmt.Sprintf("Cascade x%d", d+1)
		}
		dst.DrawTextColor(l.hud.X, 2, msg, core.ColorBrightYellow)
	case g.lastGain > 0:
		dst.DrawTextColor(l.hud.X, 2, fmt.Sprintf("+%d", g.lastGain), core.ColorBrightGreen)
	}
}

// renderBoard draws the frame, tiles and cursor.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.frame, core.ColorGray)

	grid := g.ctrl.Grid()
	flashOn := (g.tick/flashTicks)%2 == 0
	for row := range grid.Height() {
		for col := range grid.Width() {
			x := l.board.X + col*cellWidth
			y := l.board.Y + row*cellHeight

			if g.cursor == board.P(col, row) && g.result == nil {
				dst.SetCell(x, y, '[', core.ColorBrightWhite)
				dst.SetCell(x+3, y, ']', core.ColorBrightWhite)
			}

			t := grid.TileAt(row, col)
			if t == nil {
				continue
			}
			runes, color := g.tileLook(t, flashOn)
			dst.SetCell(x+1, y, runes[0], color)
			dst.SetCell(x+2, y, runes[1], color)
		}
	}
}

// tileLook returns the two runes and colour a tile is drawn with.
func (g *Game) tileLook(t *board.Tile, flashOn bool) ([2]rune, core.Color) {
	runes := [2]rune{'█', '█'}
	color := g.colors[t.Type]
	if t.Special() {
		runes = specialRunes(t.Behaviour)
		color = core.ColorBrightYellow
	}
	if t.Staged() {
		color = color.Bright()
		if flashOn {
			runes = [2]rune{'░', '░'}
		}
	}
	return runes, color
}

func specialRunes(b board.Behaviour) [2]rune {
	switch b {
	case board.BehaviourRowDestroyer:
		return [2]rune{'═', '═'}
	case board.BehaviourColumnDestroyer:
		return [2]rune{'║', ' '}
	case board.BehaviourRegionDestroyer:
		return [2]rune{'▣', ' '}
	case board.BehaviourFieldDestroyer:
		return [2]rune{'✸', ' '}
	default:
		return [2]rune{'?', ' '}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	cx, cy := l.frame.Center()

	if g.paused {
		g.drawOverlay(dst, cx, cy, core.ColorDefault, "PAUSED", "Press P to resume")
		return
	}
	if g.result == nil {
		return
	}

	r := g.result
	summary := fmt.Sprintf("Score: %d in %d moves", r.Score, r.MovesUsed)
	cascade := fmt.Sprintf("Longest cascade: %d", g.maxCascade+1)
	switch r.Status {
	case session.StatusGoalReached:
		g.drawOverlay(dst, cx, cy, core.ColorBrightGreen, "TARGET REACHED!", summary, cascade, "Press R to restart")
	case session.StatusFailed:
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed, "OUT OF MOVES", summary, cascade, "Press R to restart")
	default:
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed, "NO MOVES LEFT", summary, cascade, "Press R to restart")
	}
}

// drawOverlay draws a centered text box. The first line is the headline.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, headline core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorDefault)

	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = headline
		}
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColor(x, box.Y+1+i, line, color)
	}
}
