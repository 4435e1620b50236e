package tetris

import (
	"strconv"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Layout constants, in terminal cells.
const (
	cellW        = 2  // Each board column is two characters wide
	sidebarWidth = 16 // Stats and previews between or beside boards
	gap          = 1
)

// boardSize returns the framed board size on screen.
func boardSize(b core.Board) (w, h int) {
	return b.Width()*cellW + 2, b.Height() + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	bw, bh := boardSize(g.state.Board)
	needW := bw + gap + sidebarWidth
	if dst.Width() < needW || dst.Height() < bh {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	x := (dst.Width() - needW) / 2
	y := (dst.Height() - bh) / 2
	DrawBoard(dst, g.state, x, y, true)
	DrawSidebar(dst, g.state, x+bw+gap, y, g.title)
	drawStatusOverlay(dst, g.state)
}

// RenderDuel draws the local board, the shared sidebar and the opponent's
// board side by side. opponent is nil until the first snapshot arrives.
func RenderDuel(dst *platformcore.Screen, local core.State, opponent *core.State, title string) {
	dst.Clear()

	bw, bh := boardSize(local.Board)
	ow, oh := bw, bh
	if opponent != nil {
		ow, oh = boardSize(opponent.Board)
	}
	needW := bw + gap + sidebarWidth + gap + ow
	needH := max(bh, oh)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	x := (dst.Width() - needW) / 2
	y := (dst.Height() - needH) / 2
	DrawBoard(dst, local, x, y, true)
	DrawSidebar(dst, local, x+bw+gap, y, title)

	ox := x + bw + gap + sidebarWidth + gap
	if opponent == nil {
		r := platformcore.NewRect(ox, y, ow, oh)
		dst.DrawBoxColor(r, platformcore.ColorDim)
		msg := "waiting"
		if local.Connected {
			msg = "joining"
		}
		dst.DrawTextColor(ox+(ow-len(msg))/2, y+oh/2, msg, platformcore.ColorGray)
	} else {
		DrawBoard(dst, *opponent, ox, y, false)
		label := "OPPONENT " + strconv.Itoa(opponent.Score)
		if opponent.GameOver {
			label = "OPPONENT OUT"
		}
		dst.DrawTextColor(ox+1, y, label, platformcore.ColorGray)
	}

	status := "Opp: waiting"
	if local.Connected {
		status = "Opp: online"
	}
	dst.DrawTextColor(x+bw+gap, y+needH-1, status, platformcore.ColorGray)

	switch {
	case local.GameOver:
		renderOverlay(dst, "You topped out", "Press R to restart")
	case opponent != nil && opponent.GameOver && local.Connected:
		renderOverlay(dst, "You win!", "Press R to restart")
	case local.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// DrawBoard draws a framed board with its locked cells, the active piece and,
// when ghost is set, the hard-drop projection.
func DrawBoard(dst *platformcore.Screen, s core.State, x, y int, ghost bool) {
	bw, bh := boardSize(s.Board)
	dst.DrawBoxColor(platformcore.NewRect(x, y, bw, bh), platformcore.ColorGray)

	for row := range s.Board.Height() {
		for col := range s.Board.Width() {
			px, py := x+1+col*cellW, y+1+row
			if c := s.Board.At(col, row); c != core.ColorNone {
				drawBlock(dst, px, py, '█', paletteFor(c))
			} else {
				dst.SetColor(px+1, py, '·', platformcore.ColorDim)
			}
		}
	}

	if s.GameOver {
		return
	}
	if ghost {
		for _, c := range s.Highlight.Cells() {
			if s.Board.InBounds(c.X, c.Y) && !s.Board.Filled(c.X, c.Y) {
				drawBlock(dst, x+1+c.X*cellW, y+1+c.Y, '░', paletteFor(s.Highlight.Color))
			}
		}
	}
	for _, c := range s.Active.Cells() {
		if s.Board.InBounds(c.X, c.Y) {
			drawBlock(dst, x+1+c.X*cellW, y+1+c.Y, '█', paletteFor(s.Active.Color))
		}
	}
}

// DrawSidebar draws the title, previews and counters.
func DrawSidebar(dst *platformcore.Screen, s core.State, x, y int, title string) {
	dst.DrawTextColor(x, y, title, platformcore.ColorCyan)

	DrawPreview(dst, &s.Next, x, y+2, "NEXT")
	DrawPreview(dst, s.Held, x, y+6, "HOLD")

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", s.Score},
		{"HIGH", s.HighScore},
		{"LEVEL", s.Level},
		{"LINES", s.Lines},
	}
	for i, st := range stats {
		dst.DrawTextColor(x, y+11+i, st.label, platformcore.ColorGray)
		dst.DrawText(x+6, y+11+i, strconv.Itoa(st.value))
	}
}

// DrawPreview draws a piece in its canonical orientation under a label.
// A nil piece draws only the label.
func DrawPreview(dst *platformcore.Screen, p *core.Piece, x, y int, label string) {
	dst.DrawTextColor(x, y, label, platformcore.ColorGray)
	if p == nil {
		return
	}

	canon, err := core.OriginalPiece(p.Shape)
	if err != nil {
		canon = *p
	}
	top, bottom := core.Bounds(canon.Shape, core.AxisRows)
	left, right := core.Bounds(canon.Shape, core.AxisCols)
	if top < 0 {
		return
	}
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			if canon.Shape.Filled(c, r) {
				drawBlock(dst, x+(c-left)*cellW, y+1+r-top, '█', paletteFor(canon.Color))
			}
		}
	}
}

func drawBlock(dst *platformcore.Screen, x, y int, r rune, c platformcore.Color) {
	dst.SetColor(x, y, r, c)
	dst.SetColor(x+1, y, r, c)
}

// paletteFor maps piece colors to screen colors.
func paletteFor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorCyan:
		return platformcore.ColorCyan
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGarbage:
		return platformcore.ColorGray
	default:
		return platformcore.ColorDefault
	}
}

func drawStatusOverlay(dst *platformcore.Screen, s core.State) {
	switch {
	case s.GameOver:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case s.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	r := platformcore.NewRect(
		platformcore.Clamp((dst.Width()-boxW)/2, 0, dst.Width()),
		platformcore.Clamp((dst.Height()-boxH)/2, 0, dst.Height()),
		boxW, boxH)

	dst.DrawRect(r.Inner(), ' ')
	dst.DrawBox(r)
	dst.DrawTextCentered(r.Y+1, line1)
	dst.DrawTextColor(r.X+(boxW-len(line2))/2, r.Y+3, line2, platformcore.ColorGray)
}
