package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board layout constants
const (
	cellWidth  = 7 // Columns per cell including the left border
	cellHeight = 2 // Rows per cell including the top border

	boardW = engine.Size*cellWidth + 1
	boardH = engine.Size*cellHeight + 1

	headerRows = 3 // Title, score line, gap
	footerRows = 4 // Gap, boxed status message

	// MinWidth and MinHeight are the smallest screen the board fits on.
	MinWidth  = boardW
	MinHeight = headerRows + boardH + footerRows
)

// view is everything drawScreen needs for one frame.
type view struct {
	grid    engine.Grid
	score   int
	best    int
	message string
}

// drawScreen draws the title, score header, board and status message,
// centered horizontally.
func drawScreen(dst *core.Screen, v view, theme config.ThemeConfig) {
	dst.Clear()

	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		drawTooSmall(dst)
		return
	}

	accent := theme.AccentColor()
	board := core.NewRect((dst.Width()-boardW)/2, headerRows, boardW, boardH)

	dst.DrawTextCentered(0, "2048", accent)

	scoreStr := fmt.Sprintf("Score: %d", v.score)
	bestStr := fmt.Sprintf("Best: %d", max(v.best, v.score))
	dst.DrawText(board.X, 1, scoreStr)
	dst.DrawText(board.Right()-len(bestStr), 1, bestStr)

	drawBoard(dst, board, v.grid, theme)

	if v.message != "" {
		drawMessage(dst, board.Bottom()+1, v.message, accent)
	}
}

// drawBoard draws the grid lines and tile values inside r.
func drawBoard(dst *core.Screen, r core.Rect, grid engine.Grid, theme config.ThemeConfig) {
	border := theme.BorderColor()
	dst.DrawBox(r, border)

	// Inner lines, then every junction on top of them
	for i := 1; i < engine.Size; i++ {
		for y := r.Y + 1; y < r.Bottom()-1; y++ {
			dst.SetCell(r.X+i*cellWidth, y, '│', border)
		}
		for x := r.X + 1; x < r.Right()-1; x++ {
			dst.SetCell(x, r.Y+i*cellHeight, '─', border)
		}
	}
	for row := range engine.Size + 1 {
		for col := range engine.Size + 1 {
			dst.SetCell(r.X+col*cellWidth, r.Y+row*cellHeight, junction(row, col), border)
		}
	}

	for row := range engine.Size {
		for col := range engine.Size {
			val := grid[row][col]
			if val == 0 {
				continue
			}

			s := strconv.Itoa(val)
			cell := core.NewRect(r.X+col*cellWidth, r.Y+row*cellHeight, cellWidth+1, cellHeight+1)
			cx, cy := cell.Center()
			x := core.Clamp(cx-len(s)/2, cell.X+1, cell.Right()-1-len(s))
			dst.DrawTextColor(x, cy, s, theme.TileColor(val))
		}
	}
}

// drawMessage draws text in a box centered at row y.
func drawMessage(dst *core.Screen, y int, text string, c core.Color) {
	w := min(len([]rune(text))+4, dst.Width())
	box := core.NewRect((dst.Width()-w)/2, y, w, 3)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(y+1, text, c)
}

// junction returns the box-drawing rune where grid lines meet.
func junction(row, col int) rune {
	last := engine.Size
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == last:
		return '┐'
	case row == last && col == 0:
		return '└'
	case row == last && col == last:
		return '┘'
	case row == 0:
		return '┬'
	case row == last:
		return '┴'
	case col == 0:
		return '├'
	case col == last:
		return '┤'
	default:
		return '┼'
	}
}

func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight), core.ColorDefault)
}
