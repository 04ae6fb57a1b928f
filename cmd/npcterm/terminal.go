package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/game"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	unitsPerColumn = 20.0
	unitsPerRow    = 40.0
)

// Terminal draws a session into a tcell screen.
type Terminal struct {
	screen tcell.Screen
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Key records one key press into in. It reports false for quit keys.
func Key(key tcell.Key, r rune, in *component.Input) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		in.Up = true
	case tcell.KeyDown:
		in.Down = true
	case tcell.KeyLeft:
		in.Left = true
	case tcell.KeyRight:
		in.Right = true
	case tcell.KeyTab:
		in.ToggleMenu = true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			in.Up = true
		case 's', 'S':
			in.Down = true
		case 'a', 'A':
			in.Left = true
		case 'd', 'D':
			in.Right = true
		case 'm', 'M':
			in.TogglePause = true
		case 'o', 'O':
			in.ToggleSettings = true
		case 'e', 'E':
			in.Interact = true
		case 'q', 'Q':
			return false
		}
	}
	return true
}

func (t *Terminal) Draw(s *game.Session) {
	t.screen.Clear()
	w, h := t.screen.Size()

	_, cam, _ := s.Avatar()
	cx, cy := w/2, h/2
	for _, d := range s.Drawables() {
		col := cx + int(math.Round((d.X-cam.X)/unitsPerColumn))
		row := cy + int(math.Round((d.Y-cam.Y)/unitsPerRow))
		if col < 0 || row < 0 || col >= w || row >= h {
			continue
		}
		c := d.Sprite.Color
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if d.Focus {
			style = style.Bold(true).Underline(true)
		}
		t.screen.SetContent(col, row, d.Sprite.Glyph, nil, style)
		if d.Name != "" && !d.Avatar {
			t.text(col+2, row, d.Name, tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}

	overlays := s.Overlays()
	if len(overlays) > 0 {
		t.panel(overlays[len(overlays)-1], w, h)
	}

	status := fmt.Sprintf(" %s  stack %v  near %d ", s.Current(), s.Navigation().Stack(), s.Candidates().Len())
	t.text(0, h-1, status, tcell.StyleDefault.Reverse(true))
	t.screen.Show()
}

func (t *Terminal) panel(p component.ScreenText, w, h int) {
	lines := append([]string{p.Title, ""}, p.Lines...)
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	x0, y0 := (w-width)/2, (h-height)/2

	bg := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(p.Tint.R), int32(p.Tint.G), int32(p.Tint.B))).Foreground(tcell.ColorWhite)
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}
	for i, l := range lines {
		style := bg
		if i == 0 {
			style = style.Bold(true)
		}
		t.text(x0+2, y0+1+i, l, style)
	}
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
