package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// lineInput is a single-line text field with history. The cursor is a byte
// offset that always sits on a rune boundary.
type lineInput struct {
	text    string
	cursor  int
	history *History
}

func (l *lineInput) reset() {
	l.text = ""
	l.cursor = 0
	l.history.Reset()
}

// handleKey edits the text for ev and reports whether the key was consumed
func (l *lineInput) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		if !l.history.IsNavigating() {
			l.history.SetTemporary(l.text)
		}
		if prev, ok := l.history.Previous(); ok {
			l.set(prev)
		}
	case tcell.KeyDown:
		if next, ok := l.history.Next(); ok {
			l.set(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if l.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(l.text[:l.cursor])
			l.text = l.text[:l.cursor-size] + l.text[l.cursor:]
			l.cursor -= size
		}
	case tcell.KeyDelete:
		if l.cursor < len(l.text) {
			_, size := utf8.DecodeRuneInString(l.text[l.cursor:])
			l.text = l.text[:l.cursor] + l.text[l.cursor+size:]
		}
	case tcell.KeyLeft:
		if l.cursor > 0 {
			_, size := utf8.DecodeLastRuneInString(l.text[:l.cursor])
			l.cursor -= size
		}
	case tcell.KeyRight:
		if l.cursor < len(l.text) {
			_, size := utf8.DecodeRuneInString(l.text[l.cursor:])
			l.cursor += size
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursor = len(l.text)
	case tcell.KeyCtrlU:
		l.text = l.text[l.cursor:]
		l.cursor = 0
	case tcell.KeyCtrlK:
		l.text = l.text[:l.cursor]
	case tcell.KeyCtrlW:
		l.deleteWordBackwards()
	case tcell.KeyRune:
		s := string(ev.Rune())
		l.text = l.text[:l.cursor] + s + l.text[l.cursor:]
		l.cursor += len(s)
	default:
		return false
	}
	return true
}

func (l *lineInput) set(text string) {
	l.text = text
	l.cursor = len(text)
}

func (l *lineInput) deleteWordBackwards() {
	pos := l.cursor
	for pos > 0 && (l.text[pos-1] == ' ' || l.text[pos-1] == '\t') {
		pos--
	}
	for pos > 0 && l.text[pos-1] != ' ' && l.text[pos-1] != '\t' {
		pos--
	}
	l.text = l.text[:pos] + l.text[l.cursor:]
	l.cursor = pos
}

// render draws prefix and the text at row y with a block cursor and clears
// the rest of the line. It returns the column after the cursor.
func (l *lineInput) render(screen *Screen, y int, prefix string, prefixStyle, textStyle, cursorStyle tcell.Style) int {
	x := screen.DrawString(0, y, prefix, prefixStyle)
	x = screen.DrawString(x, y, l.text[:l.cursor], textStyle)
	if l.cursor < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.cursor:])
		screen.SetCell(x, y, r, cursorStyle)
		x = screen.DrawString(x+RuneWidth(r), y, l.text[l.cursor+size:], textStyle)
	} else {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}
	screen.FillLine(x, y, textStyle)
	return x
}
