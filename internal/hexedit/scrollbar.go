package hexedit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	scrollbarThumbChar = "█"
	scrollbarTrackChar = "░"
)

// scrollBar records what the control last reported and draws it as a one
// column track.
type scrollBar struct {
	top, visible, maxTop int64

	track lipgloss.Style
	thumb lipgloss.Style
}

func (s *scrollBar) SetPosition(top, visible, maxTop int64) {
	s.top = top
	s.visible = visible
	s.maxTop = maxTop
}

// thumbBounds returns the first row and height of the thumb on a track of
// height rows.
func (s *scrollBar) thumbBounds(height int) (start, size int) {
	if height <= 0 {
		return 0, 0
	}
	if s.maxTop <= 0 {
		return 0, height
	}
	total := s.maxTop + int64(height)
	size = int(max(1, int64(height)*int64(height)/total))

	track := height - size
	if track <= 0 {
		return 0, size
	}
	top := min(max(s.top, 0), s.maxTop)
	start = int(int64(track) * top / s.maxTop)
	return min(max(start, 0), height-size), size
}

func (s *scrollBar) render(height int) string {
	if height <= 0 {
		return ""
	}
	lines := make([]string, height)
	if s.maxTop <= 0 {
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}
	start, size := s.thumbBounds(height)
	for row := range height {
		if row >= start && row < start+size {
			lines[row] = s.thumb.Render(scrollbarThumbChar)
		} else {
			lines[row] = s.track.Render(scrollbarTrackChar)
		}
	}
	return strings.Join(lines, "\n")
}
