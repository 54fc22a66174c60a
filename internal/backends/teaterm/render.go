package teaterm

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// styles holds one lipgloss style per foreground/background pair.
var styles = func() (s [core.ColorCount][core.ColorCount]lipgloss.Style) {
	for fg := range core.ColorCount {
		for bg := range core.ColorCount {
			s[fg][bg] = lipgloss.NewStyle().
				Foreground(lipgloss.Color(strconv.Itoa(fg))).
				Background(lipgloss.Color(strconv.Itoa(bg)))
		}
	}
	return s
}()

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// renderScreen converts the cell buffer to a styled string. Runs of cells
// sharing colors are rendered together to keep escape sequences down.
func renderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		s.Runs(y, func(_ int, text string, fg, bg core.Color) {
			sb.WriteString(styles[fg%core.ColorCount][bg%core.ColorCount].Render(text))
		})
	}
	return sb.String()
}
