package maze

import "strings"

// Glyphs used by Render
const (
	GlyphWall  = '█'
	GlyphOpen  = ' '
	GlyphPath  = '•'
	GlyphStart = 'S'
	GlyphGoal  = 'G'
)

// Render draws the grid one text line per row with an optional path overlay.
// Start and goal glyphs take precedence over the path.
func Render(g *Grid, route []Cell) string {
	onPath := make(map[Cell]struct{}, len(route))
	for _, c := range route {
		onPath[c] = struct{}{}
	}

	var sb strings.Builder
	sb.Grow(g.rows * (g.cols*3 + 1))

	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			c := Cell{x, y}
			switch {
			case c == g.start:
				sb.WriteRune(GlyphStart)
			case c == g.goal:
				sb.WriteRune(GlyphGoal)
			case g.IsWall(c):
				sb.WriteRune(GlyphWall)
			default:
				if _, ok := onPath[c]; ok {
					sb.WriteRune(GlyphPath)
				} else {
					sb.WriteRune(GlyphOpen)
				}
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
