// Package view renders solver progress in the terminal using tcell.
package view

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/parameter"
	"github.com/lixenwraith/evomaze/pathfind"
)

// Source is the read-only solver surface the view polls
type Source interface {
	Grid() *maze.Grid
	Snapshot() (pathfind.Snapshot, bool)
	Result() (pathfind.Result, bool)
}

// Screen layout
const (
	headerRows = 2
	cellWidth  = 2
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleWalker = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStart  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleGoal   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFound  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFailed = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// View draws the grid with the best path walked step by step.
// All state is owned by the goroutine calling Run.
type View struct {
	screen tcell.Screen
	source Source

	// Animation
	running bool
	step    int
}

// New wraps an initialized screen; the caller owns Init and Fini
func New(screen tcell.Screen, source Source) *View {
	return &View{
		screen:  screen,
		source:  source,
		running: true,
	}
}

// Run processes input and redraws until the user quits or ctx is done
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	refresh := time.NewTicker(parameter.ViewRefreshInterval)
	defer refresh.Stop()
	stepper := time.NewTicker(parameter.ViewStepInterval)
	defer stepper.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()

		case <-stepper.C:
			v.Advance()

		case <-refresh.C:
			v.Draw()
		}
	}
}

// HandleEvent applies one input event; false means quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.running = !v.running
			case 'r':
				v.step = 0
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

// Advance moves the walker one cell along the current best path while running
func (v *View) Advance() {
	if !v.running {
		return
	}
	snap, ok := v.source.Snapshot()
	if !ok {
		return
	}
	if v.step < len(snap.BestPath)-1 {
		v.step++
	}
}

// Running reports whether the step animation is active
func (v *View) Running() bool { return v.running }

// Step returns the walker's index into the best path
func (v *View) Step() int { return v.step }

// Draw renders one frame
func (v *View) Draw() {
	v.screen.Clear()

	g := v.source.Grid()
	snap, hasSnap := v.source.Snapshot()

	if hasSnap {
		v.drawText(0, 0, styleText, fmt.Sprintf("generation %-6d best %.4f  avg %.4f  worst %.4f",
			snap.Generation, snap.BestFitness, snap.AverageFitness, snap.WorstFitness))
	} else {
		v.drawText(0, 0, styleDim, "initializing population")
	}

	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			c := maze.Cell{X: x, Y: y}
			switch {
			case c == g.Start():
				v.drawCell(c, maze.GlyphStart, styleStart)
			case c == g.Goal():
				v.drawCell(c, maze.GlyphGoal, styleGoal)
			case g.IsWall(c):
				v.drawCell(c, maze.GlyphWall, styleWall)
			}
		}
	}

	if hasSnap && len(snap.BestPath) > 0 {
		step := min(v.step, len(snap.BestPath)-1)
		for _, c := range snap.BestPath[:step] {
			if c != g.Start() && c != g.Goal() {
				v.drawCell(c, maze.GlyphPath, stylePath)
			}
		}
		v.drawCell(snap.BestPath[step], '@', styleWalker)
	}

	footer := headerRows + g.Rows() + 1
	state := "paused"
	if v.running {
		state = "running"
	}
	v.drawText(0, footer, styleDim, fmt.Sprintf("[%s] step %d   space run/pause   r reset   q quit", state, v.step))

	if res, done := v.source.Result(); done {
		if res.Found {
			v.drawText(0, footer+1, styleFound, fmt.Sprintf("goal reached in generation %d with %d moves", res.GenerationFound, res.Steps()))
		} else {
			v.drawText(0, footer+1, styleFailed, fmt.Sprintf("no path after %d generations, best %.4f", res.Generations, res.BestFitness))
		}
	}

	v.screen.Show()
}

func (v *View) drawCell(c maze.Cell, r rune, style tcell.Style) {
	sx, sy := c.X*cellWidth, headerRows+c.Y
	for i := 0; i < cellWidth; i++ {
		v.screen.SetContent(sx+i, sy, r, nil, style)
	}
}

func (v *View) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
