package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/driftmaze/maze"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// MazeString renders the current walls as ASCII. The root is marked R and
// the observer's cell @.
func (g *Game) MazeString() string {
	rows, cols := g.grid.Rows(), g.grid.Cols()
	observer, _ := g.observer.CurrentNode()
	root := g.graph.Root()

	var b strings.Builder
	b.WriteString("+")
	for x := 0; x < cols; x++ {
		b.WriteString("---+")
	}
	b.WriteString("\n")

	for y := 0; y < rows; y++ {
		b.WriteString("|")
		for x := 0; x < cols; x++ {
			id := g.grid.At(x, y)
			switch id {
			case root:
				b.WriteString(" R ")
			case observer:
				b.WriteString(" @ ")
			default:
				b.WriteString("   ")
			}
			if x == cols-1 || g.walls.HasWall(id, maze.Right) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < cols; x++ {
			id := g.grid.At(x, y)
			if y == rows-1 || g.walls.HasWall(id, maze.Down) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// LogMaze dumps the maze with a tick header.
func (g *Game) LogMaze() {
	Logf("=== Maze @ Tick %d (root %d, syncs %d) ===", g.tick, g.graph.Root(), g.walls.Syncs())
	Logf("%s", strings.TrimRight(g.MazeString(), "\n"))
}
