package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
)

// Text grid symbols.
const (
	SymbolFree     = '.'
	SymbolOccupied = '#'
	SymbolUnknown  = '?'
)

// ParseText parses an ASCII grid. The first non-blank line is the top row
// (y = Height-1), matching how maps are drawn on screen.
// Symbols: '.' Free, '#' Occupied, '?' Unknown.
func ParseText(text string, resolution float64, origin orb.Point) (*Grid, error) {
	return ReadText(strings.NewReader(text), resolution, origin)
}

// ReadText is ParseText over an io.Reader.
func ReadText(r io.Reader, resolution float64, origin orb.Point) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read text grid: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyGrid
	}

	rows := make([][]CellState, len(lines))
	for i, line := range lines {
		row := make([]CellState, 0, len(line))
		for col, ch := range line {
			switch ch {
			case SymbolFree:
				row = append(row, Free)
			case SymbolOccupied:
				row = append(row, Occupied)
			case SymbolUnknown:
				row = append(row, Unknown)
			default:
				return nil, fmt.Errorf("%w: %q at line %d column %d", ErrBadCell, ch, i+1, col+1)
			}
		}
		// bottom row first
		rows[len(lines)-1-i] = row
	}

	return FromRows(rows, resolution, origin)
}

// String renders g in the ParseText format.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			switch g.cells[g.Index(x, y)] {
			case Free:
				b.WriteByte(SymbolFree)
			case Occupied:
				b.WriteByte(SymbolOccupied)
			default:
				b.WriteByte(SymbolUnknown)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
