package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Block characters for drawing.
const (
	BlockUpperHalf = '▀'
	BlockFull      = '█'
)

// textCell marks a terminal cell owned by a text overlay in the current frame.
const textCell = uint64(1) << 63

// Canvas is a truecolor drawing buffer with 2x vertical resolution using half-block
// characters. Each terminal cell shows two pixels: the top one as the foreground of
// '▀' and the bottom one as its background. Logical field coordinates are scaled to
// terminal pixels, and only cells that changed since the previous Render are written.
type Canvas struct {
	termWidth      int              // Terminal columns used by the canvas
	termHeight     int              // Terminal rows used by the canvas
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Frame diffing
	front    []uint64 // Packed cell contents as last written to the terminal
	textMask []bool   // Cells covered by a text overlay this frame
	texts    []textItem
	redraw   bool

	styles    *lipgloss.Renderer
	renderBuf strings.Builder
	numBuf    [20]byte
}

type textItem struct {
	col, row int // 0-based canvas cell
	styled   string
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		styles:        lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.TrueColor)),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// FitField returns the largest canvas, in terminal cells, that fits the terminal while
// keeping the field's aspect ratio. Half-block pixels are treated as square.
func FitField(termWidth, termHeight int, fieldW, fieldH float64) (cols, rows int) {
	cols = termWidth
	if byHeight := int(float64(termHeight*2) * fieldW / fieldH); byHeight < cols {
		cols = byHeight
	}
	if cols < 1 {
		cols = 1
	}
	rows = int(math.Ceil(float64(cols) * fieldH / fieldW / 2))
	if rows > termHeight {
		rows = termHeight
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// The next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.front = make([]uint64, termWidth*termHeight)
		c.textMask = make([]bool, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
	c.redraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// ForceRedraw makes the next Render write every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() { c.redraw = true }

// Size implements Surface.
func (c *Canvas) Size() (w, h float64) {
	return c.logicalWidth, c.logicalHeight
}

// Clear implements Surface. Pixels become black and text overlays are dropped.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.textMask)
	c.texts = c.texts[:0]
}

// blend composites col onto the pixel at terminal pixel coordinates (no scaling).
func (c *Canvas) blend(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col.Over(c.pixels[i])
	}
}

// At returns the pixel at terminal pixel coordinates.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[y*c.termWidth+x]
}

// pixelSpan maps a logical interval onto pixel indices. Non-empty intervals always
// cover at least one pixel so thin bullets stay visible at small terminal sizes.
func pixelSpan(start, length, scale float64) (lo, hi int) {
	lo = int(math.Floor(start * scale))
	hi = int(math.Ceil((start+length)*scale)) - 1
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// FillRect implements Surface.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := max(y0, 0); py <= y1 && py < c.subPixelHeight; py++ {
		for px := max(x0, 0); px <= x1 && px < c.termWidth; px++ {
			c.blend(px, py, col)
		}
	}
}

// FillCircle implements Surface. The disc is scaled per axis, so it stays round
// only while both scales agree.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 || col.A <= 0 {
		return
	}
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	painted := false
	for py := int(math.Floor(pcy - ry)); py <= int(math.Ceil(pcy+ry)); py++ {
		for px := int(math.Floor(pcx - rx)); px <= int(math.Ceil(pcx+rx)); px++ {
			dx := (float64(px) + 0.5 - pcx) / rx
			dy := (float64(py) + 0.5 - pcy) / ry
			if dx*dx+dy*dy <= 1 {
				c.blend(px, py, col)
				painted = true
			}
		}
	}
	if !painted {
		c.blend(int(pcx), int(pcy), col)
	}
}

// Text implements Surface. Text occupies whole terminal cells and is clipped to the canvas.
func (c *Canvas) Text(x, y float64, s string, style TextStyle) {
	col := int(math.Round(x * c.scaleX))
	row := int(math.Round(y*c.scaleY)) / 2
	if row < 0 || row >= c.termHeight || s == "" {
		return
	}

	width := utf8.RuneCountInString(s)
	switch style.Align {
	case AlignCenter:
		col -= width / 2
	case AlignRight:
		col -= width
	}
	if col < 0 {
		s = string([]rune(s)[min(-col, width):])
		col = 0
	}
	if over := col + utf8.RuneCountInString(s) - c.termWidth; over > 0 {
		runes := []rune(s)
		s = string(runes[:max(len(runes)-over, 0)])
	}
	if s == "" {
		return
	}

	st := c.styles.NewStyle().
		Foreground(lipgloss.Color(style.Color.Hex())).
		Background(lipgloss.Color("#000000")).
		Bold(style.Bold)

	n := utf8.RuneCountInString(s)
	base := row * c.termWidth
	for i := col; i < col+n; i++ {
		c.textMask[base+i] = true
	}
	c.texts = append(c.texts, textItem{col: col, row: row, styled: st.Render(s)})
}

func packRGB(p colorful.Color) uint64 {
	r, g, b := p.Clamped().RGB255()
	return uint64(r)<<16 | uint64(g)<<8 | uint64(b)
}

// Render writes the changed cells and all text overlays to w.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	lastKey := textCell // Nothing emitted yet
	nextCol, nextRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			top := packRGB(c.pixels[topOffset+col])
			bottom := packRGB(c.pixels[bottomOffset+col])
			key := top<<24 | bottom
			if c.textMask[i] {
				key = textCell
			}

			if !c.redraw && c.front[i] == key {
				continue
			}
			c.front[i] = key
			if key == textCell {
				continue
			}

			if col != nextCol || row != nextRow {
				c.moveCursor(col, row)
			}
			if key != lastKey {
				c.renderBuf.WriteString("\033[38;2;")
				c.writeRGB(top)
				c.renderBuf.WriteString(";48;2;")
				c.writeRGB(bottom)
				c.renderBuf.WriteByte('m')
				lastKey = key
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
			nextCol, nextRow = col+1, row
		}
	}

	for _, t := range c.texts {
		c.moveCursor(t.col, t.row)
		c.renderBuf.WriteString(t.styled)
	}
	c.renderBuf.WriteString("\033[0m")
	c.redraw = false

	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

// moveCursor appends a cursor position sequence for a 0-based canvas cell.
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeRGB(v uint64) {
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], v>>16&0xff, 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], v>>8&0xff, 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], v&0xff, 10))
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the canvas on either axis. Horizontal bars need a spare row above,
// vertical bars a spare column to the left; corners need both.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasCols := c.offsetCol >= 1
	hasRows := c.offsetRow >= 1
	if !hasCols && !hasRows {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	at := func(row, col int) {
		buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H")
	}

	if hasRows {
		if hasCols {
			at(top, left)
			buf.WriteString("┌" + bar + "┐")
			at(bottom, left)
			buf.WriteString("└" + bar + "┘")
		} else {
			at(top, left+1)
			buf.WriteString(bar)
			at(bottom, left+1)
			buf.WriteString(bar)
		}
	}
	if hasCols {
		for row := c.offsetRow + 1; row < c.offsetRow+c.termHeight+1; row++ {
			at(row, left)
			buf.WriteString("│")
			at(row, right)
			buf.WriteString("│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

var _ Surface = (*Canvas)(nil)
