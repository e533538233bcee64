package draw

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for smooth network flow.
// Slightly below a typical 1500-byte MTU to leave room for SSH framing.
const maxChunkSize = 1400

// ChunkWriter accumulates a frame of terminal output and writes it in MTU-sized
// chunks (e.g. over SSH). Write and WriteString accumulate, Flush sends.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// Write implements io.Writer so canvases can render into the frame.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the frame.
func (cw *ChunkWriter) WriteString(s string) (n int, err error) {
	return cw.buf.WriteString(s)
}

// Len returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Flush writes the accumulated frame to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

var _ io.StringWriter = (*ChunkWriter)(nil)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Terminal control sequences.
const (
	seqClearScreen = "\033[0m\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	seqAltScreen   = "\033[?1049h"
	seqMainScreen  = "\033[?1049l"
)

// ClearScreen resets attributes, clears the terminal and moves cursor to top-left.
func ClearScreen(w io.StringWriter) { w.WriteString(seqClearScreen) }

// HideCursor hides the terminal cursor.
func HideCursor(w io.StringWriter) { w.WriteString(seqHideCursor) }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.StringWriter) { w.WriteString(seqShowCursor) }

// EnterAltScreen switches to the alternate screen buffer so the shell's
// scrollback survives the game.
func EnterAltScreen(w io.StringWriter) { w.WriteString(seqAltScreen) }

// ExitAltScreen returns to the main screen buffer.
func ExitAltScreen(w io.StringWriter) { w.WriteString(seqMainScreen) }
