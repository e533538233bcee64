package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorOver(t *testing.T) {
	base := Black.RGB
	half := White.Alpha(0.5).Over(base)
	r, g, b := half.RGB255()
	if r < 120 || r > 135 || g != r || b != r {
		t.Fatalf("expected mid grey, got %d,%d,%d", r, g, b)
	}

	if got := White.Alpha(0).Over(base); got != base {
		t.Fatalf("transparent colour changed the pixel: %v", got)
	}
	if got := Hex("#ef4444").Over(base).Hex(); got != "#ef4444" {
		t.Fatalf("opaque colour not copied: %s", got)
	}
}

func TestHexInvalid(t *testing.T) {
	c := Hex("not-a-colour")
	if c.Hex() != "#000000" || c.A != 1 {
		t.Fatalf("expected opaque black fallback, got %s alpha %v", c.Hex(), c.A)
	}
}

func TestFitField(t *testing.T) {
	cases := []struct {
		name         string
		termW, termH int
		wantW, wantH int
	}{
		{"wide_terminal", 120, 60, 90, 60},
		{"narrow_terminal", 60, 60, 60, 40},
		{"tiny", 1, 1, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := FitField(c.termW, c.termH, 480, 640)
			if w != c.wantW || h != c.wantH {
				t.Fatalf("FitField(%d,%d) = %d,%d, want %d,%d", c.termW, c.termH, w, h, c.wantW, c.wantH)
			}
		})
	}
}

func TestFillRectScalesAndKeepsThinShapes(t *testing.T) {
	c := NewScaledCanvas(48, 32, 480, 640) // 0.1 px per unit on both axes

	c.FillRect(100, 100, 4, 12, White)
	if got := c.At(10, 10); got != White.RGB {
		t.Fatalf("thin rect not visible at its pixel, got %v", got)
	}
	if got := c.At(11, 10); got != Black.RGB {
		t.Fatalf("rect bled into neighbour pixel, got %v", got)
	}

	c.Clear()
	if got := c.At(10, 10); got != Black.RGB {
		t.Fatalf("Clear left pixel set: %v", got)
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatal(err)
	}
	if strings.Count(first.String(), string(BlockUpperHalf)) != 50 {
		t.Fatalf("first frame should paint every cell")
	}

	var idle bytes.Buffer
	if err := c.Render(&idle); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsRune(idle.String(), BlockUpperHalf) {
		t.Fatalf("unchanged frame repainted cells: %q", idle.String())
	}

	c.FillRect(0, 0, 1, 1, White)
	var changed bytes.Buffer
	if err := c.Render(&changed); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(changed.String(), string(BlockUpperHalf)); n != 1 {
		t.Fatalf("expected exactly one repainted cell, got %d", n)
	}
	if !strings.Contains(changed.String(), "38;2;255;255;255") {
		t.Fatalf("expected white foreground in %q", changed.String())
	}

	c.ForceRedraw()
	var forced bytes.Buffer
	if err := c.Render(&forced); err != nil {
		t.Fatal(err)
	}
	if strings.Count(forced.String(), string(BlockUpperHalf)) != 50 {
		t.Fatalf("forced redraw should paint every cell")
	}
}

func TestTextOverlay(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	c.Render(&bytes.Buffer{})

	c.Text(10, 4, "HI", TextStyle{Color: White, Align: AlignCenter})
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "HI") {
		t.Fatalf("text missing from %q", out)
	}
	// Row 2 (1-based 3), centred on column 10 (1-based 10)
	if !strings.Contains(out, "\033[3;10H") {
		t.Fatalf("text not positioned at row 3 col 10: %q", out)
	}

	// When the text goes away the covered cells are repainted.
	c.Clear()
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), string(BlockUpperHalf)); n != 2 {
		t.Fatalf("expected 2 cells repainted after text removal, got %d", n)
	}
}

func TestTextClipped(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Text(2, 0, "LONGWORD", TextStyle{Color: White})

	if len(c.texts) != 1 {
		t.Fatalf("expected one text item, got %d", len(c.texts))
	}
	if !strings.Contains(c.texts[0].styled, "LO") || strings.Contains(c.texts[0].styled, "LON") {
		t.Fatalf("expected text clipped to 2 cells, got %q", c.texts[0].styled)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	payload := strings.Repeat("x", maxChunkSize*3+17)
	cw.WriteString(payload)
	if cw.Len() != len(payload) {
		t.Fatalf("expected %d buffered bytes, got %d", len(payload), cw.Len())
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != payload {
		t.Fatalf("flushed %d bytes, want %d", out.Len(), len(payload))
	}
	if cw.Len() != 0 {
		t.Fatalf("buffer not reset after flush")
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)

	var none bytes.Buffer
	c.RenderBorder(&none)
	if none.Len() != 0 {
		t.Fatalf("border drawn without spare space: %q", none.String())
	}

	c.SetOffset(2, 1)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if !strings.Contains(buf.String(), "┌────┐") || !strings.Contains(buf.String(), "└────┘") {
		t.Fatalf("expected full box, got %q", buf.String())
	}
}
