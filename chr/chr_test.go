package chr

import (
	"testing"

	"github.com/go-test/deep"
)

// The classic "1/2" example tile from the NES pattern table docs.
var half = []byte{
	0x41, 0xC2, 0x44, 0x48, 0x10, 0x20, 0x40, 0x80,
	0x01, 0x02, 0x04, 0x08, 0x16, 0x21, 0x42, 0x87,
}

var halfPixels = [64]uint8{
	0, 1, 0, 0, 0, 0, 0, 3,
	1, 1, 0, 0, 0, 0, 3, 0,
	0, 1, 0, 0, 0, 3, 0, 0,
	0, 1, 0, 0, 3, 0, 0, 0,
	0, 0, 0, 3, 0, 2, 2, 0,
	0, 0, 3, 0, 0, 0, 0, 2,
	0, 3, 0, 0, 0, 0, 2, 0,
	3, 0, 0, 0, 0, 2, 2, 2,
}

func TestTiles(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		want [][64]uint8
	}{
		{
			name: "empty",
			b:    nil,
			want: [][64]uint8{},
		},
		{
			name: "one tile",
			b:    half,
			want: [][64]uint8{halfPixels},
		},
		{
			name: "partial tile ignored",
			b:    append(append([]byte{}, half...), 0xFF, 0xFF),
			want: [][64]uint8{halfPixels},
		},
	}
	for _, test := range tests {
		got := Tiles(test.b)
		if diff := deep.Equal(got, test.want); diff != nil {
			t.Errorf("%s: %v", test.name, diff)
		}
	}
}

func TestSheet(t *testing.T) {
	// Tile 0 is all color 3, tile 1 is the half tile, tile 2 is blank.
	b := make([]byte, 3*TileSize)
	for i := 0; i < TileSize; i++ {
		b[i] = 0xFF
	}
	copy(b[TileSize:], half)

	img := Sheet(b, 2)
	if got, want := img.Bounds().Dx(), 16; got != want {
		t.Errorf("width got %d want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 16; got != want {
		t.Errorf("height got %d want %d", got, want)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := img.ColorIndexAt(x, y), uint8(3); got != want {
				t.Fatalf("tile 0 (%d,%d) got %d want %d", x, y, got, want)
			}
			if got, want := img.ColorIndexAt(x+8, y), halfPixels[y*8+x]; got != want {
				t.Fatalf("tile 1 (%d,%d) got %d want %d", x, y, got, want)
			}
			if got, want := img.ColorIndexAt(x, y+8), uint8(0); got != want {
				t.Fatalf("tile 2 (%d,%d) got %d want %d", x, y, got, want)
			}
		}
	}

	if got, want := Sheet(b, 0).Bounds().Dx(), DefaultPerRow*TileWidth; got != want {
		t.Errorf("default width got %d want %d", got, want)
	}
}

func TestScale(t *testing.T) {
	img := Sheet(half, 1)
	if got := Scale(img, 1); got != img {
		t.Error("Scale by 1 should return the same image")
	}
	s := Scale(img, 3)
	if got, want := s.Bounds().Dx(), 24; got != want {
		t.Fatalf("scaled width got %d want %d", got, want)
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			if got, want := s.ColorIndexAt(x, y), img.ColorIndexAt(x/3, y/3); got != want {
				t.Fatalf("(%d,%d) got %d want %d", x, y, got, want)
			}
		}
	}
}
