// Package chr decodes NES CHR-ROM pattern tables into images.
//
// A tile is 8x8 pixels stored as 16 bytes. The first 8 bytes are the low
// bit plane (one byte per row, bit 7 is the leftmost pixel) and the next
// 8 are the high bit plane, giving a 2 bit color index per pixel.
package chr

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	TileSize  = 16 // Bytes per tile
	TileWidth = 8  // Pixels per side
	// DefaultPerRow is the layout of one 4KB pattern table.
	DefaultPerRow = 16
)

// Palette maps the 4 color indexes to evenly spaced greys.
var Palette = color.Palette{
	color.Gray{Y: 0x00},
	color.Gray{Y: 0x55},
	color.Gray{Y: 0xAA},
	color.Gray{Y: 0xFF},
}

// Tiles decodes every complete tile in b. Each tile is 64 color indexes
// (0-3) in row major order. A trailing partial tile is ignored.
func Tiles(b []byte) [][TileWidth * TileWidth]uint8 {
	out := make([][TileWidth * TileWidth]uint8, len(b)/TileSize)
	for t := range out {
		tile := b[t*TileSize : (t+1)*TileSize]
		for y := 0; y < TileWidth; y++ {
			lo, hi := tile[y], tile[y+TileWidth]
			for x := 0; x < TileWidth; x++ {
				shift := uint(7 - x)
				out[t][y*TileWidth+x] = (lo>>shift)&0x01 | ((hi>>shift)&0x01)<<1
			}
		}
	}
	return out
}

// Sheet renders all tiles in b into a single image using Palette with
// perRow tiles across. perRow <= 0 uses DefaultPerRow.
func Sheet(b []byte, perRow int) *image.Paletted {
	if perRow <= 0 {
		perRow = DefaultPerRow
	}
	tiles := Tiles(b)
	rows := (len(tiles) + perRow - 1) / perRow
	img := image.NewPaletted(image.Rect(0, 0, perRow*TileWidth, rows*TileWidth), Palette)
	for i, tile := range tiles {
		ox, oy := (i%perRow)*TileWidth, (i/perRow)*TileWidth
		for y := 0; y < TileWidth; y++ {
			for x := 0; x < TileWidth; x++ {
				img.SetColorIndex(ox+x, oy+y, tile[y*TileWidth+x])
			}
		}
	}
	return img
}

// Scale returns img enlarged by factor in both directions with nearest
// neighbor sampling so tile pixels stay sharp. A factor below 2 returns img.
func Scale(img *image.Paletted, factor int) *image.Paletted {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	d := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), img.Palette)
	draw.NearestNeighbor.Scale(d, d.Bounds(), img, b, draw.Src, nil)
	return d
}
