// chrdump renders the CHR-ROM of a .nes file as a PNG of grey tiles
// laid out in rows. This is the raw pattern table data; the palette
// the game actually uses lives in the PPU which isn't emulated.
package main

import (
	"flag"
	"image/png"
	"os"

	"github.com/golang/glog"
	"github.com/jmchacon/rp2a03/chr"
	"github.com/jmchacon/rp2a03/ines"
)

var (
	scale  = flag.Int("scale", 1, "Integer factor to enlarge the output by.")
	perRow = flag.Int("per_row", chr.DefaultPerRow, "Tiles per row in the output.")
	out    = flag.String("out", "", "PNG file to write. Defaults to the input name with .png added.")
)

func main() {
	flag.Parse()
	defer glog.Flush()
	if len(flag.Args()) != 1 {
		glog.Exitf("Invalid command: %s [-scale N -per_row N -out <file>] <filename.nes>", os.Args[0])
	}
	fn := flag.Args()[0]
	f, err := os.Open(fn)
	if err != nil {
		glog.Exitf("Can't open %s - %v", fn, err)
	}
	rom, err := ines.Read(f)
	f.Close()
	if err != nil {
		glog.Exitf("Can't parse %s - %v", fn, err)
	}
	if len(rom.CHR) == 0 {
		glog.Exitf("%s has no CHR-ROM (board uses CHR-RAM)", fn)
	}

	img := chr.Scale(chr.Sheet(rom.CHR, *perRow), *scale)
	glog.V(1).Infof("%d tiles rendered to %dx%d", len(rom.CHR)/chr.TileSize, img.Bounds().Dx(), img.Bounds().Dy())

	o := *out
	if o == "" {
		o = fn + ".png"
	}
	of, err := os.Create(o)
	if err != nil {
		glog.Exitf("Can't open output %q - %v", o, err)
	}
	if err := png.Encode(of, img); err != nil {
		glog.Exitf("Can't encode PNG to %q - %v", o, err)
	}
	if err := of.Close(); err != nil {
		glog.Exitf("Error closing %q - %v", o, err)
	}
}
