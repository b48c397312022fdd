// Command nesgo runs an iNES ROM in an ebiten window.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kbuilds/nesgo/emulator"
	"github.com/kbuilds/nesgo/ppu"
)

var (
	romFile = flag.String("rom", "", "Path to the iNES ROM to run.")
	scale   = flag.Int("scale", 2, "Window scale factor.")
	frames  = flag.Int("frames", 0, "Exit after this many frames (0 runs until the window closes).")
)

// Buttons, as bits into emulator.SetController1/2:
// 0-A 1-B 2-Select 3-Start 4-Up 5-Down 6-Left 7-Right
var keys = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

type game struct {
	emu    *emulator.Emulator
	frame  *ppu.FrameBuffer
	ticked int
}

func pollButtons() uint8 {
	var b uint8
	for i, k := range keys {
		if ebiten.IsKeyPressed(k) {
			b |= 1 << i
		}
	}
	return b
}

// Update runs one PPU frame's worth of CPU instructions, the ebiten-driven
// equivalent of the teacher's free-running console.Bus.Run loop.
func (g *game) Update() error {
	g.emu.SetController1(pollButtons())

	frame, err := g.emu.RunFrame()
	if err != nil {
		return err
	}
	g.frame = frame

	g.ticked++
	if *frames > 0 && g.ticked >= *frames {
		os.Exit(0)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	for y := 0; y < ppu.FrameHeight; y++ {
		for x := 0; x < ppu.FrameWidth; x++ {
			c := g.frame.At(x, y)
			screen.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

func main() {
	flag.Parse()
	if *romFile == "" {
		log.Fatal("missing required -rom flag")
	}

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("reading ROM: %v", err)
	}

	emu, err := emulator.New(data)
	if err != nil {
		log.Fatalf("loading ROM: %v", err)
	}

	ebiten.SetWindowSize(ppu.FrameWidth**scale, ppu.FrameHeight**scale)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{emu: emu}); err != nil {
		log.Fatal(err)
	}
}
