// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// st7567 draws a demo screen on a ST7567 LCD, or on the simulator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/st7567/gfx"
	"github.com/GermanBionicSystems/st7567/preview"
	"github.com/GermanBionicSystems/st7567/st7567"
	"github.com/GermanBionicSystems/st7567/st7567/st7567sim"
)

func pin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("invalid GPIO pin %q", name)
	}
	return p, nil
}

// compose draws the demo screen in the logical coordinates of d.
func compose(d *st7567.Dev, text string, size float64) error {
	w, h := d.Width(), d.Height()
	face, err := gfx.TrueType(goregular.TTF, size)
	if err != nil {
		return err
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1)
	for r := 6.0; r < float64(h)/2; r += 6 {
		dc.DrawCircle(float64(w)-float64(h)/2, float64(h)/2, r)
		dc.Stroke()
	}
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, float64(w)/2, float64(h)/2, 0.5, 0.5)
	gfx.Blit(d, 0, 0, dc.Image(), 0x8000)

	gfx.RoundRect(d, 0, 0, w, h, 4, true)
	info := fmt.Sprintf("%s c=%d", d.Rotation(), d.Contrast())
	gfx.FillRect(d, 2, h-14, gfx.TextWidth(gfx.Face7x13, info)+2, 12, false)
	gfx.Text(d, gfx.Face7x13, 3, h-4, info, true)
	return nil
}

func mainImpl() error {
	spiID := flag.String("spi", "", "SPI port to use")
	csName := flag.String("cs", "GPIO8", "chip select pin")
	dcName := flag.String("dc", "GPIO24", "data/command pin")
	rstName := flag.String("rst", "GPIO25", "reset pin; empty when tied high")
	hz := st7567.DefaultOpts.Frequency
	flag.Var(&hz, "hz", "SPI clock")
	contrast := flag.Int("contrast", st7567.DefaultContrast, "contrast, 0 to 63")
	rotation := flag.Int("rotation", 0, "rotation quadrant, 0 to 3")
	text := flag.String("text", "ST7567", "text to draw")
	fontSize := flag.Float64("font-size", 20, "text size in points")
	sim := flag.Bool("sim", false, "use the simulator and print the panel on the terminal")
	addr := flag.String("http", "", "serve a live view of the frame on this address, e.g. :8010")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *rotation < 0 || *rotation > 3 {
		return errors.New("-rotation must be between 0 and 3")
	}

	opts := st7567.DefaultOpts
	opts.Frequency = hz
	opts.Contrast = *contrast

	var d *st7567.Dev
	var s *st7567sim.Sim
	if *sim {
		s = st7567sim.New()
		var err error
		if d, err = st7567.New(s, s.CS, s.DC, s.RST, &opts); err != nil {
			return err
		}
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		p, err := spireg.Open(*spiID)
		if err != nil {
			return err
		}
		defer p.Close()
		if d, err = open(p, *csName, *dcName, *rstName, &opts); err != nil {
			return err
		}
	}
	log.Printf("%s", d)

	d.SetRotation(*rotation)
	if err := compose(d, *text, *fontSize); err != nil {
		return err
	}
	if err := d.Display(); err != nil {
		return err
	}

	if s != nil {
		term := preview.NewTerminal(&preview.TerminalOpts{W: st7567sim.Width, H: st7567sim.Height})
		if _, err := term.Write(s.Image().Pix); err != nil {
			return err
		}
		if err := term.Halt(); err != nil {
			return err
		}
		log.Printf("%d transfers", len(s.Transfers()))
	}

	if *addr != "" {
		stream := preview.NewStream(&preview.StreamOpts{W: st7567.Width, H: st7567.Height})
		if s != nil {
			if _, err := stream.Write(s.Image().Pix); err != nil {
				return err
			}
		} else if _, err := stream.Write(d.Buffer()[:]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "serving on %s\n", *addr)
		return http.ListenAndServe(*addr, stream)
	}
	return nil
}

func open(p spi.Port, cs, dc, rst string, opts *st7567.Opts) (*st7567.Dev, error) {
	csPin, err := pin(cs)
	if err != nil {
		return nil, err
	}
	dcPin, err := pin(dc)
	if err != nil {
		return nil, err
	}
	rstPin, err := pin(rst)
	if err != nil {
		return nil, err
	}
	return st7567.New(p, csPin, dcPin, rstPin, opts)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "st7567: %s.\n", err)
		os.Exit(1)
	}
}
