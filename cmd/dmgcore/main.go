// Command dmgcore runs a ROM in a terminal window. Grounded on the
// teacher's root main.go (urfave/cli App with a single Action, ROM path
// as a flag or positional argument), with a log-mode flag added per
// spec.md §6.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/danhale/dmgcore"
	"github.com/danhale/dmgcore/debug"
	"github.com/danhale/dmgcore/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Description = "A Game Boy (DMG) emulator core"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "log",
			Usage: "Two-digit log mode, e.g. -log 21 enables INFO+PPU",
			Value: "00",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	mode, err := parseLogFlag(c.String("log"))
	if err != nil {
		return err
	}

	console, err := dmgcore.New(romPath, debug.New(mode))
	if err != nil {
		return err
	}
	defer console.Close()

	term, err := render.NewTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	return console.Run(term, nil, term)
}

func parseLogFlag(v string) (uint8, error) {
	if len(v) != 2 {
		return 0, fmt.Errorf("dmgcore: -log must be exactly two digits, got %q", v)
	}
	tens := v[0] - '0'
	ones := v[1] - '0'
	if tens > 9 || ones > 9 {
		return 0, fmt.Errorf("dmgcore: -log must be two decimal digits, got %q", v)
	}
	return debug.ParseMode(tens, ones), nil
}
