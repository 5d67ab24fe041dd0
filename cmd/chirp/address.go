package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/ageir/chirp-rpi/soil"
	"github.com/urfave/cli/v2"
)

var setAddressCmd = cli.Command{
	Name:      "set-address",
	Aliases:   []string{"set"},
	Usage:     "assign a new I2C address to the sensor",
	ArgsUsage: "<new address>",
	Flags: append(busFlags(),
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "skip the confirmation prompt",
		},
	),
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return console.Exit(64, "usage: chirp set-address [--addr 0x20] <new address>")
		}
		newAddr, err := parseAddress(c.Args().First())
		if err != nil {
			return console.Exit(64, "%s", console.Red(err))
		}
		current, err := parseAddress(c.String("addr"))
		if err != nil {
			return console.Exit(64, "%s", console.Red(err))
		}
		if !c.Bool("yes") {
			answer, err := console.YesOrNo(fmt.Sprintf("change sensor address %#x -> %#x?", current, newAddr))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				console.Print("aborted")
				return nil
			}
		}
		bus, closeBus, err := openBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer closeBus()
		sensor := soil.NewChirp(bus, soil.WithAddress(current))
		if err := sensor.SetAddress(context.Background(), newAddr); err != nil {
			if errors.Is(err, soil.ErrInvalidAddress) {
				return console.Exit(64, "%s", console.Red(err))
			}
			return console.Exit(1, "error setting address: %s", console.Red(err))
		}
		console.Printf("sensor address changed to %#x\n", newAddr)
		return nil
	},
}
