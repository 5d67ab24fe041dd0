package main

import (
	"context"

	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/ageir/chirp-rpi/soil"
	"github.com/urfave/cli/v2"
)

var versionCmd = cli.Command{
	Name:  "fw-version",
	Usage: "print the sensor firmware version",
	Flags: busFlags(),
	Action: func(c *cli.Context) error {
		bus, closeBus, err := openBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer closeBus()
		opts, err := sensorOptions(c)
		if err != nil {
			return console.Exit(64, "%s", console.Red(err))
		}
		sensor := soil.NewChirp(bus, opts...)
		fw, err := sensor.Version(context.Background())
		if err != nil {
			return console.Exit(1, "sensor communication error: %s", console.Red(err))
		}
		console.Printf("firmware version: %#x\n", fw)
		return nil
	},
}
