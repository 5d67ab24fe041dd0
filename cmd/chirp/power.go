package main

import (
	"context"
	"time"

	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/ageir/chirp-rpi/soil"
	"github.com/urfave/cli/v2"
)

var sleepCmd = cli.Command{
	Name:  "sleep",
	Usage: "put the sensor into deep sleep",
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
		if err := sensor.Sleep(context.Background()); err != nil {
			return console.Exit(1, "sensor communication error: %s", console.Red(err))
		}
		console.PInfof(console.PictoSleep, "sensor entered deep sleep")
		return nil
	},
}

var wakeCmd = cli.Command{
	Name:  "wake",
	Usage: "wake the sensor from deep sleep",
	Flags: append(busFlags(),
		&cli.DurationFlag{
			Name:  "wait",
			Value: time.Second,
			Usage: "time to wait for the sensor to boot",
		},
	),
	Action: func(c *cli.Context) error {
		if c.Duration("wait") < time.Second {
			console.Warnf("wake delays below one second are unreliable")
		}
		bus, closeBus, err := openBus(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		defer closeBus()
		opts, err := sensorOptions(c)
		if err != nil {
			return console.Exit(64, "%s", console.Red(err))
		}
		opts = append(opts, soil.WithWakeDelay(c.Duration("wait")))
		sensor := soil.NewChirp(bus, opts...)
		if err := sensor.WakeUp(context.Background()); err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		console.PInfof(console.PictoSeedling, "sensor is awake")
		return nil
	},
}

var resetCmd = cli.Command{
	Name:  "reset",
	Usage: "reset the sensor microcontroller",
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
		if err := sensor.Reset(context.Background()); err != nil {
			return console.Exit(1, "sensor communication error: %s", console.Red(err))
		}
		console.Print("sensor reset")
		return nil
	},
}
