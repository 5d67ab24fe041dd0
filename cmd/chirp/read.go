package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/ageir/chirp-rpi/soil"
	"github.com/urfave/cli/v2"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "continuously read soil moisture, temperature and light",
	Flags: append(busFlags(),
		&cli.IntFlag{
			Name:  "min-moist",
			Usage: "capacitance reading of the sensor in dry air",
		},
		&cli.IntFlag{
			Name:  "max-moist",
			Usage: "capacitance reading of the sensor submerged in water",
		},
		&cli.StringFlag{
			Name:  "scale",
			Usage: "temperature scale (celsius, fahrenheit, kelvin)",
		},
		&cli.Float64Flag{
			Name:  "offset",
			Usage: "temperature offset applied to every reading",
		},
		&cli.DurationFlag{
			Name:  "interval",
			Value: time.Second,
			Usage: "delay between measurement cycles",
		},
	),
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fw, err := sensor.Version(ctx)
		if err != nil {
			return console.Exit(1, "sensor communication error: %s", console.Red(err))
		}
		addr, err := sensor.Address(ctx)
		if err != nil {
			return console.Exit(1, "sensor communication error: %s", console.Red(err))
		}
		console.PInfof(console.PictoSeedling, "Chirp soil moisture sensor")
		console.Printf("firmware version: %#x\n", fw)
		console.Printf("i2c address:      %#x\n\n", addr)
		console.Print("press Ctrl-C to stop")
		console.Print("moisture        | temperature | light")
		console.Print(strings.Repeat("-", 40))

		var lowest, highest uint16
		var sampled bool
		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()
	loop:
		for {
			if err := sensor.Trigger(ctx); err != nil {
				if ctx.Err() != nil {
					break loop
				}
				return console.Exit(1, "sensor communication error: %s", console.Red(err))
			}
			printReadings(sensor)
			if m, ok := sensor.Moisture(); ok {
				if !sampled || m.Raw < lowest {
					lowest = m.Raw
				}
				if !sampled || m.Raw > highest {
					highest = m.Raw
				}
				sampled = true
			}
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
			}
		}
		if sampled {
			console.Printf("\nlowest moisture measured:  %d\n", lowest)
			console.Printf("highest moisture measured: %d\n", highest)
		}
		return nil
	},
}

func printReadings(sensor *soil.Chirp) {
	moisture := "      -"
	if m, ok := sensor.Moisture(); ok {
		moisture = fmt.Sprintf("%s %5d", console.PictoDroplet, m.Raw)
		if sensor.Calibrated() {
			if percent, err := sensor.Percent(); err == nil {
				moisture = fmt.Sprintf("%s %5.1f%%", moisture, percent)
			}
		}
	}
	temperature := "     -"
	if t, ok := sensor.Temperature(); ok {
		temperature = fmt.Sprintf("%s %.1f%s", console.PictoThermometer, t.Value, t.Scale.Sign())
	}
	light := "    -"
	if l, ok := sensor.Light(); ok {
		light = fmt.Sprintf("%s %5d", console.PictoSun, l.Raw)
	}
	console.Printf("%s | %s | %s\n", moisture, temperature, light)
}
