package main

import (
	"fmt"
	"strconv"

	chirp "github.com/ageir/chirp-rpi"
	"github.com/ageir/chirp-rpi/adapter"
	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/ageir/chirp-rpi/gobotadapter"
	"github.com/ageir/chirp-rpi/i2c"
	"github.com/ageir/chirp-rpi/soil"
	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gobot.io/x/gobot/v2/platforms/raspi"
)

func busFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Value:   "raspi",
			Usage:   "bus adapter (raspi, nanopi, generic, mcp2221)",
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Value:   "/dev/i2c-1",
			Usage:   "i2c device for the generic adapter",
		},
		&cli.StringFlag{
			Name:  "addr",
			Value: "0x20",
			Usage: "sensor I2C address",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "sensor yaml config file",
		},
	}
}

func openBus(c *cli.Context) (chirp.RegisterBus, func(), error) {
	switch c.String("adapter") {
	case "mcp2221":
		a := adapter.NewMCP2221()
		if err := a.Init(); err != nil {
			return nil, nil, err
		}
		return a, func() {}, nil
	case "generic":
		bus, err := i2c.NewGenericBus(c.String("device"))
		if err != nil {
			return nil, nil, err
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				console.Errorf("error closing bus: %s", console.Red(err))
			}
		}, nil
	case "raspi":
		adaptor := raspi.NewAdaptor()
		if err := adaptor.Connect(); err != nil {
			return nil, nil, err
		}
		bus := gobotadapter.New(adaptor, adaptor.DefaultI2cBus())
		return bus, func() {
			_ = bus.Close()
			_ = adaptor.Finalize()
		}, nil
	case "nanopi":
		adaptor := nanopi.NewNeoAdaptor()
		if err := adaptor.Connect(); err != nil {
			return nil, nil, err
		}
		bus := gobotadapter.New(adaptor, adaptor.DefaultI2cBus())
		return bus, func() {
			_ = bus.Close()
			_ = adaptor.Finalize()
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
}

func parseAddress(s string) (byte, error) {
	// accepts 0x-prefixed hex or plain decimal
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid I2C address %q: %w", s, err)
	}
	return byte(v), nil
}

func sensorOptions(c *cli.Context) ([]soil.Opt, error) {
	config := soil.DefaultConfig()
	if c.IsSet("config") {
		var err error
		config, err = soil.LoadConfig(c.String("config"))
		if err != nil {
			return nil, err
		}
	}
	opts := config.Options()
	if c.IsSet("addr") || c.String("config") == "" {
		addr, err := parseAddress(c.String("addr"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, soil.WithAddress(addr))
	}
	if c.IsSet("min-moist") != c.IsSet("max-moist") {
		return nil, fmt.Errorf("calibration requires both --min-moist and --max-moist")
	}
	if c.IsSet("min-moist") {
		opts = append(opts, soil.WithCalibration(c.Int("min-moist"), c.Int("max-moist")))
	}
	if c.IsSet("scale") {
		opts = append(opts, soil.WithScale(soil.Scale(c.String("scale"))))
	}
	if c.IsSet("offset") {
		opts = append(opts, soil.WithTempOffset(c.Float64("offset")))
	}
	return opts, nil
}
