package main

import (
	"context"
	"os"

	"github.com/ageir/chirp-rpi/adapter"
	"github.com/ageir/chirp-rpi/cmd/chirp/console"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var mcp2221Cmd = cli.Command{
	Name:  "mcp2221",
	Usage: "MCP2221 usb bridge maintenance",
	Subcommands: cli.Commands{
		&mcp2221StatusCmd,
		&mcp2221ReleaseCmd,
	},
}

var mcp2221StatusCmd = cli.Command{
	Name:  "status",
	Usage: "print the bridge I2C engine status",
	Action: func(c *cli.Context) error {
		a := adapter.NewMCP2221()
		status, err := a.Status(context.Background())
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		err = enc.Encode(status)
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var mcp2221ReleaseCmd = cli.Command{
	Name:  "release",
	Usage: "cancel the current I2C transfer and release the bus",
	Action: func(c *cli.Context) error {
		a := adapter.NewMCP2221()
		status, err := a.ReleaseBus(context.Background())
		if err != nil {
			return console.Exit(1, "adapter communication error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		err = enc.Encode(status)
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}
