// Package main provides the tensorkit CLI: image preprocessing on top of the
// tensor engine.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const version = "v0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "tensorkit"
	app.Usage = "Preprocess images into normalized tensors"
	app.Version = version
	app.UseShortOptionHandling = true

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "version",
			Usage: "Show version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "tensorkit %s\n", version)
				return nil
			},
		},
		{
			Name:      "preprocess",
			Usage:     "Resize, convert and normalize images; print per-channel statistics",
			ArgsUsage: "<image>...",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config,c", Usage: "YAML pipeline config"},
				cli.BoolFlag{Name: "no-table", Usage: "Render pure text instead of table"},
				cli.IntFlag{Name: "jobs,j", Value: 4, Usage: "Images processed concurrently"},
				cli.StringFlag{Name: "out,o", Usage: "Save the normalized tensors to a SafeTensors file"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return errMissingImage
				}
				return preprocess(c.App.Writer, preprocessArgs{
					ConfigPath: c.String("config"),
					NoTable:    c.Bool("no-table"),
					Jobs:       c.Int("jobs"),
					Out:        c.String("out"),
					Paths:      c.Args(),
				})
			},
		},
		{
			Name:      "inspect",
			Usage:     "Show raw pixel statistics",
			ArgsUsage: "<image>...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "no-table", Usage: "Render pure text instead of table"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return errMissingImage
				}
				return inspect(c.App.Writer, c.Args(), c.Bool("no-table"))
			},
		},
		{
			Name:      "show",
			Usage:     "List the tensors stored in a SafeTensors file",
			ArgsUsage: "<file.safetensors>",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "no-table", Usage: "Render pure text instead of table"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return errMissingFile
				}
				return show(c.App.Writer, c.Args().First(), c.Bool("no-table"))
			},
		},
	}
	return app
}
