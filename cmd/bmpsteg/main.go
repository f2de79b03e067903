package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/bodgit/bmpsteg"
	"github.com/bodgit/bmpsteg/config"
	"github.com/bodgit/bmpsteg/pattern"
	"github.com/bodgit/bmpsteg/seal"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func setup(c *cli.Context) (*bmpsteg.Session, *config.Config, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") || conf.Verbose {
		logger.SetOutput(os.Stderr)
	}

	workers := conf.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	return bmpsteg.New(logger, workers), conf, nil
}

func passphraseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "passphrase",
		Aliases: []string{"p"},
		EnvVars: []string{"BMPSTEG_PASSPHRASE"},
		Usage:   "seal the message with `PASSPHRASE`",
	}
}

func generate(c *cli.Context) error {
	s, conf, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var src, dst string
	switch c.NArg() {
	case 1:
		if !c.IsSet("width") || !c.IsSet("height") {
			cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
		}
		dst = c.Args().First()
		if _, err := s.Blank(dst, c.Int("width"), c.Int("height")); err != nil {
			return cli.Exit(err, 1)
		}
	case 2:
		src, dst = c.Args().Get(0), c.Args().Get(1)
		if err := s.Select(src); err != nil {
			return cli.Exit(err, 1)
		}
	default:
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	cs := pattern.ColorScheme(conf.ColorScheme)
	if c.IsSet("color-scheme") {
		cs = pattern.ColorScheme(c.String("color-scheme"))
	}

	expr := conf.Expression
	if c.IsSet("red") || c.IsSet("green") || c.IsSet("blue") {
		expr = pattern.Expression{
			Red:   c.String("red"),
			Green: c.String("green"),
			Blue:  c.String("blue"),
		}
	}

	if !expr.IsZero() && !c.IsSet("pattern") {
		dst, err = s.GenerateExpression(expr, cs, dst)
	} else {
		p := pattern.Pattern(conf.Pattern)
		if c.IsSet("pattern") {
			p = pattern.Pattern(c.String("pattern"))
		}
		dst, err = s.Generate(p, cs, dst)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(dst)
	return nil
}

func hide(c *cli.Context) error {
	if c.NArg() < 3 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	s, _, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := s.Select(c.Args().Get(0)); err != nil {
		return cli.Exit(err, 1)
	}

	message := strings.Join(c.Args().Slice()[2:], " ")
	if passphrase := c.String("passphrase"); passphrase != "" {
		if message, err = seal.Seal(message, passphrase); err != nil {
			return cli.Exit(err, 1)
		}
	}

	dst, err := s.Hide(message, c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(dst)
	return nil
}

func reveal(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	s, _, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := s.Select(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}

	message, err := s.Reveal()
	if err != nil {
		return cli.Exit(err, 1)
	}

	if passphrase := c.String("passphrase"); passphrase != "" {
		if message, err = seal.Open(message, passphrase); err != nil {
			return cli.Exit(err, 1)
		}
	}

	fmt.Println(message)
	return nil
}

func capacity(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	s, _, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := s.Select(c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}

	n, err := s.Capacity()
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(n)
	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	s, conf, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	colors := conf.Colors
	if c.IsSet("colors") {
		colors = c.Int("colors")
	}

	dst, err := s.Convert(c.Args().Get(0), c.Args().Get(1), colors)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(dst)
	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	s, _, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	found, err := s.Scan(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, f := range found {
		fmt.Printf("%s: %s\n", f.File, f.Message)
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "bmpsteg"
	app.Usage = "BMP pattern generator and steganography utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"BMPSTEG_CONFIG"},
			Usage:   "load defaults from YAML `FILE`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "generate",
			Usage:     "Regenerate the pixels of a BMP file",
			ArgsUsage: "[SOURCE] DESTINATION",
			Description: "Regenerates every pixel of SOURCE using a pattern, or custom red, green and\n" +
				"blue formulas, followed by a color scheme. Without SOURCE a black image of\n" +
				"--width by --height pixels is used.\n\n" +
				"Patterns: " + strings.Join(pattern.Patterns(), ", ") + "\n" +
				"Color schemes: " + strings.Join(pattern.ColorSchemes(), ", "),
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "pattern",
					Usage: "pattern to generate",
				},
				&cli.StringFlag{
					Name:  "color-scheme",
					Usage: "color scheme to apply",
				},
				&cli.StringFlag{
					Name:  "red",
					Usage: "formula for the red channel",
				},
				&cli.StringFlag{
					Name:  "green",
					Usage: "formula for the green channel",
				},
				&cli.StringFlag{
					Name:  "blue",
					Usage: "formula for the blue channel",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "width of a new image",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "height of a new image",
				},
			},
			Action: generate,
		},
		{
			Name:      "hide",
			Usage:     "Hide a message in a BMP file",
			ArgsUsage: "SOURCE DESTINATION MESSAGE...",
			Flags:     []cli.Flag{passphraseFlag()},
			Action:    hide,
		},
		{
			Name:      "reveal",
			Usage:     "Reveal a message hidden in a BMP file",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{passphraseFlag()},
			Action:    reveal,
		},
		{
			Name:      "capacity",
			Usage:     "Print the longest message a BMP file can hold",
			ArgsUsage: "FILE",
			Action:    capacity,
		},
		{
			Name:      "convert",
			Usage:     "Convert a PNG, JPEG or GIF image to a 24-bit BMP file",
			ArgsUsage: "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce the image to at most `N` colors",
				},
			},
			Action: convert,
		},
		{
			Name:      "scan",
			Usage:     "Reveal messages in every BMP file under a directory",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					EnvVars: []string{"BMPSTEG_WORKERS"},
					Value:   config.DefaultWorkers,
					Usage:   "number of files to process concurrently",
				},
			},
			Action: scan,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
