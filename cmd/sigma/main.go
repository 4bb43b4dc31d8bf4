package main

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lncvrt/sigma"
	"github.com/lncvrt/sigma/viewer"
	"github.com/urfave/cli/v2"
)

const compressFlag = "compress"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("3"))
	logger.SetStyles(styles)

	return logger
}

// arguments returns the positional arguments and whether compression was
// turned off. cli stops parsing flags at the first positional argument so a
// trailing --compress is picked out here.
func arguments(c *cli.Context) ([]string, bool) {
	noCompress := c.Bool(compressFlag)

	var args []string
	for _, arg := range c.Args().Slice() {
		if arg == "--"+compressFlag || arg == "-"+compressFlag {
			noCompress = true
			continue
		}
		args = append(args, arg)
	}

	return args, noCompress
}

func loadConfig(c *cli.Context, noCompress bool) (*sigma.Config, error) {
	cfg := sigma.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = sigma.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("colors") {
		cfg.Convert.Colors = c.Int("colors")
	}
	// Presence of the flag turns compression off
	if noCompress {
		cfg.Convert.Compress = false
	}

	return cfg, cfg.Validate()
}

func view(conv *sigma.Converter, path string, cfg *sigma.Config) error {
	canvas, err := conv.Canvas(path)
	if err != nil {
		return err
	}

	// A nil *image.NRGBA must not become a non-nil image.Image
	var m image.Image
	if canvas != nil {
		m = canvas
	}

	return viewer.Show(m, &viewer.Options{
		Title:  cfg.Viewer.Title,
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
	})
}

func action(c *cli.Context) error {
	args, noCompress := arguments(c)
	if len(args) < 1 || len(args) > 2 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	cfg, err := loadConfig(c, noCompress)
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv := sigma.New(newLogger(c.App.ErrWriter, c.Bool("verbose")))

	input := args[0]
	var output string
	if len(args) > 1 {
		output = args[1]
	}

	switch filepath.Ext(input) {
	case ".png":
		if output == "" {
			return cli.Exit("Output path must be provided when converting PNG to Sigma", 1)
		}
		err = conv.PNGToSigma(input, output, cfg.Convert.Options())
	case ".sigma":
		if len(args) < 2 {
			err = view(conv, input, cfg)
		} else {
			err = conv.SigmaToPNG(input, output)
		}
	default:
		return cli.Exit("Unsupported file format.", 1)
	}

	if err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "sigma"
	app.Usage = "sigma version of png"
	app.Version = "1.1.0"
	app.ArgsUsage = "INPUT [OUTPUT] [--compress]"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"SIGMA_CONFIG"},
			Usage:   "path to TOML configuration",
		},
		&cli.BoolFlag{
			Name:  compressFlag,
			Usage: "disable compression of sigma output",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce to at most `N` colors before encoding",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = action

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
