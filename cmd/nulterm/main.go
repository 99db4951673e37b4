// Command nulterm inspects null-terminated code unit sequences.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/nulterm/core/logging"
	"github.com/usnistgov/nulterm/core/yamlflag"
	"github.com/usnistgov/nulterm/mk/version"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/arena"
	"github.com/usnistgov/nulterm/ntstr/codec"
	"github.com/usnistgov/nulterm/ntstr/rodata"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var logger = logging.New("main")

// Config contains nulterm configuration.
type Config struct {
	Arena    arena.Config  `json:"arena"`
	Literals rodata.Config `json:"literals"`
}

var (
	cfg      Config
	mem      *arena.Arena
	literals *rodata.Pool
)

var app = &cli.App{
	Version: version.Get().String(),
	Usage:   "Inspect null-terminated code unit sequences.",
	Flags: []cli.Flag{
		&cli.GenericFlag{
			Name:  "config",
			Usage: "YAML `document` with 'arena' and 'literals' sections, or @file.yaml",
			Value: yamlflag.New(&cfg),
		},
	},
	Before: func(c *cli.Context) (e error) {
		logger.Debug("config", zap.Any("config", cfg))
		mem = arena.New(cfg.Arena)
		literals, e = rodata.New(cfg.Literals)
		return e
	},
	After: func(c *cli.Context) (e error) {
		if literals != nil {
			e = multierr.Append(e, literals.Close())
		}
		if mem != nil {
			e = multierr.Append(e, mem.Close())
		}
		cfg, mem, literals = Config{}, nil, nil
		return e
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func widthFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "width",
		Aliases: []string{"w"},
		Value:   8,
		Usage:   "code unit size in `bits`: 8, 16, or 32",
	}
}

func literalFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "literal",
		Usage: "place input in read-only literal storage",
	}
}

// byWidth invokes the function matching the --width flag.
func byWidth(c *cli.Context, f8, f16, f32 func(c *cli.Context) error) error {
	switch w := c.Int("width"); w {
	case 8:
		return f8(c)
	case 16:
		return f16(c)
	case 32:
		return f32(c)
	default:
		return fmt.Errorf("unsupported width %d", w)
	}
}

func borrow[T ntstr.Unit](c *cli.Context, s string) (ntstr.View[T], error) {
	if c.Bool("literal") {
		return rodata.Intern[T](literals, s)
	}
	return codec.Borrow[T](s)
}

func unitValues[T ntstr.Unit](v ntstr.View[T]) (values []uint32) {
	values = []uint32{}
	for _, u := range v.Append(nil) {
		values = append(values, uint32(u))
	}
	return values
}

func printJSON(c *cli.Context, value any) error {
	return json.NewEncoder(c.App.Writer).Encode(value)
}

func main() {
	sort.Sort(cli.CommandsByName(app.Commands))
	e := app.Run(os.Args)
	if e != nil {
		log.Fatal(e)
	}
}
