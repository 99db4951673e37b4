package main

import (
	"errors"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/nulterm/core/subtract"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/arena"
)

type dupResult struct {
	Input    string      `json:"input"`
	Units    []uint32    `json:"units"`
	Length   int         `json:"length"`
	Cap      int         `json:"cap"`
	Equal    bool        `json:"equal"`
	Held     arena.Stats `json:"held"`
	Delta    arena.Stats `json:"delta"`
	Released arena.Stats `json:"released"`
}

func dupAction[T ntstr.Unit](c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expect exactly one STRING")
	}
	s := c.Args().First()
	v, e := borrow[T](c, s)
	if e != nil {
		return e
	}

	res := dupResult{Input: s}
	before := mem.Stats()
	if e := ntstr.With(mem, v, func(b *ntstr.Buffer[T]) error {
		res.Units = unitValues(b.View())
		res.Length, res.Cap = b.Len(), b.Cap()
		res.Equal = ntstr.Equal(v, b.View())
		res.Held = mem.Stats()
		res.Delta = subtract.Sub(res.Held, before)
		return nil
	}); e != nil {
		return e
	}
	res.Released = mem.Stats()
	return printJSON(c, res)
}

func init() {
	defineCommand(&cli.Command{
		Name:      "dup",
		Usage:     "Duplicate a sequence into the arena.",
		ArgsUsage: "STRING",
		Flags:     []cli.Flag{widthFlag(), literalFlag()},
		Action: func(c *cli.Context) error {
			return byWidth(c, dupAction[ntstr.Char], dupAction[ntstr.Char16], dupAction[ntstr.WChar])
		},
	})
}
