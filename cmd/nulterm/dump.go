package main

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/nulterm/ntstr"
	"github.com/usnistgov/nulterm/ntstr/codec"
)

type dumpResult struct {
	Input string   `json:"input"`
	Order string   `json:"order,omitempty"`
	Units []uint32 `json:"units"`
	Hex   string   `json:"hex"`
}

func dumpAction[T ntstr.Unit](c *cli.Context) error {
	order, e := codec.ParseOrder(c.String("order"))
	if e != nil {
		return e
	}
	for _, s := range c.Args().Slice() {
		v, e := borrow[T](c, s)
		if e != nil {
			return e
		}
		res := dumpResult{
			Input: s,
			Units: unitValues(v),
			Hex:   hex.EncodeToString(codec.Bytes(v, order)),
		}
		if ntstr.Width[T]() > 1 {
			res.Order = c.String("order")
		}
		if e := printJSON(c, res); e != nil {
			return e
		}
	}
	return nil
}

func init() {
	defineCommand(&cli.Command{
		Name:      "dump",
		Usage:     "Show serialized form of sequences, including terminator.",
		ArgsUsage: "STRING...",
		Flags: []cli.Flag{
			widthFlag(),
			literalFlag(),
			&cli.StringFlag{
				Name:  "order",
				Value: "le",
				Usage: "byte `order` of wide units: le or be",
			},
		},
		Action: func(c *cli.Context) error {
			return byWidth(c, dumpAction[ntstr.Char], dumpAction[ntstr.Char16], dumpAction[ntstr.WChar])
		},
	})
}
