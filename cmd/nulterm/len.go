package main

import (
	"github.com/urfave/cli/v2"
	"github.com/usnistgov/nulterm/ntstr"
)

type lenResult struct {
	Input   string `json:"input"`
	Width   int    `json:"width"`
	Length  int    `json:"length"`
	Size    int    `json:"size"`
	Bytes   int    `json:"bytes"`
	Literal bool   `json:"literal,omitempty"`
}

func lenAction[T ntstr.Unit](c *cli.Context) error {
	for _, s := range c.Args().Slice() {
		v, e := borrow[T](c, s)
		if e != nil {
			return e
		}
		w := ntstr.Width[T]()
		if e := printJSON(c, lenResult{
			Input:   s,
			Width:   w * 8,
			Length:  v.Len(),
			Size:    v.Size(),
			Bytes:   v.Size() * w,
			Literal: c.Bool("literal"),
		}); e != nil {
			return e
		}
	}
	return nil
}

func init() {
	defineCommand(&cli.Command{
		Name:      "len",
		Usage:     "Compute length and storage size of sequences.",
		ArgsUsage: "STRING...",
		Flags:     []cli.Flag{widthFlag(), literalFlag()},
		Action: func(c *cli.Context) error {
			return byWidth(c, lenAction[ntstr.Char], lenAction[ntstr.Char16], lenAction[ntstr.WChar])
		},
	})
}
