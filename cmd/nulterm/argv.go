package main

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"
	"github.com/usnistgov/nulterm/core/cptr"
)

type argvEntry struct {
	Index  int    `json:"index"`
	Value  string `json:"value"`
	Length int    `json:"length"`
}

func shellSplit(field, words string) (args []string, e error) {
	args, e = shellquote.Split(words)
	if e != nil {
		return nil, fmt.Errorf("%s: %w", field, e)
	}
	return args, nil
}

func init() {
	defineCommand(&cli.Command{
		Name:      "argv",
		Usage:     "Build a C argv array from shell words.",
		ArgsUsage: "WORDS",
		Action: func(c *cli.Context) (e error) {
			args, e := shellSplit("WORDS", strings.Join(c.Args().Slice(), " "))
			if e != nil {
				return e
			}

			a, e := cptr.NewCArgs(args)
			if e != nil {
				return e
			}
			defer func() {
				if ce := a.Close(); e == nil {
					e = ce
				}
			}()

			values := a.RemainingArgs(0)
			for i := range values {
				if e := printJSON(c, argvEntry{
					Index:  i,
					Value:  values[i],
					Length: a.View(i).Len(),
				}); e != nil {
					return e
				}
			}
			return nil
		},
	})
}
