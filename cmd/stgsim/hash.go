package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/maruel/subcommands"

	"github.com/hupe1980/stgkit/hashtab"
)

func cmdHash() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "hash [-direct | -crc32c] [-combine] [values...]",
		ShortDesc: "print table hashes of values",
		LongDesc: `Print the hash a table computes for each value.

Values come from the arguments, or from stdin lines when there are none.
By default values are hashed as strings. With -direct they are parsed as
integers (decimal, 0x hex, 0o octal or 0b binary) and hashed by value.
With -crc32c strings are hashed with CRC32-Castagnoli instead.
With -combine all values are folded into a single accumulator instead.

 $ stgsim hash main argc argv
 $ seq 1 10 | stgsim hash -direct
`,
		CommandRun: func() subcommands.CommandRun {
			c := &hashRun{}
			c.init()
			return c
		},
	}
}

type hashRun struct {
	subcommands.CommandRunBase

	direct  bool
	crc32c  bool
	combine bool
}

func (c *hashRun) init() {
	c.Flags.BoolVar(&c.direct, "direct", false, "hash values as integers")
	c.Flags.BoolVar(&c.crc32c, "crc32c", false, "hash strings with CRC32-Castagnoli")
	c.Flags.BoolVar(&c.combine, "combine", false, "fold all values into one hash")
}

func (c *hashRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.validate(); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 2
	}
	values := args
	if len(values) == 0 {
		var err error
		values, err = readLines(stdin)
		if err != nil {
			fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
			return 1
		}
	}
	if err := c.run(a.GetOut(), values); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 1
	}
	return 0
}

func (c *hashRun) validate() error {
	if c.direct && c.crc32c {
		return errors.New("-direct and -crc32c are mutually exclusive")
	}
	return nil
}

func (c *hashRun) run(w io.Writer, values []string) error {
	direct := hashtab.Direct[int64]()
	strs := hashtab.Strings()
	if c.crc32c {
		strs = hashtab.StringsCRC32C()
	}

	accu := hashtab.NewAccu()
	for _, v := range values {
		if c.direct {
			n, err := strconv.ParseInt(v, 0, 64)
			if err != nil {
				return err
			}
			if c.combine {
				accu = accu.AddUint64(uint64(n))
				continue
			}
			fmt.Fprintf(w, "%08x  %s\n", direct.Hash(n), v)
			continue
		}
		if c.combine {
			if c.crc32c {
				accu = accu.Add(strs.Hash(v))
			} else {
				accu = accu.AddString(v)
			}
			continue
		}
		fmt.Fprintf(w, "%08x  %s\n", strs.Hash(v), v)
	}
	if c.combine {
		fmt.Fprintf(w, "%08x\n", accu.Finish().Value())
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
