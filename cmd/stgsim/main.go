// Command stgsim drives stgkit arenas and hash tables with compiler-like
// workloads.
//
//	stgsim symtab -symbols 100000 -jobs 4 -mmap
//	stgsim hash -direct 5 9 5
package main

import (
	"io"
	"os"

	"github.com/maruel/subcommands"
)

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

func getApplication() *subcommands.DefaultApplication {
	return &subcommands.DefaultApplication{
		Name:  "stgsim",
		Title: "exercise stg arenas and hashtab tables",
		Commands: []*subcommands.Command{
			cmdSymtab(),
			cmdHash(),
			subcommands.CmdHelp,
		},
	}
}

func main() {
	os.Exit(subcommands.Run(getApplication(), nil))
}
