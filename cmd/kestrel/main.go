// Command kestrel parses Kestrel source files and reports diagnostics.
package main

import (
	"github.com/orizon-lang/kestrel/cmd/kestrel/cmd"
	"github.com/orizon-lang/kestrel/internal/cli"
)

func main() {
	cli.HandleError(cmd.Execute(), cli.NewLogger(false, false))
}
