package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/kestrel/internal/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a Kestrel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			file, src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			tokens := lexer.Tokenize(src)
			a.logger.Debug("%s: %d tokens", file, len(tokens))
			return r.Tokens(file, tokens)
		},
	}
}
