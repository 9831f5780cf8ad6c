package main

import (
	"fmt"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/spf13/cobra"
)

func newDatatypeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datatype",
		Short: "Inspect the datatype registry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List datatypes in matching order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.datatypes()
			if err != nil {
				return err
			}
			for _, c := range repo.Codecs() {
				pattern := "-"
				if c.Pattern() != nil {
					pattern = c.Pattern().String()
				}
				if _, err := fmt.Fprintf(a.out, "%s\t%s\n", c.IRI(), pattern); err != nil {
					return err
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "match <text>...",
		Short: "Print the datatype each text would be read as",
		Long: "Prints one line per text with the IRI of the first datatype whose\n" +
			"pattern matches it, or \"-\" when the text stays a plain string.\n",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.datatypes()
			if err != nil {
				return err
			}
			for _, text := range args {
				iri := "-"
				c, err := repo.Match(text)
				switch {
				case err == nil:
					iri = c.IRI()
				case !errors.IsNoMatch(err):
					return err
				}
				if _, err := fmt.Fprintf(a.out, "%s\t%s\n", text, iri); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}
