package main

import (
	"fmt"
	"strings"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"
	"github.com/spf13/cobra"
)

func newRouteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route <iri>",
		Short: "Find the kind of an IRI",
		Long: "Matches the IRI against the templates of the kinds catalog named by\n" +
			"catalog.path and prints the resolution as a document.\n",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.resolver()
			if err != nil {
				return err
			}
			res, ok := r.Resolve(args[0])
			if !ok {
				return errors.Invalidf(errors.ErrNoMatch, "enola", "route", "no kind matches %s", args[0])
			}
			t, err := res.Thing()
			if err != nil {
				return err
			}
			return a.writeThings([]thing.Thing{t})
		},
	}
}

func newExpandCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <kind> [name=value]...",
		Short: "Build the IRI of an entity of a kind",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				name, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected name=value, got %q", arg)
				}
				vars[name] = value
			}
			r, err := a.resolver()
			if err != nil {
				return err
			}
			iri, err := r.Expand(args[0], vars)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, iri)
			return err
		},
	}
}
