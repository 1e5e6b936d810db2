package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform/pkg/openapi"
	"github.com/goliatone/go-htmlform/pkg/source"
)

func (a *app) operationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations <openapi>",
		Short: "List the operation IDs usable with --operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.Parse(args[0])
			if err != nil {
				return err
			}
			imp, err := openapi.Load(cmd.Context(), source.NewLoader(), src)
			if err != nil {
				return err
			}
			for _, id := range imp.OperationIDs() {
				if _, err := fmt.Fprintln(a.out, id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
