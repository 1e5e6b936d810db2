package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var dataFile string
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate field values against a form",
		Long:  "Validate field values against a form. Exits with status 1 when any field is invalid.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataFile == "" {
				return errors.New("--data is required")
			}
			f, err := a.loadForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := readData(dataFile)
			if err != nil {
				return err
			}

			errs := f.Validate(data)
			a.report(f, errs)
			if errs != nil {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataFile, "data", "", "YAML or JSON file with field values")
	return cmd
}
