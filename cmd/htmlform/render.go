package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		dataFile string
		vars     []string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a form to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := readData(dataFile)
			if err != nil {
				return err
			}
			f.SetData(data)

			values, err := parseVars(vars)
			if err != nil {
				return err
			}
			html, err := f.Render(values)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(a.out, html)
				return err
			}
			if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("form written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataFile, "data", "", "YAML or JSON file with field values")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "template variable as key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func parseVars(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q, want key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
