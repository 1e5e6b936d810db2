package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform/pkg/prompt"
)

func (a *app) fillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <definition>",
		Short: "Fill a form interactively and print its data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			opts := []prompt.Option{
				prompt.WithMaxAttempts(a.cfg.Prompt.MaxAttempts),
				prompt.WithLogger(a.logger),
			}
			if a.driver != nil {
				opts = append(opts, prompt.WithPromptDriver(a.driver))
			} else {
				opts = append(opts, prompt.WithPromptDriver(prompt.NewSurveyDriver(a.errOut)))
			}

			errs, err := prompt.New(opts...).Fill(cmd.Context(), f)
			if err != nil {
				return err
			}
			if errs != nil {
				a.report(f, errs)
				return errInvalid
			}

			out, err := json.MarshalIndent(f.GetData(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode data: %w", err)
			}
			_, err = fmt.Fprintln(a.out, string(out))
			return err
		},
	}
	cmd.Flags().Int("max-attempts", 0, "prompt rounds before giving up (default from config)")
	return cmd
}
