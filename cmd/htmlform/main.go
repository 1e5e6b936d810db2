// Command htmlform renders, validates, fills and serves declarative forms.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newApp(os.Stdout, os.Stderr).rootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+exitErr.Err.Error())
		}
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
