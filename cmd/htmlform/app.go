package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	gotheme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/internal/config"
	"github.com/goliatone/go-htmlform/pkg/definition"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/prompt"
	"github.com/goliatone/go-htmlform/pkg/theme"
)

// app holds what the commands share once the root command has loaded the
// configuration.
type app struct {
	out    io.Writer
	errOut io.Writer

	configFile string
	verbose    bool
	operation  string

	cfg    *config.Config
	logger *slog.Logger

	// driver overrides the survey prompt driver in tests.
	driver prompt.PromptDriver
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlform",
		Short: "Render and validate declarative HTML forms",
		Long: titleStyle.Render("htmlform") + mutedStyle.Render(" - render and validate declarative HTML forms") + `

A definition is a YAML or JSON document listing a form, its fields and
fieldsets. With --operation the document is read as OpenAPI 3 instead and the
form is derived from that operation's request body.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./htmlform.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	flags.StringVar(&a.operation, "operation", "", "read the document as OpenAPI and build this operation's form")
	flags.String("theme", "", "theme name")
	flags.String("variant", "", "theme variant")
	flags.String("theme-dir", "", "directory holding theme.yaml and its partials")
	flags.Bool("escape-attributes", false, "HTML-escape attribute values")
	flags.Bool("sanitize-html", false, "sanitize raw html values and notes")

	cmd.AddCommand(
		a.renderCmd(),
		a.validateCmd(),
		a.fillCmd(),
		a.serveCmd(),
		a.operationsCmd(),
	)
	return cmd
}

// init loads the configuration, letting flags the user set win over file
// and environment values, and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	overrides := map[string]any{}
	bind := map[string]string{
		"theme":             config.KeyRenderTheme,
		"variant":           config.KeyRenderVariant,
		"theme-dir":         config.KeyRenderThemeDir,
		"escape-attributes": config.KeyEscapeAttributes,
		"sanitize-html":     config.KeySanitizeHTML,
		"addr":              config.KeyServerAddr,
		"max-attempts":      config.KeyPromptAttempts,
	}
	for name, key := range bind {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		overrides[key] = flag.Value.String()
	}
	if a.verbose {
		overrides[config.KeyLogLevel] = "debug"
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: overrides})
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	handler := charmlog.NewWithOptions(a.errOut, charmlog.Options{
		Prefix:          config.AppName,
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
	})
	a.logger = slog.New(handler)
	return nil
}

func (a *app) builder() (*htmlform.Builder, error) {
	opts := []htmlform.Option{htmlform.WithLogger(a.logger)}
	if a.cfg.Render.EscapeAttributes {
		opts = append(opts, htmlform.WithEscapeAttributes())
	}
	if a.cfg.Render.SanitizeHTML {
		opts = append(opts, htmlform.WithFormOptions(form.WithSanitizer(bluemonday.UGCPolicy())))
	}

	if dir := a.cfg.Render.ThemeDir; dir != "" {
		files := os.DirFS(dir)
		manifest, err := gotheme.LoadDir(files, ".")
		if err != nil {
			return nil, fmt.Errorf("theme dir %s: %w", dir, err)
		}
		registry := gotheme.NewRegistry()
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theme dir %s: %w", dir, err)
		}
		selector := gotheme.Selector{Registry: registry, DefaultTheme: manifest.Name}
		rc, err := theme.Resolve(selector, a.cfg.Render.Theme, a.cfg.Render.Variant)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("theme resolved", slog.String("theme", rc.Theme), slog.String("variant", rc.Variant))
		opts = append(opts, htmlform.WithTheme(rc, files))
	}
	return htmlform.New(opts...), nil
}

// document loads location as a definition, or as OpenAPI with --operation.
func (a *app) document(ctx context.Context, b *htmlform.Builder, location string) (*definition.Document, error) {
	if a.operation != "" {
		return b.OpenAPIDocument(ctx, location, a.operation)
	}
	return b.Document(ctx, location)
}

func (a *app) loadForm(ctx context.Context, location string) (*form.Form, error) {
	b, err := a.builder()
	if err != nil {
		return nil, err
	}
	doc, err := a.document(ctx, b, location)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

// readData decodes a YAML or JSON object of field values, keeping key order.
func readData(path string) (*form.Data, error) {
	data := form.NewData()
	if path == "" {
		return data, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return data, nil
}

func (a *app) report(f *form.Form, errs form.Errors) {
	if errs == nil {
		fmt.Fprintln(a.out, successStyle.Render("✓ "+f.Name()+" is valid"))
		return
	}
	fmt.Fprintln(a.out, errorStyle.Render(fmt.Sprintf("✗ %s has %d invalid field(s)", f.Name(), len(errs))))
	for _, key := range f.FieldNames() {
		messages, ok := errs[key]
		if !ok {
			continue
		}
		fmt.Fprintln(a.out, "  "+titleStyle.Render(key))
		for _, msg := range messages {
			fmt.Fprintln(a.out, messageStyle.Render(msg))
		}
	}
}
