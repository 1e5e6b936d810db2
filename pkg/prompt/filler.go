package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// Filler asks for form values on a terminal and validates them with the
// form's own rules.
type Filler struct {
	driver      PromptDriver
	maxAttempts int
	logger      *slog.Logger
}

// New builds a Filler backed by the survey driver unless WithPromptDriver says
// otherwise.
func New(opts ...Option) *Filler {
	f := &Filler{
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts every fillable field, validates, then asks again for the
// fields that failed until they pass or the attempts run out. Hidden, html
// and submit inputs are never asked for, and neither are disabled or
// readonly fields. The answers are left on the form.
//
// The returned Errors is nil when the form is valid; err is set only when
// prompting itself failed.
func (p *Filler) Fill(ctx context.Context, f *form.Form) (form.Errors, error) {
	if f == nil {
		return nil, ErrNilForm
	}

	data := f.GetData()
	pending := fillable(f)

	var errs form.Errors
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		for _, key := range pending {
			field, _ := f.Field(key)
			value, err := p.ask(ctx, key, field, data.Value(key))
			if err != nil {
				return nil, fmt.Errorf("prompt: field %q: %w", key, err)
			}
			data.Set(key, value)
		}

		errs = f.Validate(data)
		f.SetData(data)
		p.logger.Debug("prompt attempt validated",
			slog.String("form", f.Name()),
			slog.Int("attempt", attempt),
			slog.Int("invalid_fields", len(errs)),
		)
		if errs == nil {
			return nil, nil
		}

		pending = slices.DeleteFunc(fillable(f), func(key string) bool {
			return !errs.Has(key)
		})
		if len(pending) == 0 || attempt == p.maxAttempts {
			break
		}
		if err := p.report(ctx, f, pending, errs); err != nil {
			return nil, err
		}
	}
	return errs, nil
}

func (p *Filler) report(ctx context.Context, f *form.Form, keys []string, errs form.Errors) error {
	for _, key := range keys {
		field, _ := f.Field(key)
		msg := fmt.Sprintf("✗ %s: %s", label(key, field), strings.Join(errs[key], " "))
		if err := p.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Filler) ask(ctx context.Context, key string, field *form.Field, value any) (any, error) {
	cfg := field.Config()
	message := label(key, field)
	current := form.StringValues(value)

	switch field.InputType() {
	case "select", "radio":
		values, texts := choices(cfg)
		if field.InputType() == "select" && !cfg.Required {
			values = append([]string{""}, values...)
			texts = append([]string{cfg.EmptyOptionText}, texts...)
		}
		defaultIndex := 0
		if len(current) > 0 {
			defaultIndex = max(slices.Index(values, current[0]), 0)
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      texts,
			DefaultIndex: defaultIndex,
			Help:         cfg.Note,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(values) {
			return "", nil
		}
		return values[idx], nil

	case "checkbox":
		values, texts := choices(cfg)
		if len(values) == 1 {
			ok, err := p.driver.Confirm(ctx, ConfirmConfig{
				Message: message,
				Default: slices.Contains(current, values[0]),
				Help:    cfg.Note,
			})
			if err != nil || !ok {
				return "", err
			}
			return values[0], nil
		}
		var defaults []int
		for i, v := range values {
			if slices.Contains(current, v) {
				defaults = append(defaults, i)
			}
		}
		picked, err := p.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  texts,
			Defaults: defaults,
			Help:     cfg.Note,
		})
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(values) {
				out = append(out, values[idx])
			}
		}
		return out, nil

	case "textarea":
		return p.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: strings.Join(current, "\n"),
			Help:    cfg.Note,
		})

	case "password":
		return p.driver.Password(ctx, InputConfig{
			Message: message,
			Help:    cfg.Note,
		})
	}

	return p.driver.Input(ctx, InputConfig{
		Message: message,
		Default: strings.Join(current, ","),
		Help:    cfg.Note,
	})
}

func fillable(f *form.Form) []string {
	var keys []string
	for _, key := range f.FieldNames() {
		field, _ := f.Field(key)
		switch field.InputType() {
		case "html", "submit", "hidden":
			continue
		}
		cfg := field.Config()
		if cfg.Disabled || cfg.Readonly {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func choices(cfg form.FieldConfig) (values, texts []string) {
	if cfg.Options == nil {
		return nil, nil
	}
	cfg.Options.Range(func(value, text string) bool {
		values = append(values, value)
		texts = append(texts, text)
		return true
	})
	return values, texts
}

func label(key string, field *form.Field) string {
	cfg := field.Config()
	if cfg.Label != "" {
		return cfg.Label
	}
	if cfg.Name != "" {
		return cfg.Name
	}
	return key
}
