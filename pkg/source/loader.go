package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"
)

// Options configures how a Loader resolves sources. HTTP is disabled unless a
// client is injected or AllowHTTP is set.
type Options struct {
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithFileSystem injects the fs.FS used by FromFS sources.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables HTTP loading with the default client and an optional
// timeout.
func WithHTTP(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// Loader reads documents from files, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader applies options and returns a Loader.
func NewLoader(options ...Option) *Loader {
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var client *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if cfg.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = cfg.RequestTimeout
		}
		client = &clone
	case cfg.AllowHTTP:
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Loader{
		fs:      cfg.FileSystem,
		http:    client,
		timeout: cfg.RequestTimeout,
	}
}

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("source: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case KindFile:
		data, err = loadFile(ctx, src.Location())
	case KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case KindURL:
		if l.http == nil {
			return nil, errors.New("source: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("source: unsupported kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("source: load %s: %w", src.Location(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("source: %s is empty", src.Location())
	}
	return data, nil
}
