package gen

import (
	"errors"
	"log/slog"
	"time"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/server"
)

// Option configures code generation.
type Option func(*Config) error

// WithInstallation sets the installation to regenerate.
func WithInstallation(inst *load.Installation) Option {
	return func(c *Config) error {
		if inst == nil {
			return NewConfigError("Installation", nil, "installation cannot be nil")
		}
		c.Installation = inst
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithBuilder sets the data access builder.
func WithBuilder(b DataAccessBuilder) Option {
	return func(c *Config) error {
		if b == nil {
			return NewConfigError("Builder", nil, "builder cannot be nil")
		}
		c.Builder = b
		return nil
	}
}

// WithOpener sets how configured databases are opened.
func WithOpener(o Opener) Option {
	return func(c *Config) error {
		if o == nil {
			return NewConfigError("Opener", nil, "opener cannot be nil")
		}
		c.Opener = o
		return nil
	}
}

// WithServerConfigurator sets the server configuration collaborator.
func WithServerConfigurator(s server.Configurator) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Server", nil, "configurator cannot be nil")
		}
		c.Server = s
		return nil
	}
}

// WithSchemaCompilers sets the two XML schema compilers.
func WithSchemaCompilers(xgen, xsdgen SchemaCompiler) Option {
	return func(c *Config) error {
		if xgen == nil || xsdgen == nil {
			return NewConfigError("SchemaCompilers", nil, "schema compilers cannot be nil")
		}
		c.Xgen, c.Xsdgen = xgen, xsdgen
		return nil
	}
}

// WithWebMetaLogic sets the page-wiring callback of web project bundles.
func WithWebMetaLogic(fn WebMetaLogic) Option {
	return func(c *Config) error {
		c.WebMetaLogic = fn
		return nil
	}
}

// WithDistribution sets the framework distribution root.
func WithDistribution(path string) Option {
	return func(c *Config) error {
		c.DistributionPath = path
		return nil
	}
}

// WithLicenseFile sets the license file copied into the library.
func WithLicenseFile(path string) Option {
	return func(c *Config) error {
		c.LicenseFile = path
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithIntrospectionTimeout bounds the introspection of each database.
func WithIntrospectionTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewConfigError("IntrospectionTimeout", d, "timeout must be positive")
		}
		c.IntrospectionTimeout = d
		return nil
	}
}

// WithCompilerTimeout bounds each XML schema compiler invocation.
func WithCompilerTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewConfigError("CompilerTimeout", d, "timeout must be positive")
		}
		c.CompilerTimeout = d
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:               DefaultHeader,
		Server:               server.Nop{},
		Xgen:                 &Xgen{},
		Xsdgen:               &Xsdgen{},
		Logger:               slog.Default(),
		IntrospectionTimeout: DefaultIntrospectionTimeout,
		CompilerTimeout:      DefaultCompilerTimeout,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Opener == nil {
		c.Opener = DefaultOpener(c.Logger)
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
