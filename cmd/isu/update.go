package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/ewl/compiler/gen"
	"github.com/syssam/ewl/compiler/gen/sql"
	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/server"
)

// options are the flags shared by the generation commands.
type options struct {
	distribution         string
	license              string
	header               string
	xgen                 string
	xsdgen               string
	introspectionTimeout time.Duration
	compilerTimeout      time.Duration
	serverConfigure      string
	serverStart          string
	serverNotRunningCode int
}

func (o *options) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.distribution, "distribution", "", "root of the framework distribution to propagate files from")
	f.StringVar(&o.license, "license", "", "license file copied into the library")
	f.StringVar(&o.header, "header", gen.DefaultHeader, "header comment of generated Go files")
	f.StringVar(&o.xgen, "xgen", "xgen", "path of the xgen schema compiler")
	f.StringVar(&o.xsdgen, "xsdgen", "xsdgen", "path of the xsdgen schema compiler")
	f.DurationVar(&o.introspectionTimeout, "introspection-timeout", gen.DefaultIntrospectionTimeout, "bound on the introspection of each database")
	f.DurationVar(&o.compilerTimeout, "compiler-timeout", gen.DefaultCompilerTimeout, "bound on each schema compiler run")
	f.StringVar(&o.serverConfigure, "server-configure", "", "command configuring the web server")
	f.StringVar(&o.serverStart, "server-start", "", "command starting the local web server")
	f.IntVar(&o.serverNotRunningCode, "server-not-running-code", 2, "exit code of --server-configure meaning the server is not running")
}

// configurator builds the server configuration collaborator from the
// flags.
func (o *options) configurator() (server.Configurator, error) {
	if o.serverConfigure == "" {
		if o.serverStart != "" {
			return nil, errors.New("--server-start requires --server-configure")
		}
		return server.Nop{}, nil
	}
	configure, err := command(o.serverConfigure)
	if err != nil {
		return nil, fmt.Errorf("--server-configure: %w", err)
	}
	var c server.Configurator = configure
	if o.serverStart != "" {
		start, err := command(o.serverStart)
		if err != nil {
			return nil, fmt.Errorf("--server-start: %w", err)
		}
		code := o.serverNotRunningCode
		c = &server.RetryAfterStart{
			Configurator: configure,
			Start:        start.Configure,
			NotRunning: func(err error) bool {
				var ee *exec.ExitError
				return errors.Is(err, server.ErrNotRunning) || errors.As(err, &ee) && ee.ExitCode() == code
			},
		}
	}
	return server.NewLocked(c), nil
}

func command(s string) (*server.Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	return &server.Command{Name: fields[0], Args: fields[1:]}, nil
}

// generator loads the installation and builds a generator for it.
func (o *options) generator(path string, logger *slog.Logger) (*gen.Generator, error) {
	inst, err := load.File(path)
	if err != nil {
		return nil, err
	}
	srv, err := o.configurator()
	if err != nil {
		return nil, err
	}
	return gen.NewGenerator(
		gen.WithInstallation(inst),
		gen.WithBuilder(sql.NewBuilder()),
		gen.WithHeader(o.header),
		gen.WithServerConfigurator(srv),
		gen.WithSchemaCompilers(&gen.Xgen{Path: o.xgen}, &gen.Xsdgen{Path: o.xsdgen}),
		gen.WithDistribution(o.distribution),
		gen.WithLicenseFile(o.license),
		gen.WithLogger(logger),
		gen.WithIntrospectionTimeout(o.introspectionTimeout),
		gen.WithCompilerTimeout(o.compilerTimeout),
	)
}

// run regenerates the installation once.
func (o *options) run(ctx context.Context, path string, logger *slog.Logger) error {
	g, err := o.generator(path, logger)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := g.Run(ctx); err != nil {
		if gen.IsUserCorrectable(err) {
			return fmt.Errorf("%w (correct the problem and run again)", err)
		}
		return err
	}
	logger.Info("dependent logic updated", "installation", g.Config().Installation.Path, "duration", time.Since(start))
	return nil
}

func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return load.FileName
}

func newUpdateCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:     "update-dependent-logic [installation.yaml]",
		Aliases: []string{"update"},
		Short:   "Regenerate all code and configuration derived from the installation",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), configPath(args), slog.Default())
		},
	}
	o.register(cmd)
	return cmd
}
