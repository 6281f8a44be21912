package gen

import (
	"bytes"
	"text/template"

	"github.com/lithammer/dedent"

	"github.com/syssam/ewl/compiler/load"
)

// serviceTemplate is the fixed shape of a Windows service bundle: the
// entry point, the installer and the service type declaration.
var serviceTemplate = template.Must(template.New("service").Parse(dedent.Dedent(`
	// {{ .Header }}

	// Package generated holds the entry point of the {{ .Name }} service.
	package generated // import "{{ .Namespace }}/generated"

	import (
		"context"
		"fmt"
		"log/slog"
		"os"
		"os/exec"
		"os/signal"
	)

	// ServiceName is the name the service is registered under.
	const ServiceName = {{ printf "%q" .Name }}

	// Runner is implemented by the hand-written part of the service.
	type Runner interface {
		// Run blocks until ctx is cancelled or the service fails.
		Run(ctx context.Context) error
	}

	// {{ .Type }} is the {{ .Name }} service.
	type {{ .Type }} struct {
		Runner
	}

	// Name returns the service name.
	func ({{ .Type }}) Name() string { return ServiceName }

	// Installer registers the service with the service control manager.
	type Installer struct {
		// Executable is the service binary; the running binary when empty.
		Executable string
	}

	// Install registers the service to start automatically.
	func (i Installer) Install(ctx context.Context) error {
		exe := i.Executable
		if exe == "" {
			var err error
			if exe, err = os.Executable(); err != nil {
				return err
			}
		}
		return sc(ctx, "create", ServiceName, "binPath=", exe, "start=", "auto")
	}

	// Uninstall removes the service registration.
	func (Installer) Uninstall(ctx context.Context) error {
		return sc(ctx, "delete", ServiceName)
	}

	func sc(ctx context.Context, args ...string) error {
		out, err := exec.CommandContext(ctx, "sc.exe", args...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("sc %s: %w: %s", args[0], err, out)
		}
		return nil
	}

	// Main is the entry point of the service binary. The arguments
	// "install" and "uninstall" manage the registration; otherwise the
	// service runs until interrupted.
	func Main(r Runner) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		var err error
		if len(os.Args) > 1 {
			switch os.Args[1] {
			case "install":
				err = Installer{}.Install(ctx)
			case "uninstall":
				err = Installer{}.Uninstall(ctx)
			default:
				err = fmt.Errorf("unknown command %q", os.Args[1])
			}
		} else {
			err = {{ .Type }}{Runner: r}.Run(ctx)
		}
		if err != nil {
			slog.Error("service failed", "service", ServiceName, "error", err)
			os.Exit(1)
		}
	}
`)))

// writeService regenerates the bundle of a Windows service.
func (g *Generator) writeService(s *load.WindowsService, path string) error {
	var buf bytes.Buffer
	err := serviceTemplate.Execute(&buf, map[string]string{
		"Header":    g.config.Header,
		"Name":      s.Name,
		"Namespace": s.Namespace,
		"Type":      Pascal(s.Name) + "Service",
	})
	if err != nil {
		return NewGenerationError("service", path, s.Name, err)
	}
	return writeSource("service", path, buf.Bytes())
}
