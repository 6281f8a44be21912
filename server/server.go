// Package server configures the web server an installation runs on.
//
// Server configuration is a collaborator of the generator: the generator
// only calls Configure and aborts when it fails. Mutations of the server
// configuration store are serialized across processes with a named mutex
// (see Locked), and a configurator may start a missing local server and
// try once more (see RetryAfterStart).
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/mutex/v2"
	"github.com/juju/retry"
)

// MutexName identifies the process-wide critical region around server
// configuration changes.
const MutexName = "ewl-server-manager"

// ErrNotRunning is returned by configurators when the local web server is
// not running.
var ErrNotRunning = errors.New("server: web server is not running")

// Configurator brings the server into the state the installation needs.
type Configurator interface {
	Configure(ctx context.Context) error
}

// The ConfiguratorFunc type is an adapter to allow the use of ordinary
// functions as Configurator.
type ConfiguratorFunc func(context.Context) error

// Configure calls f(ctx).
func (f ConfiguratorFunc) Configure(ctx context.Context) error {
	return f(ctx)
}

// Nop is a Configurator that does nothing.
type Nop struct{}

// Configure implements Configurator.
func (Nop) Configure(context.Context) error { return nil }

// Command configures the server by running an external command, for
// example a site provisioning script.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Configure runs the command and reports its output on failure.
func (c *Command) Configure(ctx context.Context) error {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("server: %s: %w", c.Name, err)
		}
		return fmt.Errorf("server: %s: %w: %s", c.Name, err, msg)
	}
	return nil
}

// Locked runs a configurator inside the named process mutex so that two
// concurrent invocations never mutate the server configuration at once.
type Locked struct {
	Configurator Configurator
	// Name of the mutex; MutexName when empty.
	Name  string
	Clock clock.Clock
	// Delay between attempts to acquire the mutex.
	Delay time.Duration
	// Timeout of the acquisition; no timeout when zero.
	Timeout time.Duration
}

// NewLocked returns c guarded by the default mutex.
func NewLocked(c Configurator) *Locked {
	return &Locked{
		Configurator: c,
		Name:         MutexName,
		Clock:        clock.WallClock,
		Delay:        100 * time.Millisecond,
	}
}

// Configure acquires the mutex, configures the server and releases the
// mutex. Cancelling ctx abandons the acquisition.
func (l *Locked) Configure(ctx context.Context) error {
	spec := mutex.Spec{
		Name:    l.Name,
		Clock:   l.Clock,
		Delay:   l.Delay,
		Timeout: l.Timeout,
		Cancel:  ctx.Done(),
	}
	if spec.Name == "" {
		spec.Name = MutexName
	}
	if spec.Clock == nil {
		spec.Clock = clock.WallClock
	}
	if spec.Delay <= 0 {
		spec.Delay = 100 * time.Millisecond
	}
	releaser, err := mutex.Acquire(spec)
	if err != nil {
		return fmt.Errorf("server: acquire %s: %w", spec.Name, err)
	}
	defer releaser.Release()
	return l.Configurator.Configure(ctx)
}

// RetryAfterStart retries a configurator once after starting the local web
// server, when the first attempt fails because the server is not running.
// Any other failure is returned as is.
type RetryAfterStart struct {
	Configurator Configurator
	// Start starts the local web server.
	Start func(ctx context.Context) error
	// NotRunning reports whether an error means the server is not running.
	// errors.Is(err, ErrNotRunning) when nil.
	NotRunning func(error) bool
	Clock      clock.Clock
	// Delay between starting the server and the second attempt.
	Delay time.Duration
}

// Configure implements Configurator.
func (r *RetryAfterStart) Configure(ctx context.Context) error {
	notRunning := r.NotRunning
	if notRunning == nil {
		notRunning = func(err error) bool { return errors.Is(err, ErrNotRunning) }
	}
	args := retry.CallArgs{
		Attempts: 2,
		Delay:    r.Delay,
		Clock:    r.Clock,
		Stop:     ctx.Done(),
	}
	if args.Delay <= 0 {
		args.Delay = time.Second
	}
	if args.Clock == nil {
		args.Clock = clock.WallClock
	}
	var (
		started  bool
		startErr error
	)
	args.Func = func() error {
		if startErr != nil {
			return startErr
		}
		return r.Configurator.Configure(ctx)
	}
	args.IsFatalError = func(err error) bool {
		return startErr != nil || !notRunning(err)
	}
	// NotifyFunc also runs after the last failed attempt; the server is
	// started at most once.
	args.NotifyFunc = func(error, int) {
		if started {
			return
		}
		started = true
		if err := r.Start(ctx); err != nil {
			startErr = fmt.Errorf("server: start web server: %w", err)
		}
	}
	if err := retry.Call(args); err != nil {
		return retry.LastError(err)
	}
	return nil
}

var (
	_ Configurator = Nop{}
	_ Configurator = ConfiguratorFunc(nil)
	_ Configurator = (*Command)(nil)
	_ Configurator = (*Locked)(nil)
	_ Configurator = (*RetryAfterStart)(nil)
)
