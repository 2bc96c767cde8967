package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// relayed are forwarded to the child instead of stopping the launcher.
var relayed = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// run starts args with the shim preloaded and waits for it, relaying signals
// until it exits. It returns the exit code the launcher should exit with.
func run(ctx context.Context, opts Options, args []string, environ []string) (int, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = childEnv(environ, opts)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, relayed...)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	done := make(chan struct{})
	var g errgroup.Group

	// wait for the child
	g.Go(func() error {
		defer close(done)
		err := cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// reported through ProcessState
			return nil
		}
		return err
	})

	// relay signals
	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			case sig := <-sigs:
				v("relaying %s to %d", sig, cmd.Process.Pid)
				if err := cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
					l.Warnf("relaying %s: %v", sig, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return exitCode(cmd.ProcessState), nil
}

// exitCode maps a finished child to a shell style exit code.
func exitCode(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}
