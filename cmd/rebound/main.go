// Package main implements the rebound launcher, which runs a command with
// librebound preloaded so that its IPv4 listeners bind to a chosen address.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/lanrat/rebound"
	"github.com/spf13/pflag"
)

// Command-line flags
var (
	ipAddr       = pflag.String("ip", "", "IPv4 address listening sockets are bound to (REBOUND_IP)")
	libPath      = pflag.String("lib", "", "path to librebound.so (default: next to this executable)")
	freebind     = pflag.Bool("freebind", false, "allow binding to addresses not assigned to this host")
	configPath   = pflag.String("config", "", "profile file (default: $XDG_CONFIG_HOME/rebound/rebound.ini)")
	profileName  = pflag.StringP("profile", "p", "", "profile section to load from the config file")
	verbose      = pflag.BoolP("verbose", "v", false, "enable verbose logging")
	printVersion = pflag.Bool("version", false, "print version and exit")
)

// Global variables
var (
	// l is the logger used throughout the launcher
	l = rebound.NewLogger(os.Stderr).Sugar()
	// version is the application version string, set at build time
	version = "dev"
)

// exitNotFound is what shells return when a command cannot be run.
const exitNotFound = 127

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s: [OPTION]... [--] COMMAND [ARG]...\n\tExample: %s --ip 192.0.2.10 -- nc -l 8080\nOPTIONS:\n", os.Args[0], os.Args[0])
		pflag.PrintDefaults()
	}
	// everything after the command belongs to the command
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if *printVersion {
		fmt.Println(showVersion())
		return
	}

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	opts, err := loadOptions()
	if err != nil {
		l.Fatal(err)
	}

	for _, w := range checkOverride(opts) {
		l.Warn(w)
	}
	v("running %q with ip=%s lib=%s freebind=%t", pflag.Args(), opts.IP, opts.Lib, opts.Freebind)

	code, err := run(context.Background(), opts, pflag.Args(), os.Environ())
	if err != nil {
		l.Error(err)
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			os.Exit(exitNotFound)
		}
		os.Exit(1)
	}
	os.Exit(code)
}

// loadOptions layers the command-line flags over the selected profile.
func loadOptions() (Options, error) {
	path, required := *configPath, true
	if path == "" {
		path, required = defaultConfigPath(), false
	}
	p, err := loadProfile(path, *profileName, required)
	if err != nil {
		return Options{}, err
	}

	flags := pflag.CommandLine
	if flags.Changed("ip") {
		p.IP = *ipAddr
	}
	if flags.Changed("lib") {
		p.Lib = *libPath
	}
	if flags.Changed("freebind") {
		p.Freebind = *freebind
	}

	opts, err := p.toOptions()
	if err != nil {
		return opts, err
	}
	if opts.Lib == "" {
		opts.Lib, err = findLibrary()
	}
	return opts, err
}

// v logs a message if verbose logging is enabled.
func v(format string, a ...any) {
	if *verbose {
		l.Infof(format, a...)
	}
}

// showVersion returns a formatted version string for display.
func showVersion() string {
	return fmt.Sprintf("Version: %s", version)
}
