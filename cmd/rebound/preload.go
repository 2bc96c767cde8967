package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lanrat/rebound"
)

const (
	preloadVar = "LD_PRELOAD"
	libName    = "librebound.so"
)

// findLibrary looks for librebound.so next to the launcher and in ../lib.
func findLibrary() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(exe)
	candidates := []string{
		filepath.Join(dir, libName),
		filepath.Join(dir, "..", "lib", libName),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return filepath.Clean(c), nil
		}
	}
	return "", fmt.Errorf("%s not found in %s, pass --lib", libName, strings.Join(candidates, " or "))
}

// childEnv returns environ with the library preloaded and the shim
// configured from opts. Existing LD_PRELOAD entries are kept after the
// library.
func childEnv(environ []string, opts Options) []string {
	env := make([]string, 0, len(environ)+3)
	preload := ""
	for _, kv := range environ {
		k, val, _ := strings.Cut(kv, "=")
		switch k {
		case preloadVar:
			if preload == "" {
				preload = val
			}
		case rebound.EnvIP, rebound.EnvFreebind:
		default:
			env = append(env, kv)
		}
	}
	env = append(env,
		preloadVar+"="+prependPreload(preload, opts.Lib),
		rebound.EnvIP+"="+opts.IP.String(),
	)
	if opts.Freebind {
		env = append(env, rebound.EnvFreebind+"=1")
	}
	return env
}

// prependPreload puts lib first in an LD_PRELOAD list, which ld.so splits on
// colons and spaces, dropping any later copy of it.
func prependPreload(list, lib string) string {
	libs := []string{lib}
	for _, entry := range strings.FieldsFunc(list, func(r rune) bool { return r == ':' || r == ' ' }) {
		if entry != lib {
			libs = append(libs, entry)
		}
	}
	return strings.Join(libs, ":")
}
