package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"

	"github.com/lanrat/rebound"
	"gopkg.in/ini.v1"
)

// Options is what the launcher hands to the preloaded library.
type Options struct {
	IP       netip.Addr
	Lib      string
	Freebind bool
}

// profileIni is a profile as written in the config file:
//
//	ip = 192.0.2.10
//
//	[staging]
//	ip = 198.51.100.4
//	freebind = true
//
// Keys outside any section apply to every profile.
type profileIni struct {
	IP       string `ini:"ip"`
	Lib      string `ini:"lib"`
	Freebind bool   `ini:"freebind"`
}

func (p *profileIni) toOptions() (Options, error) {
	var o Options
	if p.IP == "" {
		return o, fmt.Errorf("no address to bind to, pass --ip or set ip in a profile")
	}
	ip, err := rebound.ParseOverride(p.IP)
	if err != nil {
		return o, err
	}
	o.IP = ip
	o.Lib = p.Lib
	o.Freebind = p.Freebind
	return o, nil
}

// defaultConfigPath returns $XDG_CONFIG_HOME/rebound/rebound.ini, or "" when
// there is no config directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rebound", "rebound.ini")
}

// loadProfile reads the named profile from path. The default section is
// applied first and the named section over it. A missing file is only an
// error when required is set or a profile was asked for.
func loadProfile(path, name string, required bool) (profileIni, error) {
	var p profileIni
	if path == "" {
		if name != "" {
			return p, fmt.Errorf("profile %q requested but no config file found", name)
		}
		return p, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required && name == "" {
			return p, nil
		}
		return p, fmt.Errorf("loading %s: %w", path, err)
	}

	if err := cfg.Section(ini.DefaultSection).MapTo(&p); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	if name == "" {
		return p, nil
	}
	sec, err := cfg.GetSection(name)
	if err != nil {
		return p, fmt.Errorf("profile %q not found in %s", name, path)
	}
	if err := sec.MapTo(&p); err != nil {
		return p, fmt.Errorf("%s [%s]: %w", path, name, err)
	}
	return p, nil
}
