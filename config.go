package rebound

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Environment variables read on every bind.
const (
	EnvIP       = "REBOUND_IP"
	EnvFreebind = "REBOUND_FREEBIND"
	EnvCompat   = "REBOUND_COMPAT"
)

// Config is the per-call configuration of the shim.
//
// It is parsed again on every bind and never cached, so a process that
// changes its environment between binds gets the new override.
type Config struct {
	// IP is the override address as configured, unparsed.
	IP       string `env:"REBOUND_IP"`
	// HasIP is set when REBOUND_IP is present, even if empty.
	HasIP    bool `env:"-"`
	// Freebind enables IP_FREEBIND (IP_BINDANY) before rewritten binds.
	Freebind bool `env:"REBOUND_FREEBIND"`
	// Compat returns EINVAL as the result of a failed symbol lookup, like
	// the C shim did, instead of -1 with errno set.
	Compat   bool `env:"REBOUND_COMPAT"`
}

// LoadConfig parses Config from environ, a list of KEY=value entries as
// returned by os.Environ. When one of the boolean options is malformed the
// error is returned along with a Config that has both options off and the
// override intact.
func LoadConfig(environ []string) (Config, error) {
	vars := envMap(environ)
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	cfg.IP, cfg.HasIP = vars[EnvIP]
	if err != nil {
		cfg.Freebind, cfg.Compat = false, false
		return cfg, err
	}
	return cfg, nil
}

// envMap indexes environ by key. The first entry for a key wins, as with
// getenv.
func envMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		if _, dup := vars[k]; !dup {
			vars[k] = v
		}
	}
	return vars
}
