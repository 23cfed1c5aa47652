// Package config is the ambient configuration layer for the chain-facts
// service and CLI: a YAML/JSON-loadable Config plus the teacher's
// copier-based Copy() convention. None of this is consumed by the core
// fact-extraction packages (term, oid, certmodel, extfacts, certfacts,
// chainquery), which take their input as plain Go values and never read
// configuration or log.
package config

import (
	"encoding/json"
	"io/ioutil"
	"strings"
	"time"

	"github.com/go-phorce/chainfacts/xlog"
	"github.com/jinzhu/copier"
	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

var logger = xlog.NewPackageLogger("github.com/go-phorce/chainfacts", "config")

// Config is the chain-facts service's configuration.
type Config struct {
	// ListenAddr is the address the HTTP facts service listens on.
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`

	// TrustBundle lists PEM files of trust-anchor roots. It is only
	// loaded from the configuration file: the serve command does not read
	// these files, and each request's Query.Roots come from the request.
	TrustBundle []string `json:"trust_bundle,omitempty" yaml:"trust_bundle,omitempty"`

	// ClockSkew is a clock-skew allowance. It is only loaded from the
	// configuration file: a request without its own timestamp gets the
	// plain server time as Query.Now, with no skew added.
	ClockSkew time.Duration `json:"clock_skew,omitempty" yaml:"clock_skew,omitempty"`

	// Logging configures the rotating log file, when non-nil.
	Logging *LogConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// LogConfig configures lumberjack-backed log rotation.
type LogConfig struct {
	Directory  string `json:"directory,omitempty" yaml:"directory,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
}

// Copy returns a deep copy of the configuration.
func (c *Config) Copy() *Config {
	d := new(Config)
	copier.Copy(d, c)
	return d
}

// LoadConfig loads the configuration stored at path, dispatching on its
// extension (".json" vs. anything else, treated as YAML).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("invalid path")
	}

	body, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "unable to read configuration file")
	}

	cfg := new(Config)
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(body, cfg)
	} else {
		err = yaml.Unmarshal(body, cfg)
	}
	if err != nil {
		return nil, errors.Annotate(err, "failed to unmarshal configuration")
	}

	if cfg.ListenAddr == "" {
		logger.Infof("reason=no_listen_addr, using_default=:8443")
		cfg.ListenAddr = ":8443"
	}

	return cfg, nil
}
