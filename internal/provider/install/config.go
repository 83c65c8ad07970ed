// Package install provides the package installation directive: a dnf
// package from a repository or a remote .rpm, guarded by a probe command.
package install

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/converge/internal/validation"
)

// RemoteExtension is the archive extension accepted for remote installs.
const RemoteExtension = ".rpm"

// Configuration errors.
var (
	ErrMissingProbe     = errors.New("'if_fail' must be defined")
	ErrMultilineProbe   = errors.New("'if_fail' does not support multiline command")
	ErrPackageSource    = errors.New("either 'install_from_repo' or 'install_from_remote_file' must be defined")
	ErrRemoteNotArchive = errors.New("remote file must be an RPM file")
)

// Config represents the install section of an entry.
type Config struct {
	IfFail                string
	Repo                  string
	InstallFromRepo       string
	InstallFromRemoteFile string
}

var knownKeys = map[string]bool{
	"if_fail":                  true,
	"repo":                     true,
	"install_from_repo":        true,
	"install_from_remote_file": true,
}

// ParseConfig parses the install configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	if unknown := unknownKeys(raw); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown install key(s): %s", strings.Join(unknown, ", "))
	}

	cfg := &Config{}
	fields := map[string]*string{
		"if_fail":                  &cfg.IfFail,
		"repo":                     &cfg.Repo,
		"install_from_repo":        &cfg.InstallFromRepo,
		"install_from_remote_file": &cfg.InstallFromRemoteFile,
	}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", key)
		}
		*dst = s
	}

	return cfg, nil
}

// Validate checks the install invariants: a single-line probe and exactly
// one package source, where a remote source names an .rpm archive.
func (c *Config) Validate() error {
	if c.IfFail == "" {
		return ErrMissingProbe
	}
	if strings.Contains(c.IfFail, "\n") {
		return ErrMultilineProbe
	}
	if err := validation.ValidateCommandLine(c.IfFail); err != nil {
		return fmt.Errorf("invalid 'if_fail': %w", err)
	}

	if (c.InstallFromRepo == "") == (c.InstallFromRemoteFile == "") {
		return ErrPackageSource
	}

	if c.Remote() {
		if !strings.HasSuffix(c.InstallFromRemoteFile, RemoteExtension) {
			return ErrRemoteNotArchive
		}
		if err := validation.ValidateURL(c.InstallFromRemoteFile); err != nil {
			return fmt.Errorf("invalid 'install_from_remote_file': %w", err)
		}
	} else if err := validation.ValidatePackageSpec(c.InstallFromRepo); err != nil {
		return fmt.Errorf("invalid 'install_from_repo': %w", err)
	}

	// repo is only used by repository installs but is checked either way.
	if c.Repo != "" {
		if err := validation.ValidateURL(c.Repo); err != nil {
			return fmt.Errorf("invalid 'repo': %w", err)
		}
	}
	return nil
}

// Remote returns true if the package comes from a remote archive.
func (c Config) Remote() bool {
	return c.InstallFromRemoteFile != ""
}

// PackageSpec returns the configured package source.
func (c Config) PackageSpec() string {
	if c.Remote() {
		return c.InstallFromRemoteFile
	}
	return c.InstallFromRepo
}

func unknownKeys(raw map[string]interface{}) []string {
	var unknown []string
	for key := range raw {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
