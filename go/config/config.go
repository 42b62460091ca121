// Package config resolves where the converter reads its test vectors from and
// where it writes the binary output.
package config

import (
	"bytes"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInputName is the SECP384R1 SHA-384 verification suite.
	DefaultInputName  = "ecdsa_secp384r1_sha384_test.json"
	DefaultOutputName = DefaultInputName + ".bin"
	DefaultRemoteBase = "https://raw.githubusercontent.com/C2SP/wycheproof/refs/heads/master/testvectors/"

	OutputSuffix = ".bin"
)

var ErrNotJSON = errors.New("config: remote test vector is not a json file")

// Config holds the options of one conversion. Empty locations select the
// defaults, see Resolve.
type Config struct {
	InputLocation  string `yaml:"input"`
	OutputLocation string `yaml:"output"`

	// FetchRemote downloads the input from RemoteBase first.
	// RemoteOverrideName replaces DefaultInputName as the remote file and
	// implies FetchRemote.
	FetchRemote        bool          `yaml:"fetch"`
	RemoteOverrideName string        `yaml:"remote_name"`
	RemoteBase         string        `yaml:"remote_base"`
	FetchTimeout       time.Duration `yaml:"fetch_timeout"`
	FetchRetries       int           `yaml:"fetch_retries"`

	// TestDir is searched for DefaultInputName when no location is given.
	TestDir string `yaml:"test_dir"`
}

func Default() *Config {
	return &Config{
		RemoteBase:   DefaultRemoteBase,
		FetchTimeout: 2 * time.Second,
		FetchRetries: 2,
	}
}

// Load reads a YAML configuration file on top of Default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "config: failed to read %q", filename)
	}
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "config: failed to parse %q", filename)
	}
	return c, nil
}

// Plan is a resolved Config.
type Plan struct {
	// Input is empty when RemoteURL has to be downloaded first.
	Input     string
	Output    string
	RemoteURL string
}

func (p *Plan) Fetches() bool {
	return p.RemoteURL != ""
}

// Resolve picks the input and output locations.
//
//   - fetching: the remote file is DefaultInputName or RemoteOverrideName
//     below RemoteBase; the output is named after it unless given.
//   - only an input: the output is the input with OutputSuffix appended.
//   - only an output: the input is DefaultInputName.
//   - neither: DefaultInputName, inside TestDir if set, to DefaultOutputName.
func (c *Config) Resolve() (*Plan, error) {
	if c.FetchRemote || c.RemoteOverrideName != "" {
		return c.resolveRemote()
	}

	p := &Plan{Input: c.InputLocation, Output: c.OutputLocation}
	switch {
	case p.Input != "" && p.Output == "":
		p.Output = p.Input + OutputSuffix
	case p.Input == "" && p.Output != "":
		p.Input = DefaultInputName
	case p.Input == "" && p.Output == "":
		p.Input = DefaultInputName
		if c.TestDir != "" {
			p.Input = filepath.Join(c.TestDir, DefaultInputName)
		}
		p.Output = DefaultOutputName
	}
	return p, nil
}

func (c *Config) resolveRemote() (*Plan, error) {
	name := DefaultInputName
	if c.RemoteOverrideName != "" {
		if path.Ext(c.RemoteOverrideName) != ".json" {
			return nil, errors.Wrapf(ErrNotJSON, "requested %q", c.RemoteOverrideName)
		}
		name = c.RemoteOverrideName
	}
	base := c.RemoteBase
	if base == "" {
		base = DefaultRemoteBase
	}
	remote, err := url.Parse(strings.TrimSuffix(base, "/") + "/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "config: invalid remote base %q", base)
	}
	if !remote.IsAbs() {
		return nil, errors.Errorf("config: remote location must be absolute: %q", remote)
	}

	p := &Plan{RemoteURL: remote.String(), Output: c.OutputLocation}
	if p.Output == "" {
		p.Output = path.Base(remote.Path) + OutputSuffix
	}
	return p, nil
}
