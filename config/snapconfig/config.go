// Package snapconfig reads the JSON configuration of the snapshotter: which
// hasher builds cache keys and which opaque digesters apply, in order.
//
// An example, with the defaults spelled out:
//
//	{
//	  "Hasher": "sha256",
//	  "Digesters": ["proto", "thrift", "binary", "text"],
//	  "StatsScope": "valuesnap"
//	}
package snapconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

// Config selects the snapshotter's collaborators.
type Config struct {
	// Hasher names the accumulator algorithm, see hashing.FactoryByName.
	Hasher string

	// Digesters names opaque digesters in the order they are tried. Empty
	// means snapshot.DefaultDigester.
	Digesters []string

	// StatsScope prefixes every stat the snapshotter and fingerprinter record.
	StatsScope string
}

// DefaultConfig is used when no configuration is given.
func DefaultConfig() Config {
	return Config{Hasher: hashing.SHA256}
}

var emptyJson = []byte("{}")

// Parse reads a Config from JSON text. Empty text yields DefaultConfig, and
// unknown fields are an error.
func Parse(text []byte) (Config, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		text = emptyJson
	}
	c := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("Couldn't parse config: %v", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	log.Debugf("config parsed to: %+v", c)
	return c, nil
}

// Validate checks that every named hasher and digester exists.
func (c Config) Validate() error {
	if _, err := c.Hashers(); err != nil {
		return err
	}
	_, err := c.Digester()
	return err
}

// Hashers resolves the configured hasher.
func (c Config) Hashers() (hashing.Factory, error) {
	return hashing.FactoryByName(c.Hasher)
}

// Digester builds the configured chain of opaque digesters.
func (c Config) Digester() (snapshot.OpaqueDigester, error) {
	if len(c.Digesters) == 0 {
		return snapshot.DefaultDigester(), nil
	}
	chain := make(snapshot.ChainDigester, 0, len(c.Digesters))
	for _, name := range c.Digesters {
		d, err := snapshot.DigesterByName(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, d)
	}
	return chain, nil
}

// Stats scopes stat as configured.
func (c Config) Stats(stat stats.StatsReceiver) stats.StatsReceiver {
	if c.StatsScope == "" || stat == nil {
		return stat
	}
	return stat.Scope(c.StatsScope)
}

// NewSnapshotter builds a Snapshotter from the configuration.
func (c Config) NewSnapshotter(stat stats.StatsReceiver) (*snapshot.Snapshotter, error) {
	hashers, err := c.Hashers()
	if err != nil {
		return nil, err
	}
	digester, err := c.Digester()
	if err != nil {
		return nil, err
	}
	return snapshot.NewSnapshotter(hashers, digester, c.Stats(stat)), nil
}

var configFileName = regexp.MustCompile(`^[[:alnum:]_-]*\.[[:alnum:]]*$`)

// GetConfigText finds the right text for a configFlag.
// If configFlag looks like a filename (of the form foo.bar where foo and bar
// are just alphanumeric), read it with asset from the config directory.
// Otherwise, assume it's the literal json text.
func GetConfigText(configFlag string, asset func(string) ([]byte, error)) ([]byte, error) {
	if configFileName.MatchString(configFlag) {
		name := path.Join("config", configFlag)
		log.Infof("Reading config file %v", name)
		text, err := asset(name)
		if err != nil {
			return nil, fmt.Errorf("Error loading config file %v: %v", name, err)
		}
		return text, nil
	}
	log.Debugf("Using --config as JSON config: %v", configFlag)
	return []byte(configFlag), nil
}
