// Package config loads the injected data-fix tables: the unpublished bill
// id list and the manual sponsor overrides. Both are pure data consumed by
// the publisher; keeping them in a config file keeps case-by-case business
// logic out of the engine.
//
// Config files are YAML, validated against an embedded CUE schema before
// unmarshalling so that a malformed file fails loudly at startup instead of
// silently dropping overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/legisync/internal/bill"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default.yaml
var defaultYAML []byte

// SponsorOverride assigns a fixed other-sponsor list to one bill id.
type SponsorOverride struct {
	BillID        string   `yaml:"bill_id"`
	OtherSponsors []string `yaml:"other_sponsors"`
}

// Config holds the data-fix tables applied at save time.
type Config struct {
	UnpublishedBills []string          `yaml:"unpublished_bills"`
	SponsorOverrides []SponsorOverride `yaml:"sponsor_overrides"`

	unpublished map[string]bool
	overrides   map[string][]bill.Person
}

// Parse validates raw YAML against the embedded schema and unmarshals it.
func Parse(data []byte) (*Config, error) {
	schema, err := schemaValue()
	if err != nil {
		return nil, err
	}
	if err := cueyaml.Validate(data, schema); err != nil {
		return nil, fmt.Errorf("config does not match schema: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.index()
	return &cfg, nil
}

// Load reads and parses a config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// Default returns the built-in config carrying the historical sponsor
// overrides. The embedded file is part of the binary, so a parse failure is
// a programming error and panics.
func Default() *Config {
	defaultOnce.Do(func() {
		cfg, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded default config invalid: %v", err))
		}
		defaultCfg = cfg
	})
	return defaultCfg
}

// IsUnpublished reports whether the bill id is on the never-publish list.
func (c *Config) IsUnpublished(billID string) bool {
	return c.unpublished[billID]
}

// OtherSponsorOverride returns the manual other-sponsor list for a bill id,
// if one is configured.
func (c *Config) OtherSponsorOverride(billID string) ([]bill.Person, bool) {
	people, ok := c.overrides[billID]
	return people, ok
}

func (c *Config) index() {
	c.unpublished = make(map[string]bool, len(c.UnpublishedBills))
	for _, id := range c.UnpublishedBills {
		c.unpublished[id] = true
	}
	c.overrides = make(map[string][]bill.Person, len(c.SponsorOverrides))
	for _, o := range c.SponsorOverrides {
		people := make([]bill.Person, 0, len(o.OtherSponsors))
		for _, name := range o.OtherSponsors {
			people = append(people, bill.NewPerson(name))
		}
		c.overrides[o.BillID] = people
	}
}

func schemaValue() (cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile config schema: %w", err)
	}
	schema := v.LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup #Config: %w", err)
	}
	return schema, nil
}
