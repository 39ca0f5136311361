package config

import (
	"github.com/sphennings/Hakarl/pkg/cli"
)

type Feature int

const (
	FeatLineComments Feature = iota
	FeatBlockComments
	FeatMultilineStrings
	FeatCount
)

type Warning int

const (
	WarnStringEscape Warning = iota
	WarnOverflow
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
}

func NewConfig() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	features := map[Feature]Info{
		FeatLineComments:     {"line-comments", true, "Recognize '//' line comments."},
		FeatBlockComments:    {"block-comments", true, "Recognize '/* ... */' block comments."},
		FeatMultilineStrings: {"multiline-strings", true, "Allow string literals to span multiple lines."},
	}

	warnings := map[Warning]Info{
		WarnStringEscape: {"string-escape", true, "Warn on backslashes in string literals; escapes are not interpreted."},
		WarnOverflow:     {"overflow", true, "Warn when a number literal is out of range."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// SetAllWarnings flips every warning at once (the -Wall / -Wno-all path).
func (c *Config) SetAllWarnings(enabled bool) {
	for i := Warning(0); i < WarnCount; i++ {
		c.SetWarning(i, enabled)
	}
}

// SetupFlagGroups registers -F<feature>/-Fno-<feature> and
// -W<warning>/-Wno-<warning> flag groups on fs. The returned slices are
// indexed by Warning and Feature so the driver can apply overrides after
// parsing.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) ([]cli.FlagGroupEntry, []cli.FlagGroupEntry) {
	warningFlags := make([]cli.FlagGroupEntry, WarnCount)
	for i := Warning(0); i < WarnCount; i++ {
		info := c.Warnings[i]
		warningFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "W", Usage: info.Description,
			Enabled: new(bool), Disabled: new(bool),
		}
	}
	fs.AddFlagGroup("Warnings", "warning", "Available warnings", warningFlags)

	featureFlags := make([]cli.FlagGroupEntry, FeatCount)
	for i := Feature(0); i < FeatCount; i++ {
		info := c.Features[i]
		featureFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "F", Usage: info.Description,
			Enabled: new(bool), Disabled: new(bool),
		}
	}
	fs.AddFlagGroup("Features", "feature", "Available features", featureFlags)

	return warningFlags, featureFlags
}

// ApplyFlagGroups copies parsed group-flag overrides back into the
// config, explicit disables winning over enables.
func (c *Config) ApplyFlagGroups(warningFlags, featureFlags []cli.FlagGroupEntry) {
	for i, entry := range warningFlags {
		if entry.Enabled != nil && *entry.Enabled {
			c.SetWarning(Warning(i), true)
		}
		if entry.Disabled != nil && *entry.Disabled {
			c.SetWarning(Warning(i), false)
		}
	}
	for i, entry := range featureFlags {
		if entry.Enabled != nil && *entry.Enabled {
			c.SetFeature(Feature(i), true)
		}
		if entry.Disabled != nil && *entry.Disabled {
			c.SetFeature(Feature(i), false)
		}
	}
}
