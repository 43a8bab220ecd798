package wakaconfig

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	DefaultAPIURL = "https://hackatime.hackclub.com/api/hackatime/v1"
	FileName      = ".wakatime.cfg"
	SectionName   = "settings"
	HelpComment   = "# help with config: https://github.com/wakatime/wakatime-cli/blob/develop/USAGE.md#ini-config-file"

	hostnameLength = 6
)

func init() {
	// key = value, without aligning the equal signs
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// Setting is a single key of the settings section.
type Setting struct {
	Key   string
	Value string
}

// Settings keeps the keys of the settings section in the order they are
// written.
type Settings []Setting

// Set replaces key's value, or appends key when it is new.
func (s *Settings) Set(key, value string) {
	for i := range *s {
		if (*s)[i].Key == key {
			(*s)[i].Value = value
			return
		}
	}
	*s = append(*s, Setting{Key: key, Value: value})
}

func (s Settings) Get(key string) (string, bool) {
	for _, kv := range s {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func (s Settings) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, kv := range s {
		m[kv.Key] = kv.Value
	}
	return m
}

// Options are the answers the settings are built from.
type Options struct {
	APIURL          string
	APIKey          string
	HideBranchNames bool
	// Hostname replaces the machine name in heartbeats when set.
	Hostname string
}

func Build(o Options) Settings {
	apiURL := o.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	var s Settings
	s.Set("api_url", apiURL)
	s.Set("api_key", o.APIKey)
	s.Set("heartbeat_rate_limit_seconds", "30")
	s.Set("exclude_unknown_project", "true")

	if o.HideBranchNames {
		s.Set("hide_branch_names", "true")
	}
	if o.Hostname != "" {
		s.Set("hostname", o.Hostname)
	}

	return s
}

// RandomHostname returns six uppercase ASCII letters drawn from r.
func RandomHostname(r *rand.Rand) string {
	b := make([]byte, hostnameLength)
	for i := range b {
		b[i] = byte('A' + r.IntN(26))
	}
	return string(b)
}

// ValidateAPIKey accepts only the canonical form of a version 4 UUID.
func ValidateAPIKey(key string) error {
	invalid := fmt.Errorf("invalid API key %q: expected a version 4 UUID", key)

	if len(key) != 36 {
		return invalid
	}
	id, err := uuid.Parse(key)
	if err != nil {
		return invalid
	}
	if id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return invalid
	}
	return nil
}

// Marshal renders the settings section, a blank line and the help comment.
// It fails for values that would not read back unchanged.
func Marshal(s Settings) ([]byte, error) {
	cfg := ini.Empty()
	sec, err := cfg.NewSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("create [%s] section: %w", SectionName, err)
	}

	for _, kv := range s {
		if _, err := sec.NewKey(kv.Key, kv.Value); err != nil {
			return nil, fmt.Errorf("set %s: %w", kv.Key, err)
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	// ini only separates sections from each other
	buf.WriteString("\n")
	buf.WriteString(HelpComment)
	buf.WriteString("\n")

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	if len(parsed) != len(s) {
		return nil, fmt.Errorf("render config: %d keys read back as %d", len(s), len(parsed))
	}
	for i, kv := range s {
		if parsed[i] != kv {
			return nil, fmt.Errorf("render config: value of %s cannot be written as INI: %q", kv.Key, kv.Value)
		}
	}

	return buf.Bytes(), nil
}

var loadOptions = ini.LoadOptions{
	// a trailing backslash is part of the value
	IgnoreContinuation: true,
	// quotes that belong to the value survive; padded values are unwrapped below
	PreserveSurroundedQuote: true,
}

// Parse reads back the settings section of a rendered config.
func Parse(data []byte) (Settings, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	sec, err := cfg.GetSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var s Settings
	for _, key := range sec.Keys() {
		s.Set(key.Name(), unquote(key.Value()))
	}
	return s, nil
}

// unquote undoes the double quotes ini puts around values with leading or
// trailing spaces.
func unquote(v string) string {
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return v
	}
	inner := v[1 : len(v)-1]
	if strings.TrimSpace(inner) == inner {
		return v
	}
	return inner
}

func Path(home string) string {
	return filepath.Join(home, FileName)
}

// Write overwrites path with the rendered settings. Any existing file is
// replaced, not merged.
func Write(fs afero.Fs, path string, s Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
