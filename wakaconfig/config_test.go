package wakaconfig

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "123e4567-e89b-42d3-a456-426614174000"

func TestBuildQuick(t *testing.T) {
	s := Build(Options{APIKey: validKey})

	assert.Equal(t, Settings{
		{Key: "api_url", Value: DefaultAPIURL},
		{Key: "api_key", Value: validKey},
		{Key: "heartbeat_rate_limit_seconds", Value: "30"},
		{Key: "exclude_unknown_project", Value: "true"},
	}, s)
}

func TestBuildAdvanced(t *testing.T) {
	s := Build(Options{
		APIURL:          "https://example.test/api/v1",
		APIKey:          validKey,
		HideBranchNames: true,
		Hostname:        "QWERTY",
	})

	keys := make([]string, 0, len(s))
	for _, kv := range s {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{
		"api_url",
		"api_key",
		"heartbeat_rate_limit_seconds",
		"exclude_unknown_project",
		"hide_branch_names",
		"hostname",
	}, keys)

	url, _ := s.Get("api_url")
	assert.Equal(t, "https://example.test/api/v1", url)
	assert.Equal(t, "QWERTY", s.Map()["hostname"])
	assert.Equal(t, "true", s.Map()["hide_branch_names"])
}

func TestSettingsSetReplacesInPlace(t *testing.T) {
	var s Settings
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("a", "3")

	assert.Equal(t, Settings{{Key: "a", Value: "3"}, {Key: "b", Value: "2"}}, s)

	_, ok := s.Get("missing")
	assert.False(t, ok)
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Build(Options{APIKey: validKey}))
	require.NoError(t, err)

	want := "[settings]\n" +
		"api_url = " + DefaultAPIURL + "\n" +
		"api_key = " + validKey + "\n" +
		"heartbeat_rate_limit_seconds = 30\n" +
		"exclude_unknown_project = true\n" +
		"\n" +
		HelpComment + "\n"
	assert.Equal(t, want, string(data))
}

func TestMarshalParseRoundTrip(t *testing.T) {
	s := Build(Options{APIKey: validKey, HideBranchNames: true, Hostname: "ABCDEF"})

	data, err := Marshal(s)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
}

func TestMarshalParseRoundTripValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "trailing backslash", value: `ends with \`},
		{name: "double quoted", value: `"quoted"`},
		{name: "single quoted", value: `'single'`},
		{name: "padded", value: "  padded "},
		{name: "hash", value: "a # b"},
		{name: "semicolon", value: "a;b"},
		{name: "backtick", value: "back`tick"},
		{name: "equals", value: "key=value"},
		{name: "query string", value: "https://example.test/api?a=1&b=2"},
		{name: "empty", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(Options{APIKey: validKey, Hostname: "ABCDEF"})
			s.Set("api_url", tt.value)

			data, err := Marshal(s)
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
			assert.True(t, strings.HasSuffix(string(data), "\n\n"+HelpComment+"\n"))
		})
	}
}

func TestMarshalRejectsUnreadableValue(t *testing.T) {
	s := Build(Options{APIKey: validKey})
	// reads back the same as the padded value ` a`
	s.Set("hostname", `" a"`)

	_, err := Marshal(s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hostname")
}

func TestParseMissingSection(t *testing.T) {
	_, err := Parse([]byte("[other]\nkey = value\n"))
	assert.Error(t, err)
}

func TestWriteOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := Path("/home/tester")
	require.NoError(t, afero.WriteFile(fs, path, []byte("[settings]\nold_key = 1\n[git]\nsubmodules = false\n"), 0o644))

	require.NoError(t, Write(fs, path, Build(Options{APIKey: validKey})))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old_key")
	assert.NotContains(t, string(data), "[git]")
	assert.True(t, strings.HasSuffix(string(data), HelpComment+"\n"))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/home/tester/.wakatime.cfg", Path("/home/tester"))
}

func TestRandomHostname(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		name := RandomHostname(r)
		require.Len(t, name, 6)
		for _, c := range name {
			require.True(t, c >= 'A' && c <= 'Z', "unexpected %q in %q", c, name)
		}
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{name: "version 4", key: validKey, ok: true},
		{name: "version 4 uppercase", key: strings.ToUpper(validKey), ok: true},
		{name: "version 1", key: "123e4567-e89b-12d3-a456-426614174000"},
		{name: "version 3", key: "123e4567-e89b-32d3-a456-426614174000"},
		{name: "version 5", key: "123e4567-e89b-52d3-a456-426614174000"},
		{name: "non RFC 4122 variant", key: "123e4567-e89b-42d3-c456-426614174000"},
		{name: "malformed", key: "not-a-uuid"},
		{name: "empty", key: ""},
		{name: "no hyphens", key: "123e4567e89b42d3a456426614174000"},
		{name: "braces", key: "{" + validKey + "}"},
		{name: "urn", key: "urn:uuid:" + validKey},
		{name: "bad hex", key: "123e4567-e89b-42d3-a456-42661417400g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "expected a version 4 UUID")
		})
	}
}
