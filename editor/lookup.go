package editor

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
)

// PathTable maps a GOOS value to path patterns, in the order they are tried.
//
// Patterns use forward slashes and may contain:
//   - a leading "~" for the home directory
//   - %NAME% for an environment variable (the pattern is dropped when unset)
//   - {key} for a per-editor value passed to Resolve
type PathTable map[string][]string

var envVarPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// Resolve expands the patterns for env.OS, skipping any that reference an
// unset environment variable.
func (t PathTable) Resolve(env *Env, vars map[string]string) []string {
	var paths []string
	for _, pattern := range t[env.OS] {
		if p, ok := Expand(env, pattern, vars); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// Expand turns a single pattern into a host path.
func Expand(env *Env, pattern string, vars map[string]string) (string, bool) {
	p := pattern
	for k, v := range vars {
		p = strings.ReplaceAll(p, "{"+k+"}", v)
	}

	ok := true
	p = envVarPattern.ReplaceAllStringFunc(p, func(m string) string {
		v := env.Getenv(m[1 : len(m)-1])
		if v == "" {
			ok = false
		}
		return filepath.ToSlash(v)
	})
	if !ok {
		return "", false
	}

	if p == "~" {
		p = filepath.ToSlash(env.Home)
	} else if strings.HasPrefix(p, "~/") {
		p = strings.TrimSuffix(filepath.ToSlash(env.Home), "/") + p[1:]
	}

	return filepath.FromSlash(p), true
}

// FindCLI locates an editor's command line launcher: first on PATH, then
// with `where` on windows, then at the first existing fallback path.
func FindCLI(ctx context.Context, env *Env, command string, fallbacks []string) (string, bool) {
	names := []string{command}
	if env.OS == "windows" {
		names = []string{command + ".cmd", command}
	}

	for _, name := range names {
		if path, err := env.LookPath(name); err == nil && path != "" {
			return path, true
		}
	}

	if env.OS == "windows" {
		if path, ok := where(ctx, env, command); ok {
			return path, true
		}
	}

	for _, path := range fallbacks {
		if Exists(env.FS, path) {
			return path, true
		}
	}

	return "", false
}

func where(ctx context.Context, env *Env, command string) (string, bool) {
	out, err := env.Runner.Output(ctx, "where", command)
	if err != nil {
		return "", false
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, true
		}
	}
	return "", false
}
