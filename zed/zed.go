package zed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/hackclub/hackatime-setup/editor"
)

const (
	editorName  = "Zed"
	settingsKey = "auto_install_extensions.wakatime"
)

// Zed installs extensions itself on startup when they are listed under
// auto_install_extensions in settings.json.
var configDirs = editor.PathTable{
	"darwin": {
		"~/.config/zed",
	},
	"linux": {
		"%XDG_CONFIG_HOME%/zed",
		"~/.config/zed",
	},
	"windows": {
		"%APPDATA%/Zed",
	},
}

// Distribution packages ship the launcher as zeditor.
var cliCommands = map[string][]string{
	"darwin":  {"zed"},
	"linux":   {"zed", "zeditor"},
	"windows": {"zed"},
}

var cliPaths = editor.PathTable{
	"darwin": {
		"/Applications/Zed.app/Contents/MacOS/cli",
		"~/Applications/Zed.app/Contents/MacOS/cli",
	},
	"linux": {
		"~/.local/bin/zed",
		"~/.local/zed.app/bin/zed",
		"/usr/bin/zeditor",
	},
	"windows": {
		"%LOCALAPPDATA%/Programs/Zed/bin/zed.exe",
	},
}

type Zed struct {
	env *editor.Env
}

func New(env *editor.Env) Zed {
	return Zed{env: env}
}

func (z Zed) Name() string {
	return editorName
}

func (z Zed) IsInstalled(ctx context.Context) bool {
	for _, dir := range configDirs.Resolve(z.env, nil) {
		if editor.Exists(z.env.FS, dir) {
			return true
		}
	}

	fallbacks := cliPaths.Resolve(z.env, nil)
	for _, command := range cliCommands[z.env.OS] {
		if _, found := editor.FindCLI(ctx, z.env, command, fallbacks); found {
			return true
		}
	}
	return false
}

// Install enables the extension in settings.json; Zed downloads it on its
// next launch. An existing file keeps its keys but loses its comments.
func (z Zed) Install(ctx context.Context) error {
	path, err := z.settingsPath()
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(z.env.FS, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = []byte("{}")
	case err != nil:
		return fmt.Errorf("read %s settings: %w", editorName, err)
	case len(data) == 0:
		data = []byte("{}")
	default:
		data = jsonc.ToJSON(data)
	}

	if !gjson.ValidBytes(data) {
		return fmt.Errorf("parse %s settings %s: not valid JSON", editorName, path)
	}

	if gjson.GetBytes(data, settingsKey).Bool() {
		return nil
	}

	updated, err := sjson.SetBytes(data, settingsKey, true)
	if err != nil {
		return fmt.Errorf("enable %s extension: %w", editor.PluginName, err)
	}

	if err := z.env.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s config directory: %w", editorName, err)
	}
	if err := afero.WriteFile(z.env.FS, path, pretty.Pretty(updated), 0o644); err != nil {
		return fmt.Errorf("write %s settings: %w", editorName, err)
	}

	return nil
}

// settingsPath picks the first config directory that exists, else the
// first one that resolves.
func (z Zed) settingsPath() (string, error) {
	dirs := configDirs.Resolve(z.env, nil)
	if len(dirs) == 0 {
		return "", fmt.Errorf("%s config directory is unknown on %s", editorName, z.env.OS)
	}

	dir := dirs[0]
	for _, d := range dirs {
		if editor.Exists(z.env.FS, d) {
			dir = d
			break
		}
	}
	return filepath.Join(dir, "settings.json"), nil
}
