package vscode

import (
	"context"
	"path/filepath"

	"github.com/hackclub/hackatime-setup/editor"
)

const extensionIdentifier = "WakaTime.vscode-wakatime"

// Descriptor describes one VS Code based editor.
type Descriptor struct {
	Name             string
	ConfigSubdir     string // under the home directory, holds extensions/
	CLICommand       string
	MacOSAppName     string
	WindowsAppFolder string
}

// Editors is every supported VS Code fork.
var Editors = []Descriptor{
	{
		Name:             "VS Code",
		ConfigSubdir:     ".vscode",
		CLICommand:       "code",
		MacOSAppName:     "Visual Studio Code",
		WindowsAppFolder: "Microsoft VS Code",
	},
	{
		Name:             "Cursor",
		ConfigSubdir:     ".cursor",
		CLICommand:       "cursor",
		MacOSAppName:     "Cursor",
		WindowsAppFolder: "cursor",
	},
	{
		Name:             "Windsurf",
		ConfigSubdir:     ".windsurf",
		CLICommand:       "windsurf",
		MacOSAppName:     "Windsurf",
		WindowsAppFolder: "windsurf",
	},
	{
		Name:             "Antigravity",
		ConfigSubdir:     ".antigravity",
		CLICommand:       "antigravity",
		MacOSAppName:     "Antigravity",
		WindowsAppFolder: "antigravity",
	},
	{
		Name:             "VSCodium",
		ConfigSubdir:     ".vscode-oss",
		CLICommand:       "codium",
		MacOSAppName:     "VSCodium",
		WindowsAppFolder: "VSCodium",
	},
	{
		Name:             "Trae",
		ConfigSubdir:     ".trae",
		CLICommand:       "trae",
		MacOSAppName:     "Trae",
		WindowsAppFolder: "Trae",
	},
}

var cliPaths = editor.PathTable{
	"darwin": {
		"/Applications/{app}.app/Contents/Resources/app/bin/{cli}",
		"~/Applications/{app}.app/Contents/Resources/app/bin/{cli}",
	},
	"linux": {
		"/usr/bin/{cli}",
		"/usr/local/bin/{cli}",
		"~/.local/bin/{cli}",
	},
	"windows": {
		"%LOCALAPPDATA%/Programs/{folder}/bin/{cli}.cmd",
		"%ProgramFiles%/{folder}/bin/{cli}.cmd",
	},
}

// VSCode is the plugin strategy shared by every VS Code fork.
type VSCode struct {
	desc Descriptor
	env  *editor.Env
}

func New(env *editor.Env, d Descriptor) VSCode {
	return VSCode{desc: d, env: env}
}

// All returns a plugin for every entry in Editors.
func All(env *editor.Env) []editor.Plugin {
	plugins := make([]editor.Plugin, 0, len(Editors))
	for _, d := range Editors {
		plugins = append(plugins, New(env, d))
	}
	return plugins
}

func (v VSCode) Name() string {
	return v.desc.Name
}

func (v VSCode) IsInstalled(ctx context.Context) bool {
	if editor.Exists(v.env.FS, v.configDir()) {
		return true
	}
	_, found := editor.FindCLI(ctx, v.env, v.desc.CLICommand, v.fallbacks())
	return found
}

func (v VSCode) Install(ctx context.Context) error {
	return editor.InstallWithCLI(ctx, v.env, v.desc.Name, v.desc.CLICommand, v.fallbacks(),
		"--install-extension", extensionIdentifier)
}

// configDir is the parent of the editor's extensions directory.
func (v VSCode) configDir() string {
	return filepath.Join(v.env.Home, v.desc.ConfigSubdir)
}

func (v VSCode) fallbacks() []string {
	return cliPaths.Resolve(v.env, map[string]string{
		"app":    v.desc.MacOSAppName,
		"folder": v.desc.WindowsAppFolder,
		"cli":    v.desc.CLICommand,
	})
}
