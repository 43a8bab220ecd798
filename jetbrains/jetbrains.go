package jetbrains

import (
	"context"
	"strings"

	"github.com/spf13/afero"

	"github.com/hackclub/hackatime-setup/editor"
)

const pluginIdentifier = "com.wakatime.intellij.plugin"

// Descriptor describes one JetBrains IDE.
type Descriptor struct {
	Name string
	// ProductCodes prefix the IDE's versioned config directories,
	// e.g. "GoLand" matches "GoLand2024.3".
	ProductCodes  []string
	CLICommand    string
	MacOSAppNames []string
}

// Editors is every supported JetBrains IDE.
var Editors = []Descriptor{
	{Name: "IntelliJ IDEA", ProductCodes: []string{"IntelliJIdea", "IdeaIC"}, CLICommand: "idea", MacOSAppNames: []string{"IntelliJ IDEA", "IntelliJ IDEA CE"}},
	{Name: "PyCharm", ProductCodes: []string{"PyCharm", "PyCharmCE"}, CLICommand: "pycharm", MacOSAppNames: []string{"PyCharm", "PyCharm CE"}},
	{Name: "WebStorm", ProductCodes: []string{"WebStorm"}, CLICommand: "webstorm", MacOSAppNames: []string{"WebStorm"}},
	{Name: "GoLand", ProductCodes: []string{"GoLand"}, CLICommand: "goland", MacOSAppNames: []string{"GoLand"}},
	{Name: "RustRover", ProductCodes: []string{"RustRover"}, CLICommand: "rustrover", MacOSAppNames: []string{"RustRover"}},
	{Name: "RubyMine", ProductCodes: []string{"RubyMine"}, CLICommand: "rubymine", MacOSAppNames: []string{"RubyMine"}},
	{Name: "PhpStorm", ProductCodes: []string{"PhpStorm"}, CLICommand: "phpstorm", MacOSAppNames: []string{"PhpStorm"}},
	{Name: "CLion", ProductCodes: []string{"CLion"}, CLICommand: "clion", MacOSAppNames: []string{"CLion"}},
	{Name: "DataGrip", ProductCodes: []string{"DataGrip"}, CLICommand: "datagrip", MacOSAppNames: []string{"DataGrip"}},
	{Name: "Rider", ProductCodes: []string{"Rider"}, CLICommand: "rider", MacOSAppNames: []string{"Rider"}},
	{Name: "Android Studio", ProductCodes: []string{"AndroidStudio"}, CLICommand: "studio", MacOSAppNames: []string{"Android Studio"}},
	{Name: "AppCode", ProductCodes: []string{"AppCode"}, CLICommand: "appcode", MacOSAppNames: []string{"AppCode"}},
}

// Android Studio keeps its settings next to Google's other products.
var configRoots = editor.PathTable{
	"darwin": {
		"~/Library/Application Support/JetBrains",
		"~/Library/Application Support/Google",
	},
	"linux": {
		"~/.config/JetBrains",
		"~/.config/Google",
	},
	"windows": {
		"%APPDATA%/JetBrains",
		"%APPDATA%/Google",
	},
}

var cliPaths = editor.PathTable{
	"darwin": {
		"/Applications/{app}.app/Contents/MacOS/{cli}",
		"~/Applications/{app}.app/Contents/MacOS/{cli}",
	},
	"linux": {
		"~/.local/share/JetBrains/Toolbox/apps/{cli}/bin/{cli}",
		"/opt/{cli}/bin/{cli}",
		"/usr/local/bin/{cli}",
		"/snap/bin/{cli}",
	},
	"windows": {
		"%LOCALAPPDATA%/JetBrains/Toolbox/apps/{cli}/bin/{cli}.cmd",
		"%ProgramFiles%/JetBrains/{app}/bin/{cli}.bat",
	},
}

// JetBrains is the plugin strategy shared by every JetBrains IDE.
type JetBrains struct {
	desc Descriptor
	env  *editor.Env
}

func New(env *editor.Env, d Descriptor) JetBrains {
	return JetBrains{desc: d, env: env}
}

// All returns a plugin for every entry in Editors.
func All(env *editor.Env) []editor.Plugin {
	plugins := make([]editor.Plugin, 0, len(Editors))
	for _, d := range Editors {
		plugins = append(plugins, New(env, d))
	}
	return plugins
}

func (j JetBrains) Name() string {
	return j.desc.Name
}

func (j JetBrains) IsInstalled(ctx context.Context) bool {
	if len(j.configDirs()) > 0 {
		return true
	}
	_, found := editor.FindCLI(ctx, j.env, j.desc.CLICommand, j.fallbacks())
	return found
}

func (j JetBrains) Install(ctx context.Context) error {
	return editor.InstallWithCLI(ctx, j.env, j.desc.Name, j.desc.CLICommand, j.fallbacks(),
		"installPlugins", pluginIdentifier)
}

// configDirs lists the IDE's versioned settings directories. Unreadable
// roots are skipped.
func (j JetBrains) configDirs() []string {
	var dirs []string
	for _, root := range configRoots.Resolve(j.env, nil) {
		entries, err := afero.ReadDir(j.env.FS, root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && j.matches(entry.Name()) {
				dirs = append(dirs, entry.Name())
			}
		}
	}
	return dirs
}

func (j JetBrains) matches(dirName string) bool {
	for _, code := range j.desc.ProductCodes {
		if strings.HasPrefix(dirName, code) {
			return true
		}
	}
	return false
}

// fallbacks expands every pattern once per macOS app name, keeping the
// first occurrence of each path.
func (j JetBrains) fallbacks() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, app := range j.desc.MacOSAppNames {
		for _, p := range cliPaths.Resolve(j.env, map[string]string{"app": app, "cli": j.desc.CLICommand}) {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}
