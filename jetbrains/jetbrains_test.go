package jetbrains

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackclub/hackatime-setup/editor/editortest"
)

func descriptor(t *testing.T, name string) Descriptor {
	t.Helper()
	for _, d := range Editors {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("%s missing from Editors", name)
	return Descriptor{}
}

func TestIsInstalledFromConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		vars   map[string]string
		editor string
		dir    string
		want   bool
	}{
		{
			name:   "linux ultimate",
			goos:   "linux",
			editor: "IntelliJ IDEA",
			dir:    "/home/tester/.config/JetBrains/IntelliJIdea2024.3",
			want:   true,
		},
		{
			name:   "linux community uses second product code",
			goos:   "linux",
			editor: "IntelliJ IDEA",
			dir:    "/home/tester/.config/JetBrains/IdeaIC2023.2",
			want:   true,
		},
		{
			name:   "other product does not match",
			goos:   "linux",
			editor: "GoLand",
			dir:    "/home/tester/.config/JetBrains/WebStorm2024.1",
			want:   false,
		},
		{
			name:   "macOS",
			goos:   "darwin",
			editor: "GoLand",
			dir:    "/home/tester/Library/Application Support/JetBrains/GoLand2024.3",
			want:   true,
		},
		{
			name:   "windows",
			goos:   "windows",
			vars:   map[string]string{"APPDATA": "/Users/tester/AppData/Roaming"},
			editor: "Rider",
			dir:    "/Users/tester/AppData/Roaming/JetBrains/Rider2024.2",
			want:   true,
		},
		{
			name:   "windows without APPDATA",
			goos:   "windows",
			editor: "Rider",
			dir:    "/Users/tester/AppData/Roaming/JetBrains/Rider2024.2",
			want:   false,
		},
		{
			name:   "android studio lives under Google",
			goos:   "linux",
			editor: "Android Studio",
			dir:    "/home/tester/.config/Google/AndroidStudio2024.2",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _ := editortest.NewEnv(tt.goos)
			editortest.WithVars(env, tt.vars)
			require.NoError(t, env.FS.MkdirAll(tt.dir, 0o755))

			got := New(env, descriptor(t, tt.editor)).IsInstalled(context.Background())

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigDirMustBeDirectory(t *testing.T) {
	env, _, _ := editortest.NewEnv("linux")
	editortest.Touch(env.FS, "/home/tester/.config/JetBrains/GoLand2024.3")

	assert.False(t, New(env, descriptor(t, "GoLand")).IsInstalled(context.Background()))
}

func TestIsInstalledFromToolboxCLI(t *testing.T) {
	env, _, _ := editortest.NewEnv("linux")
	editortest.Touch(env.FS, "/home/tester/.local/share/JetBrains/Toolbox/apps/goland/bin/goland")

	assert.True(t, New(env, descriptor(t, "GoLand")).IsInstalled(context.Background()))
}

func TestIsInstalledNothingPresent(t *testing.T) {
	env, _, _ := editortest.NewEnv("linux")

	for _, p := range All(env) {
		assert.False(t, p.IsInstalled(context.Background()), p.Name())
	}
}

func TestFallbacksCoverEveryMacOSAppName(t *testing.T) {
	env, _, _ := editortest.NewEnv("darwin")

	got := New(env, descriptor(t, "PyCharm")).fallbacks()

	assert.Equal(t, []string{
		"/Applications/PyCharm.app/Contents/MacOS/pycharm",
		"/home/tester/Applications/PyCharm.app/Contents/MacOS/pycharm",
		"/Applications/PyCharm CE.app/Contents/MacOS/pycharm",
		"/home/tester/Applications/PyCharm CE.app/Contents/MacOS/pycharm",
	}, got)
}

func TestFallbacksAreNotDuplicated(t *testing.T) {
	env, _, _ := editortest.NewEnv("linux")

	got := New(env, descriptor(t, "IntelliJ IDEA")).fallbacks()

	assert.Len(t, got, 4)
}

func TestInstall(t *testing.T) {
	env, runner, paths := editortest.NewEnv("linux")
	paths["goland"] = "/opt/goland/bin/goland"
	runner.Set("/opt/goland/bin/goland", "", nil)

	err := New(env, descriptor(t, "GoLand")).Install(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/goland/bin/goland installPlugins com.wakatime.intellij.plugin"}, runner.Commands())
}

func TestInstallFailure(t *testing.T) {
	env, runner, paths := editortest.NewEnv("linux")
	paths["goland"] = "/opt/goland/bin/goland"
	runner.Set("/opt/goland/bin/goland", "Only one instance of GoLand can be run at a time.", assert.AnError)

	err := New(env, descriptor(t, "GoLand")).Install(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GoLand")
	assert.Contains(t, err.Error(), "Only one instance")
}

func TestInstallCLINotFound(t *testing.T) {
	env, _, _ := editortest.NewEnv("linux")

	err := New(env, descriptor(t, "Rider")).Install(context.Background())

	require.EqualError(t, err, "Rider CLI not found")
}
