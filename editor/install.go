package editor

import (
	"context"
	"fmt"
	"strings"
)

// InstallWithCLI finds the editor's launcher and runs it with args. The
// launcher's output is attached to the error when it exits non-zero.
func InstallWithCLI(ctx context.Context, env *Env, editorName, command string, fallbacks []string, args ...string) error {
	cli, ok := FindCLI(ctx, env, command, fallbacks)
	if !ok {
		return fmt.Errorf("%s CLI not found", editorName)
	}

	out, err := env.Runner.CombinedOutput(ctx, cli, args...)
	if err != nil {
		output := strings.TrimSpace(string(out))
		if output == "" {
			return fmt.Errorf("install %s plugin for %s: %w", PluginName, editorName, err)
		}
		return fmt.Errorf("install %s plugin for %s: %w\n\noutput:\n%s", PluginName, editorName, err, output)
	}

	return nil
}
