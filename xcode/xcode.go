package xcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/hackclub/hackatime-setup/editor"
)

const (
	editorName  = "Xcode"
	downloadURL = "https://github.com/wakatime/macos-wakatime/releases/latest/download/macos-wakatime.zip"
	archiveName = "macos-wakatime.zip"
	bundleName  = "WakaTime.app"
	xcodePath   = "/Applications/Xcode.app"
	appPath     = "/Applications/" + bundleName
)

var ErrUnsupportedOS = errors.New("Xcode is only supported on macOS")

// Xcode tracks time through the standalone WakaTime for Mac app rather than
// an editor extension.
type Xcode struct {
	env         *editor.Env
	downloadURL string
}

func New(env *editor.Env) Xcode {
	return Xcode{env: env, downloadURL: downloadURL}
}

func (x Xcode) Name() string {
	return editorName
}

func (x Xcode) IsInstalled(ctx context.Context) bool {
	if x.env.OS != "darwin" {
		return false
	}
	if editor.Exists(x.env.FS, xcodePath) {
		return true
	}
	_, err := x.env.Runner.Output(ctx, "xcrun", "--version")
	return err == nil
}

func (x Xcode) Install(ctx context.Context) error {
	if x.env.OS != "darwin" {
		return ErrUnsupportedOS
	}

	if editor.Exists(x.env.FS, appPath) {
		return nil
	}

	tmpDir, err := afero.TempDir(x.env.FS, "", "hackatime-xcode-")
	if err != nil {
		return fmt.Errorf("create temp directory: %w", err)
	}
	defer x.env.FS.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, archiveName)
	if err := x.download(ctx, archivePath); err != nil {
		return err
	}

	if out, err := x.env.Runner.CombinedOutput(ctx, "ditto", "-xk", archivePath, tmpDir); err != nil {
		return fmt.Errorf("unzip %s: %w%s", bundleName, err, formatOutput(out))
	}

	extractedApp := filepath.Join(tmpDir, bundleName)
	if !editor.Exists(x.env.FS, extractedApp) {
		return fmt.Errorf("%s not found in downloaded archive", bundleName)
	}

	if out, err := x.env.Runner.CombinedOutput(ctx, "cp", "-R", extractedApp, appPath); err != nil {
		return fmt.Errorf("copy %s to /Applications: %w%s", bundleName, err, formatOutput(out))
	}

	if err := x.env.Runner.Start("open", appPath); err != nil {
		return fmt.Errorf("launch %s: %w", bundleName, err)
	}

	return nil
}

func (x Xcode) download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.downloadURL, nil)
	if err != nil {
		return fmt.Errorf("download WakaTime for Mac: %w", err)
	}

	resp, err := x.env.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("download WakaTime for Mac: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("download WakaTime for Mac: HTTP %s", resp.Status)
	}

	out, err := x.env.FS.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	return out.Close()
}

func formatOutput(out []byte) string {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return ""
	}
	return "\n\noutput:\n" + trimmed
}
