package editor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/afero"
)

const (
	// PluginName is how install errors refer to the tracking plugin.
	PluginName = "WakaTime"

	// InstallTimeout bounds a single editor's install.
	InstallTimeout = 5 * time.Minute
	// DetectTimeout bounds a single editor's detection.
	DetectTimeout = 10 * time.Second
)

// Plugin is implemented by every supported editor.
type Plugin interface {
	// Name is the human-readable editor name, e.g. "VS Code".
	Name() string
	// IsInstalled reports whether the editor is present on this host. It
	// never fails: any I/O error means "not installed".
	IsInstalled(ctx context.Context) bool
	// Install adds the time-tracking plugin to the editor.
	Install(ctx context.Context) error
}

// Runner is the subprocess boundary.
type Runner interface {
	// Output runs name and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// CombinedOutput runs name and returns its stdout and stderr.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches name without waiting for it.
	Start(name string, args ...string) error
}

// Env is everything a strategy may inspect or touch on the host.
type Env struct {
	OS       string
	Home     string
	Getenv   func(string) string
	FS       afero.Fs
	LookPath func(string) (string, error)
	Runner   Runner
	HTTP     *http.Client
}

// HostEnv describes the machine the process runs on.
func HostEnv() (*Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find home directory: %w", err)
	}

	return &Env{
		OS:       runtime.GOOS,
		Home:     home,
		Getenv:   os.Getenv,
		FS:       afero.NewOsFs(),
		LookPath: exec.LookPath,
		Runner:   ExecRunner{},
		HTTP:     &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// ExecRunner runs real processes.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (ExecRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// the launched app outlives us; only reap it if it exits first
	go func() { _ = cmd.Wait() }()
	return nil
}

// Exists reports whether path exists on fs. Any stat error counts as absent.
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
