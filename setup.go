package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	hspinner "github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/hackclub/hackatime-setup/editor"
	"github.com/hackclub/hackatime-setup/heartbeat"
	"github.com/hackclub/hackatime-setup/logger"
	"github.com/hackclub/hackatime-setup/preview"
	"github.com/hackclub/hackatime-setup/progress"
	"github.com/hackclub/hackatime-setup/wakaconfig"
)

const (
	quickSetup = iota
	advancedSetup
)

var welcomeStyle = lipgloss.NewStyle().Italic(true).Bold(true).Foreground(lipgloss.Color(logger.Purple70))

type options struct {
	apiKey string
	apiURL string
}

// prompter asks the interactive questions of a run.
type prompter interface {
	Select(title string, options []string, def int) (int, error)
	Confirm(title string, def bool) (bool, error)
	MultiSelect(title string, options []string) ([]int, error)
}

type huhPrompter struct{}

func (huhPrompter) Select(title string, options []string, def int) (int, error) {
	return logger.Select(title, options, def)
}

func (huhPrompter) Confirm(title string, def bool) (bool, error) {
	return logger.Confirm(title, def)
}

func (huhPrompter) MultiSelect(title string, options []string) ([]int, error) {
	return logger.MultiSelect(title, options)
}

// setup is one onboarding run.
type setup struct {
	env         *editor.Env
	prompt      prompter
	plugins     []editor.Plugin
	interactive bool
	rand        *rand.Rand
	now         func() time.Time
	spin        func(ctx context.Context, title string, action func(context.Context) error) error
}

func newSetup(env *editor.Env, p prompter, plugins []editor.Plugin, interactive bool) *setup {
	return &setup{
		env:         env,
		prompt:      p,
		plugins:     plugins,
		interactive: interactive,
		rand:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:         time.Now,
		spin:        huhSpinner,
	}
}

func (s *setup) run(ctx context.Context, opts options) error {
	if err := wakaconfig.ValidateAPIKey(opts.apiKey); err != nil {
		return err
	}

	logger.Plain(welcomeStyle.Render("Welcome to Hackatime!") + "\n")

	settings, err := s.buildConfig(opts)
	if err != nil {
		return err
	}

	written, err := s.writeConfig(settings)
	if err != nil || !written {
		return err
	}

	installed, err := s.detect(ctx)
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		logger.Dim("No supported editors found.")
		return nil
	}

	selected, err := s.selectEditors(installed)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		logger.Dim("No editors selected.")
		return nil
	}

	s.install(ctx, selected)

	if err := s.testConnection(ctx, settings); err != nil {
		return err
	}

	logger.Success("Done! You can now code in your editor to track your time.")
	logger.Infof("Instructions for other editors: %s", docsURL)
	return nil
}

func (s *setup) buildConfig(opts options) (wakaconfig.Settings, error) {
	mode, err := s.prompt.Select("Which setup mode would you like?", []string{"Quick setup", "Advanced setup"}, quickSetup)
	if err != nil {
		return nil, fmt.Errorf("choose setup mode: %w", err)
	}

	cfg := wakaconfig.Options{
		APIURL: opts.apiURL,
		APIKey: opts.apiKey,
	}

	if mode == advancedSetup {
		hideBranch, err := s.prompt.Confirm("Hide branch names?", false)
		if err != nil {
			return nil, fmt.Errorf("ask about branch names: %w", err)
		}

		anonymize, err := s.prompt.Confirm("Anonymize your machine name?", false)
		if err != nil {
			return nil, fmt.Errorf("ask about machine name: %w", err)
		}

		cfg.HideBranchNames = hideBranch
		if anonymize {
			cfg.Hostname = wakaconfig.RandomHostname(s.rand)
			logger.Dimf("Generated hostname: %s", cfg.Hostname)
		}
	}

	return wakaconfig.Build(cfg), nil
}

// writeConfig previews the config and writes it once the user agrees. It
// reports false when the user declines.
func (s *setup) writeConfig(settings wakaconfig.Settings) (bool, error) {
	data, err := wakaconfig.Marshal(settings)
	if err != nil {
		return false, err
	}

	logger.Infof("Here's the ~/%s file I'm planning to write:", wakaconfig.FileName)
	logger.Plain(preview.Render(string(data), preview.TerminalWidth()) + "\n")

	write, err := s.prompt.Confirm("Should I write this to your WakaTime config?", true)
	if err != nil {
		return false, fmt.Errorf("confirm config write: %w", err)
	}
	if !write {
		logger.Dim("Understood, exiting now.")
		return false, nil
	}

	path := wakaconfig.Path(s.env.Home)
	if err := wakaconfig.Write(s.env.FS, path, settings); err != nil {
		return false, err
	}
	logger.Successf("Config written to %s", path)

	return true, nil
}

// detect checks every editor, behind a spinner on a terminal. Interrupting
// the spinner aborts the run like any other prompt.
func (s *setup) detect(ctx context.Context) ([]editor.Plugin, error) {
	if !s.interactive {
		return editor.Detect(ctx, s.plugins), nil
	}

	var found []editor.Plugin
	err := s.spin(ctx, "Looking for installed editors...", func(ctx context.Context) error {
		found = editor.Detect(ctx, s.plugins)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("detect editors: %w", err)
	}
	return found, nil
}

// huhSpinner shows a spinner until action returns. A non-nil error means
// action may still be running.
func huhSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	return hspinner.New().
		Title(title).
		Style(lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Purple70))).
		Output(logger.Output()).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

func (s *setup) selectEditors(installed []editor.Plugin) ([]editor.Plugin, error) {
	names := make([]string, 0, len(installed))
	for _, p := range installed {
		names = append(names, p.Name())
	}

	chosen, err := s.prompt.MultiSelect("What editors should I install Hackatime to? (space to select/unselect)", names)
	if err != nil {
		return nil, fmt.Errorf("choose editors: %w", err)
	}

	selected := make([]editor.Plugin, 0, len(chosen))
	for _, i := range chosen {
		if i >= 0 && i < len(installed) {
			selected = append(selected, installed[i])
		}
	}
	return selected, nil
}

// install runs every selected editor's install at once. Failures are
// reported per editor and never stop the run.
func (s *setup) install(ctx context.Context, selected []editor.Plugin) {
	tasks := make([]progress.Task, 0, len(selected))
	for _, p := range selected {
		tasks = append(tasks, progress.Task{
			Name: p.Name(),
			Run: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, editor.InstallTimeout)
				defer cancel()
				return p.Install(ctx)
			},
		})
	}

	results := progress.Run(ctx, tasks, logger.Output(), s.interactive)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Warnf("%d of %d installs failed, see above", failed, len(results))
	}
}

// testConnection optionally sends one heartbeat. Only a broken prompt is an
// error; API problems are warnings.
func (s *setup) testConnection(ctx context.Context, settings wakaconfig.Settings) error {
	send, err := s.prompt.Confirm("Send a test heartbeat to check your setup?", true)
	if err != nil {
		return fmt.Errorf("confirm test heartbeat: %w", err)
	}
	if !send {
		return nil
	}

	apiURL, _ := settings.Get("api_url")
	apiKey, _ := settings.Get("api_key")
	client := heartbeat.Client{HTTP: s.env.HTTP, APIURL: apiURL, APIKey: apiKey}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := client.Send(ctx, heartbeat.Test(s.now(), version)); err != nil {
		logger.Warnf("Test heartbeat failed: %s", err)
		return nil
	}
	logger.Success("Test heartbeat accepted, Hackatime is receiving your data.")
	return nil
}
