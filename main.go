package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hackclub/hackatime-setup/editor"
	"github.com/hackclub/hackatime-setup/jetbrains"
	"github.com/hackclub/hackatime-setup/logger"
	"github.com/hackclub/hackatime-setup/vscode"
	"github.com/hackclub/hackatime-setup/wakaconfig"
	"github.com/hackclub/hackatime-setup/xcode"
	"github.com/hackclub/hackatime-setup/zed"
)

const (
	cliName    = "hackatime-setup"
	keyFlag    = "key"
	apiURLFlag = "api-url"
	docsURL    = "https://hackatime.hackclub.com/docs"
)

// set by the release build
var version = "dev"

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:     keyFlag,
		Usage:    "Your Hackatime API key",
		Aliases:  []string{"k"},
		Required: true,
		Sources:  cli.EnvVars("HACKATIME_API_KEY"),
	},
	&cli.StringFlag{
		Name:    apiURLFlag,
		Usage:   "API URL to send heartbeats to",
		Aliases: []string{"u"},
		Value:   wakaconfig.DefaultAPIURL,
		Sources: cli.EnvVars("HACKATIME_API_URL"),
	},
}

// supportedEditors lists every editor in the order they are offered.
func supportedEditors(env *editor.Env) []editor.Plugin {
	var plugins []editor.Plugin
	plugins = append(plugins, vscode.All(env)...)
	plugins = append(plugins, xcode.New(env), zed.New(env))
	plugins = append(plugins, jetbrains.All(env)...)
	return plugins
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    cliName,
		Usage:   "Set up Hackatime time tracking and install it into your editors",
		Version: version,
		Flags:   flags,
		Action:  entry,
	}
}

func entry(ctx context.Context, cliCmd *cli.Command) error {
	opts := options{
		apiKey: cliCmd.String(keyFlag),
		apiURL: cliCmd.String(apiURLFlag),
	}

	// nothing may be prompted or written for a malformed key
	if err := wakaconfig.ValidateAPIKey(opts.apiKey); err != nil {
		return err
	}

	env, err := editor.HostEnv()
	if err != nil {
		return err
	}

	s := newSetup(env, huhPrompter{}, supportedEditors(env), term.IsTerminal(int(os.Stdout.Fd())))
	return s.run(ctx, opts)
}
