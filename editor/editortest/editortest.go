// Package editortest provides an in-memory editor.Env for tests.
package editortest

import (
	"context"
	"errors"
	"net/http"
	"os/exec"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/hackclub/hackatime-setup/editor"
)

const Home = "/home/tester"

// NewEnv returns an Env for goos backed by an empty in-memory filesystem,
// an empty PATH and a Runner that fails every command it does not know.
func NewEnv(goos string) (*editor.Env, *Runner, Paths) {
	runner := &Runner{Results: map[string]Result{}}
	paths := Paths{}
	vars := map[string]string{}

	return &editor.Env{
		OS:       goos,
		Home:     Home,
		Getenv:   func(k string) string { return vars[k] },
		FS:       afero.NewMemMapFs(),
		LookPath: paths.LookPath,
		Runner:   runner,
		HTTP:     http.DefaultClient,
	}, runner, paths
}

// WithVars replaces env's environment with vars.
func WithVars(env *editor.Env, vars map[string]string) {
	env.Getenv = func(k string) string { return vars[k] }
}

// Touch creates an empty file at path, and its parents.
func Touch(fs afero.Fs, path string) {
	_ = afero.WriteFile(fs, path, nil, 0o755)
}

// Paths is a fake PATH: command name to resolved path.
type Paths map[string]string

func (p Paths) LookPath(name string) (string, error) {
	if path, ok := p[name]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

type Result struct {
	Out []byte
	Err error
}

// Runner records every command and answers with the Result registered for
// the command name. Unknown commands fail like a missing binary.
type Runner struct {
	mu       sync.Mutex
	Results  map[string]Result
	Hooks    map[string]func(args []string)
	Calls    []Call
	Started  []Call
	StartErr error
}

func (r *Runner) Set(name string, out string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results[name] = Result{Out: []byte(out), Err: err}
}

func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.run(name, args)
}

func (r *Runner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.run(name, args)
}

func (r *Runner) Start(name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Started = append(r.Started, Call{Name: name, Args: args})
	return r.StartErr
}

// OnRun calls fn with the arguments of every later run of name, before the
// registered Result is returned. Tests use it to fake a command's side
// effects on the filesystem.
func (r *Runner) OnRun(name string, fn func(args []string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Hooks == nil {
		r.Hooks = map[string]func(args []string){}
	}
	r.Hooks[name] = fn
}

// Commands returns every recorded call as a command line.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

func (r *Runner) run(name string, args []string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
	if hook, ok := r.Hooks[name]; ok {
		hook(args)
	}
	res, ok := r.Results[name]
	if !ok {
		return nil, errors.New("exec: \"" + name + "\": executable file not found in $PATH")
	}
	return res.Out, res.Err
}
