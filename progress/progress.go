package progress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hackclub/hackatime-setup/logger"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Green70)).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Red70)).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(logger.Purple70))
)

// Task is one independent unit of work shown on its own line.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Result struct {
	Name string
	Err  error
}

// Run starts every task at once and returns their results in task order.
// With interactive set, a spinner line per task is redrawn on w until all
// finish; otherwise each task prints one line to w when it finishes.
func Run(ctx context.Context, tasks []Task, w io.Writer, interactive bool) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(tasks))
	var wg sync.WaitGroup

	if !interactive {
		var mu sync.Mutex
		for i, t := range tasks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = Result{Name: t.Name, Err: runTask(ctx, t)}
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintln(w, resultLine(results[i]))
			}()
		}
		wg.Wait()
		return results
	}

	m := newModel(tasks, cancel)
	p := tea.NewProgram(m, tea.WithOutput(w))

	for i, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = Result{Name: t.Name, Err: runTask(ctx, t)}
			p.Send(doneMsg{index: i, err: results[i].Err})
		}()
	}

	if _, err := p.Run(); err != nil {
		// no TTY after all: wait and report plainly
		wg.Wait()
		for _, r := range results {
			fmt.Fprintln(w, resultLine(r))
		}
		return results
	}

	wg.Wait()
	return results
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Run(ctx)
}

func resultLine(r Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%s %s failed: %s", failStyle.Render("✘"), r.Name, r.Err)
	}
	return fmt.Sprintf("%s Installed for %s", okStyle.Render("✔"), r.Name)
}

type doneMsg struct {
	index int
	err   error
}

type model struct {
	spinner   spinner.Model
	tasks     []Task
	results   []*Result
	remaining int
	cancel    context.CancelFunc
}

func newModel(tasks []Task, cancel context.CancelFunc) *model {
	return &model{
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		tasks:     tasks,
		results:   make([]*Result, len(tasks)),
		remaining: len(tasks),
		cancel:    cancel,
	}
}

func (m *model) Init() tea.Cmd {
	if m.remaining == 0 {
		return tea.Quit
	}
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// tasks see the cancellation and report back as failed
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
		return m, nil

	case doneMsg:
		if m.results[msg.index] == nil {
			m.results[msg.index] = &Result{Name: m.tasks[msg.index].Name, Err: msg.err}
			m.remaining--
		}
		if m.remaining == 0 {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) View() string {
	var s string
	for i, t := range m.tasks {
		if r := m.results[i]; r != nil {
			s += resultLine(*r) + "\n"
			continue
		}
		s += fmt.Sprintf("%s Installing for %s...\n", m.spinner.View(), t.Name)
	}
	return s
}
