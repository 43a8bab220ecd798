package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hackclub/hackatime-setup/editor"
)

type fakePlugin struct {
	name      string
	installed bool
	delay     time.Duration
	panics    bool
}

func (f fakePlugin) Name() string { return f.name }

func (f fakePlugin) IsInstalled(ctx context.Context) bool {
	time.Sleep(f.delay)
	if f.panics {
		panic("detection exploded")
	}
	return f.installed
}

func (f fakePlugin) Install(ctx context.Context) error { return errors.New("not supported") }

func names(plugins []editor.Plugin) []string {
	var out []string
	for _, p := range plugins {
		out = append(out, p.Name())
	}
	return out
}

func TestDetectKeepsRegistryOrder(t *testing.T) {
	plugins := []editor.Plugin{
		fakePlugin{name: "slow", installed: true, delay: 30 * time.Millisecond},
		fakePlugin{name: "absent"},
		fakePlugin{name: "medium", installed: true, delay: 10 * time.Millisecond},
		fakePlugin{name: "fast", installed: true},
	}

	got := editor.Detect(context.Background(), plugins)

	assert.Equal(t, []string{"slow", "medium", "fast"}, names(got))
}

func TestDetectTreatsPanicAsNotInstalled(t *testing.T) {
	plugins := []editor.Plugin{
		fakePlugin{name: "broken", installed: true, panics: true},
		fakePlugin{name: "fine", installed: true},
	}

	got := editor.Detect(context.Background(), plugins)

	assert.Equal(t, []string{"fine"}, names(got))
}

func TestDetectNothing(t *testing.T) {
	assert.Empty(t, editor.Detect(context.Background(), nil))
}
