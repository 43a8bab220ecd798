package editor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Detect checks every plugin concurrently and returns the installed ones in
// their original order.
func Detect(ctx context.Context, plugins []Plugin) []Plugin {
	found := make([]bool, len(plugins))

	var g errgroup.Group
	for i, p := range plugins {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, DetectTimeout)
			defer cancel()
			found[i] = isInstalled(checkCtx, p)
			return nil
		})
	}
	_ = g.Wait()

	installed := make([]Plugin, 0, len(plugins))
	for i, p := range plugins {
		if found[i] {
			installed = append(installed, p)
		}
	}
	return installed
}

func isInstalled(ctx context.Context, p Plugin) (installed bool) {
	defer func() {
		if recover() != nil {
			installed = false
		}
	}()
	return p.IsInstalled(ctx)
}
