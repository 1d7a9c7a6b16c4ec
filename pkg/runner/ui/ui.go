// Package ui runs the interactive launcher.
package ui

import (
	"context"

	"tableflip.dev/launcher/pkg/app"
	teaui "tableflip.dev/launcher/pkg/tui/app"
)

// UI opens the Bubble Tea interface.
type UI struct {
	Service *app.Service
}

// Do blocks until the user quits.
func (u *UI) Do(ctx context.Context) error {
	ctrl, err := u.Service.Controller(ctx, nil)
	if err != nil {
		return err
	}
	return teaui.Run(teaui.Options{
		Controller: ctrl,
		Templates:  u.Service.Templates(),
		Source:     u.Service.Registry,
		Tick:       u.Service.Settings.Tick,
		Logger:     u.Service.Logger,
	})
}
