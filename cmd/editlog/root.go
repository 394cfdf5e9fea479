package main

import (
	"io"
	"log/slog"

	"dailylog/config"
	"dailylog/editor"

	"github.com/spf13/cobra"
)

// app carries what the commands share. Tests build one with in-memory stores.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    config.Client
	logger *slog.Logger

	logs        editor.LogStore
	projects    editor.ProjectCatalog
	attachments editor.AttachmentStore
	readFile    func(path string) ([]byte, error)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "editlog",
		Short: "Edit a submitted daily work log",
		Long: `editlog loads a daily work log from the API, applies the requested changes,
validates them and saves the log, uploading any new photos afterwards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newShowCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newSlotsCmd(a))
	return root
}

func (a *app) controller(opts editor.Options, nav editor.Navigator) *editor.Controller {
	return editor.New(editor.Deps{
		Logs:        a.logs,
		Projects:    a.projects,
		Attachments: a.attachments,
		Notifier:    newNotifier(a.errOut),
		Navigator:   nav,
		Logger:      a.logger,
	}, opts)
}
