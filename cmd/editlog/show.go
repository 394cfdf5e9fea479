package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"dailylog/clock"
	"dailylog/editor"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <log-id>",
		Short: "Print a log the way the editor would load it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.controller(editor.Options{ShowWorkHours: true}, nil)
			if err := ctrl.Load(cmd.Context(), args[0]); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(ctrl.Draft())
			}
			return printDraft(a.out, ctrl)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the draft as JSON")
	return cmd
}

func printDraft(w io.Writer, ctrl *editor.Controller) error {
	d := ctrl.Draft()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	project := d.ProjectID
	if d.ProjectName != "" {
		project = fmt.Sprintf("%s (%s)", d.ProjectName, d.ProjectID)
	}

	fmt.Fprintf(tw, "Log:\t%s\n", ctrl.LogID())
	fmt.Fprintf(tw, "Date:\t%s\n", d.Date.Format("2006-01-02"))
	fmt.Fprintf(tw, "Project:\t%s\n", project)
	fmt.Fprintf(tw, "Employees:\t%s\n", strings.Join(d.Employees.Materialize(), ", "))
	fmt.Fprintf(tw, "Start:\t%s\n", timeLabel(d.StartTime))
	fmt.Fprintf(tw, "End:\t%s\n", timeLabel(d.EndTime))
	if hours, ok := ctrl.WorkHours(); ok {
		fmt.Fprintf(tw, "Hours:\t%s\n", formatHours(hours))
	}
	fmt.Fprintf(tw, "Status:\t%s\n", d.Status)
	fmt.Fprintf(tw, "Description:\t%s\n", d.WorkDescription)
	fmt.Fprintf(tw, "Photos:\t%d\n", len(d.ExistingPhotos))
	fmt.Fprintf(tw, "Documents:\t%d\n", len(d.ExistingDocuments))
	return tw.Flush()
}

// timeLabel shows the selector position, plus the stored time when it is off the grid.
func timeLabel(t time.Time) string {
	label := clock.SlotOf(t).Label()
	if !clock.Aligned(t) {
		label += fmt.Sprintf(" (recorded %s)", t.Format("15:04"))
	}
	return label
}

func formatHours(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %02dm", h, m)
}
