package main

import (
	"fmt"

	"dailylog/clock"

	"github.com/spf13/cobra"
)

func newSlotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the selectable quarter-hour times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range clock.Slots() {
				fmt.Fprintln(a.out, s.Label())
			}
			return nil
		},
	}
}
