// Command editlog edits a previously submitted daily work log from the terminal.
package main

import (
	"fmt"
	"os"

	"dailylog/client"
	"dailylog/config"
	"dailylog/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	api := client.New(cfg.APIURL, client.WithToken(cfg.APIToken))
	a := &app{
		out:         os.Stdout,
		errOut:      os.Stderr,
		cfg:         cfg,
		logger:      logger.NewWithWriter(os.Stderr, "dailylog-editlog", logger.ParseLevel(cfg.LogLevel)),
		logs:        zonedLogs{LogStore: api, loc: cfg.Location},
		projects:    api,
		attachments: api,
		readFile:    os.ReadFile,
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
