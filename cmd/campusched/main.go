// SPDX-License-Identifier: MIT
package main

import (
	"os"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := hclog.New(&hclog.LoggerOptions{
		Name:  "campusched",
		Level: hclog.LevelFromString(os.Getenv("CAMPUSCHED_LOG_LEVEL")),
	})

	c := cli.NewCLI("campusched", "0.1.0")
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &RunCommand{Log: log}, nil
		},
		"prefupload": func() (cli.Command, error) {
			return &PrefUploadCommand{Log: log}, nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Error("cli run failed", "error", err)
		return 1
	}
	return exitStatus
}
