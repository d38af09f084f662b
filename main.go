// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for hubclient.
//
// Usage:
//
//	go run . [flags]
//	./hubclient [flags]
//
// Without a subcommand the terminal UI starts. See --help for options.
package main

import (
	"os"

	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// hub failures were already shown as alerts
		if !cli.Reported(err) {
			logging.Errorf("%v", err)
		}
		os.Exit(1)
	}
}
