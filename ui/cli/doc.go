// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the hubclient command line using Cobra. The root
// command starts the terminal UI; subcommands script the same operations.
// Commands stay thin and delegate to the account, apps and versions packages.
package cli
