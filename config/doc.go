// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config provides configuration loading and persistence for hubclient.
// It uses Viper for file/env/flag parsing and exposes helpers to locate and
// write configuration files.
package config
