// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements accountctl, the command-line client of the
// accounts server.
//
// Every invocation runs a single subcommand (register, login, profile, list,
// update, delete, health) against the server through an
// [adapter.AccountsAdapter] and prints the result rendered by the tui
// package. Passwords that are not passed as flags are read through a masked
// prompt.
package client
