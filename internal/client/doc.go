// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client.
//
// It maps sub-commands onto the server API, prompts for credentials through
// the terminal UI and keeps the bearer token in a session file between runs.
package client
