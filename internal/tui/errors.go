// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"
)

var (
	// ErrPromptCancelled is returned when the user leaves the password prompt
	// with esc or ctrl+c.
	ErrPromptCancelled = errors.New("password prompt cancelled")

	// ErrEmptyPassword is returned when the prompt is submitted empty.
	ErrEmptyPassword = errors.New("empty password")
)

// HumanizeError turns transport failures into a short hint and returns other
// errors unchanged.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "server is unreachable or the network is down"
	}

	return err.Error()
}
