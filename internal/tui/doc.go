// Package tui holds the terminal presentation of accountctl: the masked
// password prompt built on Bubble Tea and the lipgloss renderings of
// accounts and server status.
package tui
