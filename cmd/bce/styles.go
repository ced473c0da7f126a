package main

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorHighlight = lipgloss.Color("#3B82F6")
	colorWarning   = lipgloss.Color("#F59E0B")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	cmdStyle     = lipgloss.NewStyle().Foreground(colorHighlight)
	argStyle     = lipgloss.NewStyle().Foreground(colorWarning)
)
