package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconDirClosed  = "▸" // Collapsed directory
	IconDirOpen    = "▾" // Expanded directory
	IconAnalyzable = "≡" // Text-like file, line-counted
	IconOpaque     = "■" // Opaque file, never decoded
)
