// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Interval-averaged elevation, site presets, JSON snapshot export
// 0.1.0 - Initial release: solar position, TUI dashboard, headless summary
