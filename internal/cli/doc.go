// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cli implements the cloudctl command-line interface.
//
// # Commands
//
//   - import: Load people CSV/XLSX files into the database
//   - reset: Drop and recreate every table
//   - people: List people with vote counts
//   - layout: Render the people cloud as SVG, PDF or JSON
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context; command output goes to stdout and log
// lines to stderr.
package cli
