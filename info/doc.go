// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package info builds the overlay shown for a clicked name: a Wikipedia
// summary and thumbnail, a Wikiquote quote (or a catalog fallback) and
// search links. Responses can be cached on disk and transient upstream
// failures are retried with exponential backoff.
package info
