// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and page types for the server.

# Request Types

Types for parsing incoming JSON (form posts use the same field names):

  - VoteRequest: name
  - ResetRequest: key
  - CredentialsRequest: username, password
  - AddNameRequest: name, category

# Response Types

  - MessageResponse, RegisterResponse, LoginResponse
  - CloudResponse: source, canvas, seed, items, dropped, total
  - InfoResponse: the info overlay plus bio, votes and imported quotes
  - ErrorResponse: error, message
  - HealthResponse: status, people

# Page Types

HomePage and AdminPage hold the template parameters for / and /logs. The
same structs are returned as JSON when a page is requested with ?raw=1,
keeping the camelCase keys (optionNames, optionCounts, optionHistory).

# Domain Types

  - FeedItem: name, category, wiki_link; the input to a cloud layout
  - LogEntry: a vote log row (choice, time)
*/
package models
