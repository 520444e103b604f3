// Package server implements the MCP (Model Context Protocol) server for photo
// redaction.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_info: Load a photo and get its metadata
//   - image_validate: Check type, size and resolution limits
//   - image_dominant_colors: Extract the color palette
//
// Detection:
//   - detect_text_regions: Find text and return 4-point regions
//
// Redaction:
//   - redact_open: Start a session for a photo and its regions
//   - redact_render: Render the session with active regions obscured
//   - redact_toggle: Include or exclude the regions under a click
//   - redact_preview: Outline regions on the unredacted photo
//   - redact_close: End a session
//   - redact_image: Open, render and close in one call
//
// Photo Cache:
//   - cache_refresh: Select the most valuable photos that fit and rewrite the cache
//   - cache_get: Fetch a cached data URL
//   - cache_list: List cached keys
//
// # Sessions
//
// redact_open returns a session id. The session holds the decoded photo, the
// validated regions with their toggle state and the current strategy until
// redact_close. Photos are decoded once through an in-memory cache keyed by
// path and evicted when their last session closes.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Invalid regions are not errors. They are dropped, logged at debug level and
// reported in the tool result.
package server
