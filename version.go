package bramble

// Version is the library release version, surfaced by the CLI and the
// MCP server handshake.
const Version = "0.3.0"
