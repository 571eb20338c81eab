// Package branding holds user-facing product naming.
package branding

// AppName is the product name advertised to MCP clients.
const AppName = "Zenithfall Photo Alchemy"

// ServerSlug identifies the server in protocol handshakes and health output.
const ServerSlug = "zenithfall-photo-alchemy"
