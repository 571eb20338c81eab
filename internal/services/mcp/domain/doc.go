// Package domain translates MCP tool calls into alchemy engine operations.
//
// Each tool is a typed input struct, an *mcp.Tool definition and a handler
// built by a constructor that receives the engine facade:
// - resolve the calling player from the request,
// - run the matching engine operation,
// - and render the response envelope as text plus structured content.
package domain
