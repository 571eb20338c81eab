// Package service wires protocol transport to the alchemy engine.
//
// It is the transport adapter layer: the package knows how to run MCP over stdio
// or streamable HTTP and delegates game meaning to the domain tool handlers.
package service
