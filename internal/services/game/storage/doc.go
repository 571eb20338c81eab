// Package storage defines the player state store used by the game engine.
//
// The only implementation is the in-process memory store; state lives for
// the lifetime of the process.
package storage
