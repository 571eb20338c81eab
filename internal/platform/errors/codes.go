// Package errors provides structured domain errors for the rules engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Input errors
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"

	// Player state errors
	CodeNoCompanion       Code = "NO_COMPANION"
	CodeCompanionVanished Code = "COMPANION_VANISHED"
	CodeRankTooLow        Code = "RANK_TOO_LOW"
	CodeInventoryFull     Code = "INVENTORY_FULL"

	// Quota errors
	CodeLimitReached Code = "LIMIT_REACHED"

	// Maintenance errors
	CodeDebugDisabled Code = "DEBUG_DISABLED"
)

// Kind groups codes by how callers are expected to react to them.
type Kind int

const (
	// KindInternal is an unexpected fault, never a domain outcome.
	KindInternal Kind = iota
	// KindInvalidArgument covers validation failures and bad input.
	KindInvalidArgument
	// KindNotFound covers references to entities that do not exist.
	KindNotFound
	// KindFailedPrecondition covers state that does not allow the operation.
	KindFailedPrecondition
	// KindExhausted covers spent daily quotas.
	KindExhausted
)

// Kind maps domain codes to their reaction group.
func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidInput:
		return KindInvalidArgument

	case CodeNotFound:
		return KindNotFound

	case CodeNoCompanion,
		CodeCompanionVanished,
		CodeRankTooLow,
		CodeInventoryFull,
		CodeDebugDisabled:
		return KindFailedPrecondition

	case CodeLimitReached:
		return KindExhausted

	default:
		return KindInternal
	}
}
