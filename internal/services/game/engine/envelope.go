package engine

import (
	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
)

// ResultCode classifies a tool outcome.
type ResultCode string

const (
	// CodeOK is a full success.
	CodeOK ResultCode = "OK"
	// CodeSoftFail is an in-game setback; the call still succeeded.
	CodeSoftFail ResultCode = "SOFT_FAIL"
	// CodeHardFail rejects the call; state is unchanged.
	CodeHardFail ResultCode = "HARD_FAIL"
	// CodeLimitReached rejects the call because a daily quota is spent.
	CodeLimitReached ResultCode = "LIMIT_REACHED"
)

// Response is the uniform result of every tool.
type Response struct {
	OK         bool           `json:"ok"`
	Code       ResultCode     `json:"code"`
	ErrorCode  string         `json:"error_code,omitempty"`
	StatePatch map[string]any `json:"state_patch"`
	UIHints    map[string]any `json:"ui_hints"`
	Log        map[string]any `json:"log"`
	Message    string         `json:"message,omitempty"`
}

// Fields is shorthand for envelope sections.
type Fields = map[string]any

func ok(patch, hints, log Fields, message string) Response {
	return envelope(true, CodeOK, patch, hints, log, message)
}

func soft(patch, hints, log Fields, message string) Response {
	return envelope(true, CodeSoftFail, patch, hints, log, message)
}

func fail(err *apperrors.Error) Response {
	code := CodeHardFail
	if err.Code.Kind() == apperrors.KindExhausted {
		code = CodeLimitReached
	}
	resp := envelope(false, code, nil, nil, nil, err.Message)
	resp.ErrorCode = string(err.Code)
	return resp
}

func envelope(success bool, code ResultCode, patch, hints, log Fields, message string) Response {
	if patch == nil {
		patch = Fields{}
	}
	if hints == nil {
		hints = Fields{}
	}
	if log == nil {
		log = Fields{}
	}
	return Response{
		OK:         success,
		Code:       code,
		StatePatch: patch,
		UIHints:    hints,
		Log:        log,
		Message:    message,
	}
}
