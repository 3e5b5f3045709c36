package lib

import (
	"errors"
	"fmt"
	"math"
)

type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

// Is() allows errors.Is() to match on module and code regardless of the message
func (p *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.ECode == p.ECode && t.EModule == p.EModule
}

// IsCode() reports whether err is an ErrorI with the given module and code
func IsCode(err error, module ErrorModule, code ErrorCode) bool {
	var e ErrorI
	if !errors.As(err, &e) {
		return false
	}
	return e.Module() == module && e.Code() == code
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeInvalidAddress   ErrorCode = 1
	CodeJSONMarshal      ErrorCode = 2
	CodeJSONUnmarshal    ErrorCode = 3
	CodeUnmarshal        ErrorCode = 4
	CodeMarshal          ErrorCode = 5
	CodeStringToBytes    ErrorCode = 8
	CodeWriteFile        ErrorCode = 25
	CodeReadFile         ErrorCode = 26
	CodeInvalidArgument  ErrorCode = 27
	CodeEmptyEvents      ErrorCode = 28
	CodeServerTimeout    ErrorCode = 29
	CodeHttpStatus       ErrorCode = 30
	CodePostRequest      ErrorCode = 31
	CodeGetRequest       ErrorCode = 32
	CodeReadBody         ErrorCode = 33
	CodePanic            ErrorCode = 49
	CodeInvalidAmountStr ErrorCode = 50

	// Storage Module
	StorageModule ErrorModule = "store"

	// Storage Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeStoreSet    ErrorCode = 3
	CodeStoreGet    ErrorCode = 4
	CodeStoreDelete ErrorCode = 5
	CodeCommitDB    ErrorCode = 6
	CodeInvalidKey  ErrorCode = 7

	// Endpoint Module
	EndpointModule ErrorModule = "endpoint"

	// Endpoint Module Error Codes
	CodePathNotTrusted            ErrorCode = 1
	CodeInsufficientFee           ErrorCode = 2
	CodeUnsupportedAdapterVersion ErrorCode = 3
	CodePayloadHashMismatch       ErrorCode = 4
	CodeOutOfOrderNonce           ErrorCode = 5
	CodeNoStoredPayload           ErrorCode = 6
	CodeUnauthorizedResume        ErrorCode = 7
	CodeApplyPayload              ErrorCode = 8
	CodePayloadTooLarge           ErrorCode = 9
	CodeInvalidPathLength         ErrorCode = 10
	CodeUnknownEndpoint           ErrorCode = 11
	CodeMinGasNotMet              ErrorCode = 12
	CodeMinGasNotSet              ErrorCode = 13
	CodeAdapterParamsNotEmpty     ErrorCode = 14
	CodeApplicationNotFound       ErrorCode = 15
	CodeDuplicateChainId          ErrorCode = 16
	CodeInvalidResumePolicy       ErrorCode = 17
	CodeDecodePayload             ErrorCode = 18

	// Token Module
	TokenModule ErrorModule = "oft"

	// Token Module Error Codes
	CodeInsufficientBalance    ErrorCode = 1
	CodeInvalidAmount          ErrorCode = 2
	CodeUnknownPacketType      ErrorCode = 3
	CodeInvalidTransferPayload ErrorCode = 4
	CodeInvalidRecipient       ErrorCode = 5

	// Relayer Module
	RelayerModule ErrorModule = "relayer"

	// Relayer Module Error Codes
	CodeRetryExhausted ErrorCode = 1

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeInvalidParams   ErrorCode = 1
	CodeRelayerDisabled ErrorCode = 2

	// Simulator Module
	SimulatorModule ErrorModule = "simulator"

	// Simulator Module Error Codes
	CodeNotEnoughChains ErrorCode = 1
	CodeSameChain       ErrorCode = 2
)

func ErrUnmarshal(err error) ErrorI {
	return NewError(CodeUnmarshal, MainModule, fmt.Sprintf("unmarshal() failed with err: %s", err.Error()))
}

func ErrMarshal(err error) ErrorI {
	return NewError(CodeMarshal, MainModule, fmt.Sprintf("marshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json.unmarshal() failed with err: %s", err.Error()))
}

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json.marshal() failed with err: %s", err.Error()))
}

func ErrStringToBytes(err error) ErrorI {
	return NewError(CodeStringToBytes, MainModule, fmt.Sprintf("stringToBytes() failed with err: %s", err.Error()))
}

func ErrInvalidAddress() ErrorI {
	return NewError(CodeInvalidAddress, MainModule, "address is invalid")
}

func ErrInvalidArgument() ErrorI {
	return NewError(CodeInvalidArgument, MainModule, "the argument is invalid")
}

func ErrInvalidAmountString(s string) ErrorI {
	return NewError(CodeInvalidAmountStr, MainModule, fmt.Sprintf("%q is not a base 10 integer amount", s))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("os.ReadFile() failed with err: %s", err.Error()))
}

func ErrEmptyEventsTracker() ErrorI {
	return NewError(CodeEmptyEvents, MainModule, "the events tracker is nil")
}

func ErrServerTimeout() ErrorI {
	return NewError(CodeServerTimeout, MainModule, "server timeout")
}

func ErrHttpStatus(status string, statusCode int, body []byte) ErrorI {
	return NewError(CodeHttpStatus, MainModule, fmt.Sprintf("http response bad status %s with code %d and body %s", status, statusCode, body))
}

func ErrPostRequest(err error) ErrorI {
	return NewError(CodePostRequest, MainModule, fmt.Sprintf("http.Post() failed with err: %s", err.Error()))
}

func ErrGetRequest(err error) ErrorI {
	return NewError(CodeGetRequest, MainModule, fmt.Sprintf("http.Get() failed with err: %s", err.Error()))
}

func ErrReadBody(err error) ErrorI {
	return NewError(CodeReadBody, MainModule, fmt.Sprintf("io.ReadAll(http.ResponseBody) failed with err: %s", err.Error()))
}

func ErrPanic(r any) ErrorI {
	return NewError(CodePanic, MainModule, fmt.Sprintf("recovered from panic: %v", r))
}
