// Package apierr defines the failure shapes surfaced by the storefront
// client. Every component returns failures through this type; raw
// transport errors never cross package boundaries.
package apierr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

type Kind int

const (
	// KindNetwork covers connectivity failures and timeouts.
	KindNetwork Kind = iota
	// KindFormat covers non-JSON or malformed response bodies.
	KindFormat
	// KindHTTP covers status-coded failures from the backend.
	KindHTTP
	// KindUnknown covers anything uncaught.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindFormat:
		return "format"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Error is the single error shape consumed by callers of the client.
// Status is zero unless Kind is KindHTTP. FieldErrors holds per-field
// validation messages extracted from 400/422 response bodies.
type Error struct {
	Kind        Kind
	Message     string
	Status      int
	FieldErrors map[string][]string

	// fieldOrder preserves the body's field ordering so FirstFieldError
	// is deterministic; Go maps iterate randomly.
	fieldOrder []string
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FirstFieldError returns the first field error message, or the
// top-level message when no field errors are present. Used for compact
// one-line display.
func (e *Error) FirstFieldError() string {
	order := e.fieldOrder
	if len(order) == 0 {
		order = sortedKeys(e.FieldErrors)
	}
	for _, field := range order {
		if msgs := e.FieldErrors[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return e.Message
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldError returns the first message recorded for the named field.
func (e *Error) FieldError(name string) (string, bool) {
	msgs, ok := e.FieldErrors[name]
	if !ok || len(msgs) == 0 {
		return "", false
	}
	return msgs[0], true
}

func Network(msg string) *Error {
	return &Error{Kind: KindNetwork, Message: msg}
}

func Format(msg string) *Error {
	return &Error{Kind: KindFormat, Message: msg}
}

func Unknown(msg string) *Error {
	return &Error{Kind: KindUnknown, Message: msg}
}

// Body is the parsed shape of an error response. The backend emits a
// top-level detail|error|message string and, for validation failures,
// a details map of field name to message list.
type Body struct {
	Detail  string              `json:"detail"`
	Err     string              `json:"error"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details"`
}

func (b Body) topMessage() string {
	switch {
	case b.Detail != "":
		return b.Detail
	case b.Err != "":
		return b.Err
	case b.Message != "":
		return b.Message
	}
	return ""
}

// ParseBody decodes an error response body. The second return value is
// the order in which fields appeared inside the details object, which
// encoding/json discards when unmarshalling into a map.
func ParseBody(raw []byte) (Body, []string) {
	var body Body
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return Body{}, nil
	}
	return body, detailKeyOrder(raw)
}

func detailKeyOrder(raw []byte) []string {
	var envelope struct {
		Details json.RawMessage `json:"details"`
	}
	if json.Unmarshal(raw, &envelope) != nil || len(envelope.Details) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(envelope.Details))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return order
		}
		key, ok := keyTok.(string)
		if !ok {
			return order
		}
		order = append(order, key)

		// Consume the value so the next token is again a key.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return order
		}
	}
	return order
}

// Fixed messages for statuses whose bodies are not worth surfacing.
const (
	msgUnauthorized = "Your session has expired. Please log in again."
	msgForbidden    = "You do not have permission to perform this action."
	msgNotFound     = "The requested resource was not found."
	msgServer       = "Server error. Please try again later."
	msgValidation   = "Please check the highlighted fields."
	msgGeneric      = "Something went wrong. Please try again."
)

// FromStatus builds an HTTP-kind error from a non-2xx status and its
// parsed body. fieldOrder preserves the order field errors appeared in
// the body, so FirstFieldError is stable.
func FromStatus(status int, body Body, fieldOrder []string) *Error {
	e := &Error{Kind: KindHTTP, Status: status}

	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if len(body.Details) > 0 {
			e.FieldErrors = body.Details
			e.fieldOrder = fieldOrder
		}
		e.Message = body.topMessage()
		if e.Message == "" {
			e.Message = msgValidation
		}
	case status == http.StatusUnauthorized:
		e.Message = msgUnauthorized
	case status == http.StatusForbidden:
		e.Message = msgForbidden
	case status == http.StatusNotFound:
		e.Message = msgNotFound
	case status >= 500:
		e.Message = msgServer
	default:
		e.Message = body.topMessage()
		if e.Message == "" {
			e.Message = msgGeneric
		}
	}

	return e
}
