package protocol

import (
	"errors"
	"fmt"

	"github.com/dkeye/CallSignal/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var (
	ErrBadEnvelope = errors.New("bad envelope")
	ErrBadPayload  = errors.New("bad payload")
)

// Envelope is the unit exchanged on the wire in both directions.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Encode wraps payload into an envelope. A nil payload is omitted.
func Encode(event EventType, payload any) (core.Frame, error) {
	env := Envelope{Type: event}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Payload = raw
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return b, nil
}

func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrBadEnvelope)
	}
	return env, nil
}

// DecodePayload unmarshals the envelope payload into v and validates it.
func DecodePayload(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: %s: missing payload", ErrBadPayload, env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, env.Type, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, env.Type, err)
	}
	return nil
}
