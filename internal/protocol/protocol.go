package protocol

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const Version = "1"

// Message types.
const (
	TypeJoin    = "join"
	TypePose    = "pose"
	TypeCrash   = "crash"
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeFull    = "full"
)

// Envelope routes inbound JSON frames by type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	err := json.Unmarshal(b, &e)
	return e, err
}

type JoinPayload struct {
	Nickname string `json:"nickname"`
}

const joinSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "nickname": {"type": "string"}
  }
}`

const crashSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": ["object", "null"]
}`

var (
	joinValidator  = jsonschema.MustCompileString("join.schema.json", joinSchema)
	crashValidator = jsonschema.MustCompileString("crash.schema.json", crashSchema)
)

// DecodeJoin validates and decodes a join payload. An absent payload is a
// valid join with no nickname.
//
// Pose payloads deliberately have no schema: their contract is per-field
// tolerance, and a schema reject would discard the valid fields along with
// the malformed ones.
func DecodeJoin(raw json.RawMessage) (JoinPayload, error) {
	var p JoinPayload
	if len(raw) == 0 {
		return p, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return p, err
	}
	if err := joinValidator.Validate(v); err != nil {
		return p, err
	}
	// shape is already validated
	_ = json.Unmarshal(raw, &p)
	return p, nil
}

// ValidateCrash accepts an absent, null, or empty-object payload.
func ValidateCrash(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return crashValidator.Validate(v)
}
