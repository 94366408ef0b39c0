package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// clientMessageSchema gates every inbound client message before it reaches
// the simulation: malformed input is an integration bug on the client's
// side and gets rejected at the door rather than corrupting a tick.
const clientMessageSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["join", "input"]},
    "clientId": {"type": "string", "minLength": 1},
    "input": {
      "type": "object",
      "properties": {
        "seq": {"type": "integer", "minimum": 0},
        "clientId": {"type": "string"},
        "dx": {"type": "number"},
        "dy": {"type": "number"},
        "shoot": {"type": "boolean"},
        "jump": {"type": "boolean"},
        "crouch": {"type": "boolean"},
        "sprint": {"type": "boolean"},
        "slot": {"type": "integer", "minimum": 0},
        "build": {
          "type": "object",
          "required": ["action"],
          "properties": {
            "action": {"enum": ["place", "edit", "remove", "preview", "turbo"]},
            "buildType": {"type": "string"},
            "material": {"enum": ["wood", "brick", "metal"]},
            "rot": {"enum": [0, 90, 180, 270]},
            "x": {"type": "number"},
            "y": {"type": "number"},
            "endX": {"type": "number"},
            "endY": {"type": "number"},
            "targetId": {"type": "string"},
            "edit": {"enum": ["window", "door", "triangle"]}
          }
        }
      }
    }
  }
}`

var messageSchema = jsonschema.MustCompileString("client_message.json", clientMessageSchema)

// validateClientMessage checks a raw inbound message against the schema.
func validateClientMessage(raw []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := messageSchema.Validate(doc); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	return nil
}
