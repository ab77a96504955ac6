package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. Payloads published in process are
// already typed; payloads read back from JSON (dead-letter entries, raw
// bytes) arrive as maps or raw messages and are re-decoded.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("decode %T payload: nil pointer", out)
		}
		return *v, nil
	case json.RawMessage:
		return out, decodeJSON(v, &out)
	case []byte:
		return out, decodeJSON(v, &out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("decode %T payload: %w", out, err)
	}
	return out, decodeJSON(data, &out)
}

func decodeJSON[T any](data []byte, out *T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %T payload: %w", *out, err)
	}
	return nil
}
