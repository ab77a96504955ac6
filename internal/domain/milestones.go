package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EncodeMilestones renders unlock records as a JSON object of RFC 3339
// timestamps. Zero times are written back as the legacy true marker.
func EncodeMilestones(m map[string]time.Time) ([]byte, error) {
	out := make(map[string]interface{}, len(m))
	for k, at := range m {
		if at.IsZero() {
			out[k] = true
			continue
		}
		out[k] = at.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// DecodeMilestones parses unlock records written either as timestamps or as
// the legacy true marker. A true marker decodes to the zero time; false and
// null entries are dropped.
func DecodeMilestones(data []byte) (map[string]time.Time, error) {
	out := map[string]time.Time{}
	if len(data) == 0 || string(data) == "null" {
		return out, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		at, ok, err := MilestoneMarker(v)
		if err != nil {
			return nil, fmt.Errorf("milestone %s: %w", k, err)
		}
		if ok {
			out[k] = at
		}
	}
	return out, nil
}

// MilestoneMarker interprets one stored unlock value
func MilestoneMarker(v interface{}) (time.Time, bool, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case bool:
		return time.Time{}, t, nil
	case time.Time:
		return t, true, nil
	case string:
		at, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false, err
		}
		return at, true, nil
	default:
		return time.Time{}, false, fmt.Errorf("unsupported marker type %T", v)
	}
}
