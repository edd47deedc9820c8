package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Got is the observed outcome of a case: either a boolean result or the
// reference engine's rejection message. It encodes as a JSON boolean or as
// {"err": "<message>"}.
type Got struct {
	Value    bool
	Err      string
	Rejected bool
	// Advisory marks a rejection that is reported for diagnosis only and
	// did not decide the verdict.
	Advisory bool
}

// Observed returns a boolean outcome.
func Observed(v bool) Got {
	return Got{Value: v}
}

// Rejection returns an engine error that decides the verdict.
func Rejection(msg string) Got {
	return Got{Err: msg, Rejected: true}
}

// AdvisoryRejection returns an engine error carried for diagnosis only.
func AdvisoryRejection(msg string) Got {
	return Got{Err: msg, Rejected: true, Advisory: true}
}

type gotError struct {
	Err string `json:"err"`
}

// MarshalJSON implements json.Marshaler.
func (g Got) MarshalJSON() ([]byte, error) {
	if g.Rejected {
		return json.Marshal(gotError{Err: g.Err})
	}
	return json.Marshal(g.Value)
}

// UnmarshalJSON implements json.Unmarshaler. The advisory marker does not
// survive encoding.
func (g *Got) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var ge gotError
		if err := json.Unmarshal(data, &ge); err != nil {
			return err
		}
		*g = Rejection(ge.Err)
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("got must be a boolean or an error object: %w", err)
	}
	*g = Observed(v)
	return nil
}

// String renders the outcome the way it appears in reports.
func (g Got) String() string {
	if g.Rejected {
		return fmt.Sprintf("{err: %s}", g.Err)
	}
	return fmt.Sprintf("%t", g.Value)
}
