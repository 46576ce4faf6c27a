package schema

import (
	"bytes"
	"encoding/json"

	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// payloadKey is the top-level member only raw year payloads carry.
const payloadKey = "contributions"

// IsPayload reports whether data is a raw year payload rather than a summary.
func IsPayload(data []byte) bool {
	if !IsJSON(data) {
		return false
	}

	var top map[string]json.RawMessage

	if json.Unmarshal(data, &top) != nil {
		return false
	}

	_, ok := top[payloadKey]

	return ok
}

// Load accepts either a raw year payload, which is assembled with assembler,
// or a summary document, which is validated and decoded.
func Load(data []byte, assembler *yearstats.Assembler) (yearstats.YearSummary, error) {
	if !IsPayload(data) {
		return Decode(data)
	}

	payload, err := upstream.Decode(bytes.NewReader(data))
	if err != nil {
		return yearstats.YearSummary{}, err
	}

	return assembler.Assemble(payload), nil
}
