package directory

import "encoding/json"

// QubitCount digs the qubit count out of a device capabilities blob.
// Providers are not consistent about the key casing, so both spellings
// are probed. Returns false when the blob is absent, malformed, or
// carries no paradigm section.
func QubitCount(capabilities json.RawMessage) (int, bool) {
	if len(capabilities) == 0 {
		return 0, false
	}

	var doc struct {
		Paradigm struct {
			QubitCount      *int `json:"qubitCount"`
			QubitCountSnake *int `json:"qubit_count"`
		} `json:"paradigm"`
	}

	if err := json.Unmarshal(capabilities, &doc); err != nil {
		return 0, false
	}

	if doc.Paradigm.QubitCount != nil {
		return *doc.Paradigm.QubitCount, true
	}

	if doc.Paradigm.QubitCountSnake != nil {
		return *doc.Paradigm.QubitCountSnake, true
	}

	return 0, false
}
