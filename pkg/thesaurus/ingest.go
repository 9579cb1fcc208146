package thesaurus

import (
	"encoding/json"
	"fmt"
)

// wireEntry mirrors the ingestion contract's per-surface payload
// (spec §6.5): {"id": u64, "nterm": string, "url": optional string}.
type wireEntry struct {
	ID    uint64 `json:"id"`
	NTerm string `json:"nterm"`
	URL   string `json:"url,omitempty"`
}

// wireDocument mirrors the full JSON ingestion document:
// {"name": string, "data": {surface: wireEntry}}.
type wireDocument struct {
	Name string               `json:"name"`
	Data map[string]wireEntry `json:"data"`
}

// DecodeJSON parses the thesaurus ingestion JSON shape from spec §6.5 and
// builds a validated Thesaurus. Malformed JSON is a caller error and is
// returned; invalid individual entries are dropped with a warning exactly
// as Insert does, never failing the whole decode.
func DecodeJSON(data []byte) (*Thesaurus, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("thesaurus: decode ingestion document: %w", err)
	}

	th := New(doc.Name)
	for surface, entry := range doc.Data {
		th.Insert(surface, NormalizedTerm{
			ID:      entry.ID,
			Value:   entry.NTerm,
			Payload: entry.URL,
		})
	}
	return th, nil
}

// EncodeJSON renders the thesaurus back into the ingestion wire shape, for
// tooling that wants to round-trip a thesaurus it built programmatically.
func EncodeJSON(t *Thesaurus) ([]byte, error) {
	doc := wireDocument{
		Name: t.Name,
		Data: make(map[string]wireEntry, t.Len()),
	}
	for surface, term := range t.Entries() {
		doc.Data[surface] = wireEntry{ID: term.ID, NTerm: term.Value, URL: term.Payload}
	}
	return json.Marshal(doc)
}
