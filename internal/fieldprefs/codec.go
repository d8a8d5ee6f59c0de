package fieldprefs

import (
	"encoding/json"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// documentPayload is the persisted shape of a preference document.
type documentPayload struct {
	FieldItems []FieldItem `json:"fieldItems"`
}

// EncodePayload serializes the descriptor list into the document blob.
func EncodePayload(prefs Preferences) ([]byte, error) {
	return json.Marshal(documentPayload{FieldItems: prefs.Fields})
}

// DecodePayload reconstructs preferences from a document blob.
func DecodePayload(kind enums.PreferenceKind, payload []byte) (Preferences, error) {
	var doc documentPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Preferences{}, err
	}
	return Preferences{Kind: kind, Fields: doc.FieldItems}, nil
}
