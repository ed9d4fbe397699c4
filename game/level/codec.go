package level

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Indeximal/magnate/game/engine"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level")
	ErrInvalidSlot   = errors.New("invalid level slot")
)

// DecodeLevel parses a level document. Unknown fields are rejected so typos
// in hand-edited files surface as errors instead of silently vanishing.
func DecodeLevel(data []byte) (*engine.Level, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var lv engine.Level
	if err := dec.Decode(&lv); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	if err := engine.ValidateLevel(&lv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	return &lv, nil
}

// EncodeLevel serializes a level document with indentation, keeping the files
// hand-editable.
func EncodeLevel(lv *engine.Level) ([]byte, error) {
	if err := engine.ValidateLevel(lv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	data, err := json.MarshalIndent(lv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal level: %w", err)
	}
	return data, nil
}
