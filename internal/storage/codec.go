package storage

import (
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/mealbot/internal/domain"
)

// Encode serializes a session as a flat JSON document. The timestamp is
// written in RFC 3339 with nanoseconds so it decodes as the same instant.
func Encode(s *domain.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("storage: encoding session %s: %w", s.UserID, err)
	}
	return data, nil
}

// Decode parses a stored document and repairs illegal fields: an unknown
// step becomes the language step, an unknown language becomes English.
func Decode(data []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("storage: decoding session: %w", err)
	}
	s.Normalize()
	return &s, nil
}
