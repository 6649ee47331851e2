package req

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode Разбор JSON-тела запроса в типизированную структуру
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("failed to decode request body: %w", err)
	}
	return payload, nil
}
