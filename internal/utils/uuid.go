package utils

import "github.com/google/uuid"

// IsUUID reports whether s parses as a UUID. Path params that fail this check
// are treated as unknown ids rather than bad requests.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)

	return err == nil
}
