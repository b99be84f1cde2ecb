package common

import (
	uuid "github.com/nu7hatch/gouuid"
)

// GenUUID returns a random v4 uuid string.
func GenUUID() string {
	// uuid.NewV4() reads from crypto/rand; retry on the (unexpected) error
	// rather than handing out an empty id.
	for {
		if id, err := uuid.NewV4(); err == nil {
			return id.String()
		}
	}
}
