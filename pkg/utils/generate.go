package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateOrderID creates a unique order ID with timestamp.
// Format: TIX-YYYYMMDD-HHMMSS-RANDOM
func GenerateOrderID() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("TIX-%s-%s-%s", datePart, timePart, randomPart)
}

// GenerateValidationCode creates the opaque code embedded in a ticket QR.
// The code alone is the scan credential, so it must not be derivable from
// the ticket ID.
func GenerateValidationCode() string {
	return uuid.New().String()
}
