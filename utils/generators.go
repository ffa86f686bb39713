package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID generates a unique ID for entities
func GenerateID() string {
	return uuid.NewString()
}

// GenerateCode generates a short share code for trips
func GenerateCode() string {
	result := make([]byte, CodeLength)
	for i := range result {
		result[i] = CodeCharset[rand.Intn(len(CodeCharset))]
	}
	return string(result)
}
