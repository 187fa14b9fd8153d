package utils

import (
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// snapshotIDLength acompanha a coluna id VARCHAR(21) de monthly_indicator_snapshots
	snapshotIDLength = 21
	sessionIDLength  = 16
)

// sessionIDPattern aceita ids gerados aqui e ids nanoid enviados pelo front
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

// GenerateID gera o id das linhas do cache de snapshots
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, snapshotIDLength)
}

// GenerateSessionID gera o id opaco de uma sessão de agregação
func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, sessionIDLength)
}

func IsValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}
