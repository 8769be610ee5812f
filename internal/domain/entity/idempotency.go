package entity

import "time"

// IdempotencyRecord resultado confirmado de una escritura con Idempotency-Key.
// Fingerprint es el hash del cuerpo original; ResultID puede llevar varios IDs separados por coma.
type IdempotencyRecord struct {
	Key         string
	Scope       string
	Fingerprint string
	ResultID    string
	CreatedAt   time.Time
}
