package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("el movimiento dejaría el stock en negativo")
	ErrConcurrency  = errors.New("conflicto de concurrencia, reintentos agotados")
)
