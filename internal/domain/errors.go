package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrNoSelection        = errors.New("la selección no resuelve ninguna fila")
	ErrInvalidDate        = errors.New("fecha inválida")
	ErrInvalidObservation = errors.New("observación vacía")
	ErrLockTimeout        = errors.New("no se pudo adquirir el bloqueo del almacén")
	ErrStoreClosed        = errors.New("el almacén de datos está cerrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
