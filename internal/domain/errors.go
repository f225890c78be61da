package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Carrito y checkout.
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrEmptyCart              = errors.New("el carrito está vacío")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")

	// Recuperación de contraseña.
	ErrTokenInvalid = errors.New("token inválido")
	ErrTokenExpired = errors.New("token expirado")

	// Newsletter.
	ErrRateLimited       = errors.New("demasiadas solicitudes")
	ErrCsrfInvalid       = errors.New("token CSRF inválido")
	ErrEmailRequired     = errors.New("el email es obligatorio")
	ErrAlreadySubscribed = errors.New("el email ya está suscrito")
)
