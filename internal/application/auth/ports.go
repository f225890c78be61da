package auth

import "context"

// Mailer define el puerto de salida hacia el colaborador de envío de correo.
// La implementación concreta usa SMTP (gomail); para tests se inyecta un mock.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
