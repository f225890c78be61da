package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// ResetMessage es la respuesta externa de RequestReset: siempre la misma,
// exista o no la cuenta, para no permitir enumerar emails registrados.
const ResetMessage = "Si existe una cuenta con ese email, se ha enviado un enlace de recuperación."

// resetTokenTTL vigencia del token de recuperación.
const resetTokenTTL = time.Hour

// ResetPasswordUseCase flujo de recuperación de contraseña: emisión de token
// de un solo uso con expiración y consumo atómico.
type ResetPasswordUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	log      *logger.Logger
	baseURL  string // prefijo del enlace de recuperación en el email
	now      func() time.Time
}

// NewResetPasswordUseCase construye el caso de uso.
func NewResetPasswordUseCase(userRepo repository.UserRepository, mailer Mailer, log *logger.Logger, baseURL string) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo: userRepo,
		mailer:   mailer,
		log:      log,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

// RequestReset emite un token de recuperación si el email corresponde a una
// cuenta. El resultado externo es idéntico en ambos casos (ResetMessage).
// Un fallo del envío de correo se registra pero no altera la respuesta.
func (uc *ResetPasswordUseCase) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return ResetMessage, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token de recuperación: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := uc.userRepo.SetResetToken(user.ID, token, uc.now().Add(resetTokenTTL)); err != nil {
		return "", err
	}

	resetURL := uc.baseURL + "/reset-password/" + token
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic en el enlace (válido 1 hora):</p><p><a href=%q>%s</a></p>",
		user.FirstName, resetURL, resetURL,
	)
	if err := uc.mailer.Send(ctx, user.Email, "Recuperación de contraseña", body); err != nil {
		// El fallo de entrega no debe revelar nada al solicitante.
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("envío de email de recuperación falló")
	}
	return ResetMessage, nil
}

// ConfirmReset consume el token y fija la nueva contraseña.
//   - token desconocido → ErrTokenInvalid
//   - token vencido → ErrTokenExpired
//
// El cambio de hash y la anulación de token+expiración ocurren en un único
// UPDATE condicional: si dos confirmaciones concurrentes llegan con el mismo
// token, solo una lo consume y la otra recibe ErrTokenInvalid.
func (uc *ResetPasswordUseCase) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrTokenInvalid
	}
	user, err := uc.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrTokenInvalid
	}
	if user.ResetTokenExpiresAt == nil || uc.now().After(*user.ResetTokenExpiresAt) {
		return domain.ErrTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	consumed, err := uc.userRepo.ConsumeResetToken(token, string(hash))
	if err != nil {
		return err
	}
	if !consumed {
		return domain.ErrTokenInvalid
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return nil
}
