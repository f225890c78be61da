package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type resetUserRepo struct {
	users map[string]*entity.User // por ID
}

func (r *resetUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *resetUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *resetUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}
func (r *resetUserRepo) GetByResetToken(token string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}
func (r *resetUserRepo) Update(u *entity.User) error              { r.users[u.ID] = u; return nil }
func (r *resetUserRepo) List(int, int) ([]*entity.User, error)    { return nil, nil }
func (r *resetUserRepo) Delete(id string) error                   { delete(r.users, id); return nil }
func (r *resetUserRepo) SaveCart(string, entity.Cart) error       { return nil }
func (r *resetUserRepo) SetResetToken(userID, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

// ConsumeResetToken emula el UPDATE condicional: solo consume si el token
// sigue vigente en la fila.
func (r *resetUserRepo) ConsumeResetToken(token, newHash string) (bool, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.PasswordHash = newHash
			u.ResetToken = nil
			u.ResetTokenExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

type recordingMailer struct {
	sent []string // destinatarios
	body string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, _, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.body = htmlBody
	return nil
}

func newResetFixture() (*auth.ResetPasswordUseCase, *resetUserRepo, *recordingMailer) {
	repo := &resetUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", Email: "ana@test.local", FirstName: "Ana", IsActive: true},
	}}
	mailer := &recordingMailer{}
	uc := auth.NewResetPasswordUseCase(repo, mailer, logger.Nop(), "https://tienda.local")
	return uc, repo, mailer
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestReset
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestReset_EmiteTokenYEnviaCorreo(t *testing.T) {
	uc, repo, mailer := newResetFixture()

	msg, err := uc.RequestReset(context.Background(), "ana@test.local")
	require.NoError(t, err)
	assert.Equal(t, auth.ResetMessage, msg)

	u := repo.users["u1"]
	require.NotNil(t, u.ResetToken)
	assert.Len(t, *u.ResetToken, 64, "token de 32 bytes en hex")
	require.NotNil(t, u.ResetTokenExpiresAt)
	assert.True(t, u.ResetTokenExpiresAt.After(time.Now()))

	require.Equal(t, []string{"ana@test.local"}, mailer.sent)
	assert.Contains(t, mailer.body, *u.ResetToken, "el enlace del correo lleva el token")
}

func TestRequestReset_EmailDesconocidoMismaRespuesta(t *testing.T) {
	uc, _, mailer := newResetFixture()

	msg, err := uc.RequestReset(context.Background(), "nadie@test.local")
	require.NoError(t, err)
	assert.Equal(t, auth.ResetMessage, msg,
		"la respuesta no revela si la cuenta existe")
	assert.Empty(t, mailer.sent, "no se envía nada")
}

func TestRequestReset_FalloDeCorreoNoCambiaRespuesta(t *testing.T) {
	uc, repo, mailer := newResetFixture()
	mailer.err = errors.New("smtp caído")

	msg, err := uc.RequestReset(context.Background(), "ana@test.local")
	require.NoError(t, err, "el fallo de entrega no sube al solicitante")
	assert.Equal(t, auth.ResetMessage, msg)
	assert.NotNil(t, repo.users["u1"].ResetToken, "el token queda emitido igualmente")
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmReset
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirmReset_CambiaHashYConsumeToken(t *testing.T) {
	uc, repo, _ := newResetFixture()

	_, err := uc.RequestReset(context.Background(), "ana@test.local")
	require.NoError(t, err)
	token := *repo.users["u1"].ResetToken

	require.NoError(t, uc.ConfirmReset(context.Background(), token, "nueva-clave-123"))

	u := repo.users["u1"]
	assert.Nil(t, u.ResetToken, "el token queda anulado")
	assert.Nil(t, u.ResetTokenExpiresAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva-clave-123")))
}

func TestConfirmReset_TokenEsDeUnSoloUso(t *testing.T) {
	uc, repo, _ := newResetFixture()

	_, err := uc.RequestReset(context.Background(), "ana@test.local")
	require.NoError(t, err)
	token := *repo.users["u1"].ResetToken

	require.NoError(t, uc.ConfirmReset(context.Background(), token, "primera-clave-1"))

	err = uc.ConfirmReset(context.Background(), token, "segunda-clave-2")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid, "reusar el token falla")

	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.users["u1"].PasswordHash), []byte("primera-clave-1")),
		"la contraseña del primer consumo se conserva")
}

func TestConfirmReset_TokenVencido(t *testing.T) {
	uc, repo, _ := newResetFixture()

	token := "tok-vencido"
	pasado := time.Now().Add(-time.Minute)
	repo.users["u1"].ResetToken = &token
	repo.users["u1"].ResetTokenExpiresAt = &pasado

	err := uc.ConfirmReset(context.Background(), token, "nueva-clave-123")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotNil(t, repo.users["u1"].ResetToken, "un token vencido no se consume")
}

func TestConfirmReset_TokenDesconocidoOVacio(t *testing.T) {
	uc, _, _ := newResetFixture()

	assert.ErrorIs(t, uc.ConfirmReset(context.Background(), "inexistente", "clave-123456"),
		domain.ErrTokenInvalid)
	assert.ErrorIs(t, uc.ConfirmReset(context.Background(), "", "clave-123456"),
		domain.ErrTokenInvalid)
}
