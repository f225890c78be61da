package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL
// (usable con pool o tx). Roles y carrito viven como JSONB en la fila.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
// Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, roles, is_active, first_name, last_name, address, cart, reset_token, reset_token_expires_at, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	roles, cart, err := marshalUserJSON(user)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, roles, user.IsActive,
		user.FirstName, user.LastName, user.Address, cart,
		user.ResetToken, user.ResetTokenExpiresAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email, comparación case-insensitive.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`, email)
}

// GetByResetToken obtiene el usuario que posee el token de recuperación.
func (r *UserRepo) GetByResetToken(token string) (*entity.User, error) {
	return r.findOne(`SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
}

func (r *UserRepo) findOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	var roles, cart []byte
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &roles, &u.IsActive,
		&u.FirstName, &u.LastName, &u.Address, &cart,
		&u.ResetToken, &u.ResetTokenExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := unmarshalUserJSON(&u, roles, cart); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update actualiza la cuenta (sin tocar el token de recuperación, que tiene
// sus propias operaciones atómicas).
func (r *UserRepo) Update(user *entity.User) error {
	roles, cart, err := marshalUserJSON(user)
	if err != nil {
		return err
	}
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, roles = $4, is_active = $5,
		    first_name = $6, last_name = $7, address = $8, cart = $9, updated_at = $10
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, roles, user.IsActive,
		user.FirstName, user.LastName, user.Address, cart, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SaveCart reemplaza el carrito del usuario en su fila (persistencia inmediata).
func (r *UserRepo) SaveCart(userID string, cart entity.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE users SET cart = $2, updated_at = now() WHERE id = $1`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// SetResetToken emite el token de recuperación con su expiración.
func (r *UserRepo) SetResetToken(userID, token string, expiresAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET reset_token = $2, reset_token_expires_at = $3, updated_at = now() WHERE id = $1`,
		userID, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken cambia el hash y anula token+expiración en un único UPDATE
// condicionado al token vigente. Con dos confirmaciones concurrentes solo una
// afecta la fila; la otra recibe false.
func (r *UserRepo) ConsumeResetToken(token, newPasswordHash string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE users
		 SET password_hash = $2, reset_token = NULL, reset_token_expires_at = NULL, updated_at = now()
		 WHERE reset_token = $1`,
		token, newPasswordHash,
	)
	if err != nil {
		return false, fmt.Errorf("consume reset token: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista cuentas con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var roles, cart []byte
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &roles, &u.IsActive,
			&u.FirstName, &u.LastName, &u.Address, &cart,
			&u.ResetToken, &u.ResetTokenExpiresAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if err := unmarshalUserJSON(&u, roles, cart); err != nil {
			return nil, err
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func marshalUserJSON(user *entity.User) (roles, cart []byte, err error) {
	effective := user.Roles
	if effective == nil {
		effective = []string{}
	}
	roles, err = json.Marshal(effective)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal roles: %w", err)
	}
	c := user.Cart
	if c == nil {
		c = entity.Cart{}
	}
	cart, err = json.Marshal(c)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal cart: %w", err)
	}
	return roles, cart, nil
}

func unmarshalUserJSON(u *entity.User, roles, cart []byte) error {
	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &u.Roles); err != nil {
			return fmt.Errorf("unmarshal roles: %w", err)
		}
	}
	u.Cart = entity.Cart{}
	if len(cart) > 0 {
		if err := json.Unmarshal(cart, &u.Cart); err != nil {
			return fmt.Errorf("unmarshal cart: %w", err)
		}
	}
	return nil
}
