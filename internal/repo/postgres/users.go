package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
	"github.com/udeepa-des/StudyCountDown-backend/internal/observability"
)

// PoolSource hands out the live pool; the connection supervisor implements
// it. Before the first successful connect it returns db.ErrNotConnected and
// every repo call fails fast.
type PoolSource interface {
	Pool() (*pgxpool.Pool, error)
}

type UsersRepo struct {
	src  PoolSource
	prom *observability.Prom
}

func NewUsersRepo(src PoolSource, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{src: src, prom: prom}
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	return false
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {

		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `id, name, email, password_hash, avatar, study_plans, target_date, created_at, updated_at`

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.StudyPlans,
		&u.TargetDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.find_by_email", func() error {
		pool, err := r.src.Pool()

		if err != nil {
			return err
		}

		return scanUser(pool.QueryRow(
			ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {

			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.find_by_id", func() error {
		pool, err := r.src.Pool()

		if err != nil {
			return err
		}

		return scanUser(pool.QueryRow(
			ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`,
			id,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {

			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Insert(ctx context.Context, u user.User) error {
	err := r.observe("users.insert", func() error {
		pool, err := r.src.Pool()

		if err != nil {
			return err
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO users (`+userColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.StudyPlans, u.TargetDate, u.CreatedAt, u.UpdatedAt,
		)

		return err
	})

	if IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}

	return err
}

// Save replaces the whole row. Concurrent saves to the same user race and the
// last writer wins; UpdatedAt is refreshed from the database.
func (r *UsersRepo) Save(ctx context.Context, u *user.User) error {
	err := r.observe("users.save", func() error {
		pool, err := r.src.Pool()

		if err != nil {
			return err
		}

		return pool.QueryRow(ctx,
			`UPDATE users
				SET name = $2,
						email = $3,
						password_hash = $4,
						avatar = $5,
						study_plans = $6,
						target_date = $7,
						updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.StudyPlans, u.TargetDate,
		).Scan(&u.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}

		if IsUniqueViolation(err) {
			return user.ErrEmailTaken
		}

		return err
	}

	return nil
}
