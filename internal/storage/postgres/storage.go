package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/scandent/orline/internal/domain/errors"
	"github.com/scandent/orline/internal/domain/model"
	"github.com/scandent/orline/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage depends on. Tests swap in
// a mock pool through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type linkRepository struct {
	storage *Storage
}

type inviteRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Links() repository.LinkRepository {
	return &linkRepository{storage: s}
}

func (s *Storage) Invites() repository.InviteRepository {
	return &inviteRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teams (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            role TEXT NOT NULL,
            name TEXT NOT NULL,
            username TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            team_id BIGINT NOT NULL DEFAULT 0,
            blocked BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS invites (
            id TEXT PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            doctor_name TEXT NOT NULL DEFAULT '',
            doctor_email TEXT NOT NULL DEFAULT '',
            team_id BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL,
            used_at TIMESTAMPTZ,
            used_by_user_id BIGINT
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            folio TEXT UNIQUE NOT NULL,
            doctor_id BIGINT NOT NULL REFERENCES users(id),
            team_id BIGINT NOT NULL,
            patient JSONB NOT NULL,
            referred JSONB NOT NULL,
            selection JSONB NOT NULL,
            cbct JSONB NOT NULL,
            delivery JSONB NOT NULL,
            study_line TEXT NOT NULL,
            status TEXT NOT NULL,
            doctor_notes TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_links (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            url TEXT NOT NULL,
            provider TEXT NOT NULL,
            created_by BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS orders_folio_seq`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email)) WHERE email <> ''`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username)) WHERE username <> ''`,
		`CREATE INDEX IF NOT EXISTS idx_orders_team ON orders(team_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_doctor ON orders(doctor_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_links_order ON order_links(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// EnsureTeam returns the id of the named team, creating it when missing.
func (s *Storage) EnsureTeam(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM teams WHERE name=$1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	err = s.pool.QueryRow(ctx, `INSERT INTO teams (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// EnsureAdmin seeds the administrator account when it does not exist yet. The
// account is attached to teamID so it sees the team's order board.
func (s *Storage) EnsureAdmin(ctx context.Context, login, passwordHash string, teamID int64) error {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE LOWER(username)=LOWER($1)`, login).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	const query = `INSERT INTO users (role, name, username, password_hash, team_id)
                   VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.pool.Exec(ctx, query, model.RoleAdmin, "Administrador", login, passwordHash, teamID); err != nil {
		return err
	}
	s.logger.Info("seeded administrator account", slog.String("login", login))
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (role, name, username, email, password_hash, team_id, blocked)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	created := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.Role, user.Name, user.Username, user.Email, user.PasswordHash, user.TeamID, user.Blocked,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

const userColumns = `id, role, name, username, email, password_hash, team_id, blocked, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.TeamID, &u.Blocked, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
                   WHERE (LOWER(email)=LOWER($1) AND email <> '') OR (LOWER(username)=LOWER($1) AND username <> '')`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Role, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.TeamID, &u.Blocked, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, folio, doctor_id, team_id, patient, referred, selection, cbct, delivery,
                      study_line, status, doctor_notes, notes, created_at, updated_at`

// orderDocs carries the marshalled JSONB columns of one order row.
type orderDocs struct {
	patient, referred, selection, cbct, delivery []byte
}

func marshalOrderDocs(o *model.Order) (orderDocs, error) {
	var docs orderDocs
	var err error
	if docs.patient, err = json.Marshal(o.Patient); err != nil {
		return docs, err
	}
	if docs.referred, err = json.Marshal(o.Referred); err != nil {
		return docs, err
	}
	if docs.selection, err = json.Marshal(o.Selection); err != nil {
		return docs, err
	}
	if docs.cbct, err = json.Marshal(o.CBCT); err != nil {
		return docs, err
	}
	if docs.delivery, err = json.Marshal(o.Delivery); err != nil {
		return docs, err
	}
	return docs, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var docs orderDocs
	err := row.Scan(
		&o.ID, &o.Folio, &o.DoctorID, &o.TeamID,
		&docs.patient, &docs.referred, &docs.selection, &docs.cbct, &docs.delivery,
		&o.StudyLine, &o.Status, &o.DoctorNotes, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := unmarshalOrderDocs(&o, docs); err != nil {
		return nil, err
	}
	return &o, nil
}

func unmarshalOrderDocs(o *model.Order, docs orderDocs) error {
	if err := json.Unmarshal(docs.patient, &o.Patient); err != nil {
		return err
	}
	if err := json.Unmarshal(docs.referred, &o.Referred); err != nil {
		return err
	}
	if err := json.Unmarshal(docs.selection, &o.Selection); err != nil {
		return err
	}
	if err := json.Unmarshal(docs.cbct, &o.CBCT); err != nil {
		return err
	}
	return json.Unmarshal(docs.delivery, &o.Delivery)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	docs, err := marshalOrderDocs(order)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO orders (id, folio, doctor_id, team_id, patient, referred, selection, cbct, delivery,
                                       study_line, status, doctor_notes, notes, created_at, updated_at)
                   VALUES ($1, 'ORL-' || LPAD(NEXTVAL('orders_folio_seq')::TEXT, 6, '0'),
                           $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
                   RETURNING folio`
	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.DoctorID, order.TeamID,
		docs.patient, docs.referred, docs.selection, docs.cbct, docs.delivery,
		order.StudyLine, order.Status, order.DoctorNotes, order.Notes, order.CreatedAt, order.UpdatedAt,
	).Scan(&created.Folio)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	switch {
	case filter.DoctorID != 0:
		query += ` WHERE doctor_id=$1`
		args = append(args, filter.DoctorID)
	case filter.TeamID != 0:
		query += ` WHERE team_id=$1`
		args = append(args, filter.TeamID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		var docs orderDocs
		if err := rows.Scan(
			&o.ID, &o.Folio, &o.DoctorID, &o.TeamID,
			&docs.patient, &docs.referred, &docs.selection, &docs.cbct, &docs.delivery,
			&o.StudyLine, &o.Status, &o.DoctorNotes, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalOrderDocs(&o, docs); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatusNotes(ctx context.Context, id string, status model.OrderStatus, notes string) error {
	const query = `UPDATE orders SET status=$1, notes=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- LinkRepository implementation ---

func (r *linkRepository) Create(ctx context.Context, link *model.OrderLink) (*model.OrderLink, error) {
	const query = `INSERT INTO order_links (id, order_id, title, url, provider, created_by)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at`
	created := *link
	created.ID = uuid.NewString()
	err := r.storage.pool.QueryRow(ctx, query,
		created.ID, link.OrderID, link.Title, link.URL, link.Provider, link.CreatedBy,
	).Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *linkRepository) ListByOrder(ctx context.Context, orderID string) ([]model.OrderLink, error) {
	const query = `SELECT id, order_id, title, url, provider, created_by, created_at
                   FROM order_links WHERE order_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLink
	for rows.Next() {
		var l model.OrderLink
		if err := rows.Scan(&l.ID, &l.OrderID, &l.Title, &l.URL, &l.Provider, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM order_links WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- InviteRepository implementation ---

func (r *inviteRepository) Create(ctx context.Context, invite *model.Invite) (*model.Invite, error) {
	const query = `INSERT INTO invites (id, code, doctor_name, doctor_email, team_id, created_at, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	created := *invite
	created.ID = uuid.NewString()
	_, err := r.storage.pool.Exec(ctx, query,
		created.ID, invite.Code, invite.DoctorName, invite.DoctorEmail, invite.TeamID, invite.CreatedAt, invite.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*model.Invite, error) {
	const query = `SELECT id, code, doctor_name, doctor_email, team_id, created_at, expires_at, used_at, used_by_user_id
                   FROM invites WHERE code=$1`
	var inv model.Invite
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(
		&inv.ID, &inv.Code, &inv.DoctorName, &inv.DoctorEmail, &inv.TeamID, &inv.CreatedAt, &inv.ExpiresAt, &inv.UsedAt, &inv.UsedByUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *inviteRepository) MarkUsed(ctx context.Context, inviteID string, userID int64, at time.Time) error {
	const query = `UPDATE invites SET used_at=$1, used_by_user_id=$2 WHERE id=$3 AND used_at IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, at, userID, inviteID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *inviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM invites WHERE used_at IS NULL AND expires_at < $1`
	tag, err := r.storage.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
