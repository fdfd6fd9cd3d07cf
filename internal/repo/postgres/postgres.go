package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
)

const defaultHistoryLimit = 500

// Store is the pgx-backed adapter. Ticks live in their own append-only table
// so the monitor row never grows with history.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return &Store{pool: p}, nil
}

func (s *Store) Close() { s.pool.Close() }

// EnsureSchema creates the tables on first run. One statement per Exec; pgx
// rejects multi-statement strings over the extended protocol.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS monitors (
			id         TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			owner_id   TEXT NOT NULL,
			disabled   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_monitors_owner ON monitors (owner_id) WHERE NOT disabled`,
		`CREATE TABLE IF NOT EXISTS ticks (
			id               BIGSERIAL PRIMARY KEY,
			monitor_id       TEXT NOT NULL REFERENCES monitors (id),
			status           TEXT NOT NULL,
			response_time_ms BIGINT NOT NULL,
			ts               TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_monitor_ts ON ticks (monitor_id, ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- MonitorStore ----

func (s *Store) Create(ctx context.Context, m *domain.Monitor) error {
	if m.URL == "" || m.OwnerID == "" {
		return domain.ErrValidation
	}
	if m.ID == "" {
		m.ID = domain.MonitorID(uuid.NewString())
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	m.Disabled = false
	_, err := s.pool.Exec(ctx,
		`INSERT INTO monitors (id, url, owner_id, disabled, created_at, updated_at)
		 VALUES ($1,$2,$3,FALSE,$4,$5)`,
		m.ID, m.URL, m.OwnerID, m.CreatedAt, m.UpdatedAt)
	return err
}

func (s *Store) ListEnabled(ctx context.Context, owner string) ([]*domain.Monitor, error) {
	q := `SELECT id, url, owner_id, disabled, created_at, updated_at
	        FROM monitors WHERE NOT disabled ORDER BY created_at`
	args := []any{}
	if owner != "" {
		q = `SELECT id, url, owner_id, disabled, created_at, updated_at
		       FROM monitors WHERE NOT disabled AND owner_id = $1 ORDER BY created_at`
		args = append(args, owner)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Monitor
	for rows.Next() {
		var m domain.Monitor
		if err := rows.Scan(&m.ID, &m.URL, &m.OwnerID, &m.Disabled, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	return s.get(ctx, id, owner, true)
}

func (s *Store) GetAny(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	return s.get(ctx, id, owner, false)
}

func (s *Store) get(ctx context.Context, id domain.MonitorID, owner string, enabledOnly bool) (*domain.Monitor, error) {
	q := `SELECT id, url, owner_id, disabled, created_at, updated_at
	        FROM monitors WHERE id = $1 AND owner_id = $2`
	if enabledOnly {
		q += ` AND NOT disabled`
	}
	var m domain.Monitor
	err := s.pool.QueryRow(ctx, q, id, owner).
		Scan(&m.ID, &m.URL, &m.OwnerID, &m.Disabled, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (s *Store) Disable(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	var m domain.Monitor
	err := s.pool.QueryRow(ctx,
		`UPDATE monitors
		    SET disabled = TRUE,
		        updated_at = CASE WHEN disabled THEN updated_at ELSE now() END
		  WHERE id = $1 AND owner_id = $2
		  RETURNING id, url, owner_id, disabled, created_at, updated_at`,
		id, owner).
		Scan(&m.ID, &m.URL, &m.OwnerID, &m.Disabled, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// ---- TickStore ----

// Append is one statement, so concurrent appends to the same monitor
// serialize at the row level inside postgres.
func (s *Store) Append(ctx context.Context, id domain.MonitorID, tick *domain.Tick) error {
	ts := tick.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	tag, err := s.pool.Exec(ctx,
		`WITH touched AS (
		    UPDATE monitors SET updated_at = now() WHERE id = $1 RETURNING id
		 )
		 INSERT INTO ticks (monitor_id, status, response_time_ms, ts)
		 SELECT id, $2, $3, $4 FROM touched`,
		id, tick.Status, tick.ResponseTimeMS, ts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Latest(ctx context.Context, id domain.MonitorID) (*domain.Tick, error) {
	var t domain.Tick
	err := s.pool.QueryRow(ctx,
		`SELECT status, response_time_ms, ts
		   FROM ticks WHERE monitor_id = $1
		  ORDER BY ts DESC, id DESC LIMIT 1`, id).
		Scan(&t.Status, &t.ResponseTimeMS, &t.Timestamp)
	if err != nil {
		return nil, nil // no ticks yet
	}
	return &t, nil
}

func (s *Store) History(ctx context.Context, id domain.MonitorID, q repo.HistoryQuery) ([]domain.Tick, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	from := q.From
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	to := q.To
	if to.IsZero() {
		to = time.Now().UTC().Add(24 * time.Hour)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT status, response_time_ms, ts
		   FROM ticks
		  WHERE monitor_id = $1 AND ts >= $2 AND ts <= $3
		  ORDER BY ts, id
		  LIMIT $4`,
		id, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Tick
	for rows.Next() {
		var t domain.Tick
		if err := rows.Scan(&t.Status, &t.ResponseTimeMS, &t.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repo.MonitorStore = (*Store)(nil)
var _ repo.TickStore = (*Store)(nil)
