package notify

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/h0rv/bugsquash/internal/config"
)

// Postgres records notifications and resolves recipients from the
// notifications and profiles tables of a Postgres database.
type Postgres struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// OpenPostgres connects to the database described by cfg and pings it.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	dataSource := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.User, cfg.Password, addr, cfg.DBName)

	pool, err := pgxpool.New(ctx, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create new pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Postgres{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func wrapDBError(err error, context string) error {
	return fmt.Errorf("database: %s: %w", context, err)
}

// Record inserts a notification row.
func (p *Postgres) Record(ctx context.Context, n Notification) error {
	query, args, err := p.insertNotification(n)
	if err != nil {
		return wrapDBError(err, "Record: build query")
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return wrapDBError(err, "Record: execute query")
	}
	return nil
}

// Lookup reads a recipient from the profiles table.
func (p *Postgres) Lookup(ctx context.Context, userID string) (Recipient, error) {
	query, args, err := p.selectProfile(userID)
	if err != nil {
		return Recipient{}, wrapDBError(err, "Lookup: build query")
	}

	var r Recipient
	err = p.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.Name, &r.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipient{}, fmt.Errorf("%w: %s", ErrRecipientUnknown, userID)
		}
		return Recipient{}, wrapDBError(err, "Lookup: execute query")
	}
	return r, nil
}

func (p *Postgres) insertNotification(n Notification) (string, []interface{}, error) {
	return p.builder.
		Insert("notifications").
		Columns("id", "user_id", "title", "content", "link", "created_at").
		Values(n.ID, n.UserID, n.Title, n.Content, n.Link, n.CreatedAt).
		ToSql()
}

func (p *Postgres) selectProfile(userID string) (string, []interface{}, error) {
	return p.builder.
		Select("id", "name", "COALESCE(email, '')").
		From("profiles").
		Where(squirrel.Eq{"id": userID}).
		Limit(1).
		ToSql()
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
