package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/lib/pq"
)

const defaultTableName = "hoplink_cache"

var tableNameRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// postgresStore 단일 테이블(key, value, expires_at)에 항목을 저장합니다.
type postgresStore struct {
	db    *sql.DB
	name  string
	table string // 인용 처리된 테이블 식별자

	now func() time.Time
}

var _ Store = (*postgresStore)(nil)

// NewPostgresStore DSN으로 접속하여 캐시 테이블을 준비합니다. table이 비어 있으면 hoplink_cache를 사용합니다.
func NewPostgresStore(ctx context.Context, dsn, table string) (Store, error) {
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, newErrDatabase(err, "open")
	}

	s, err := newPostgresStore(ctx, db, table, time.Now)
	if err != nil {
		db.Close()
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"table": s.name,
	}).Info("postgres 캐시 저장소 준비 완료")

	return s, nil
}

func newPostgresStore(ctx context.Context, db *sql.DB, table string, now func() time.Time) (*postgresStore, error) {
	if table == "" {
		table = defaultTableName
	}
	if !tableNameRegexp.MatchString(table) {
		return nil, newErrInvalidTableName(table)
	}

	s := &postgresStore{
		db:    db,
		name:  table,
		table: pq.QuoteIdentifier(table),
		now:   now,
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, newErrDatabase(err, "ping")
	}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *postgresStore) migrate(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (expires_at)`,
			pq.QuoteIdentifier(s.name+"_expires_at_idx"), s.table),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return newErrDatabase(err, "migrate")
		}
	}

	return nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1 AND expires_at > $2`, s.table)

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, key, s.now()).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, newErrDatabase(classify(err), "get")
	}

	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`, s.table)

	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().Add(ttl)); err != nil {
		return newErrDatabase(classify(err), "set")
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return newErrDatabase(classify(err), "delete")
	}
	return nil
}

func (s *postgresStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return newErrDatabase(classify(err), "clear")
	}
	return nil
}

func (s *postgresStore) PurgeExpired(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= $1`, s.table)

	res, err := s.db.ExecContext(ctx, query, s.now())
	if err != nil {
		return 0, newErrDatabase(classify(err), "purge")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}

	return int(n), nil
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}

// classify 드라이버 에러에 SQLSTATE 코드를 덧붙여 로그에서 원인을 구분할 수 있게 합니다.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (sqlstate=%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
