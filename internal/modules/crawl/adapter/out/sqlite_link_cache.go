package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"wikitrail/internal/modules/crawl/domain"
	crawlout "wikitrail/internal/modules/crawl/port/out"
	"wikitrail/internal/platform/clock"
	"wikitrail/internal/platform/logging"

	_ "modernc.org/sqlite"
)

// SQLiteLinkCache is a read-through cache in front of another LinkSource.
// Failed fetches are never cached. A zero ttl keeps entries forever.
type SQLiteLinkCache struct {
	db     *sql.DB
	next   crawlout.LinkSource
	clock  clock.Clock
	ttl    time.Duration
	logger *log.Logger
}

var _ crawlout.LinkCache = (*SQLiteLinkCache)(nil)

func NewSQLiteLinkCache(dbPath string, next crawlout.LinkSource, clk clock.Clock, ttl time.Duration, logger *log.Logger) (*SQLiteLinkCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if logger == nil {
		logger = logging.Discard()
	}
	c := &SQLiteLinkCache{db: db, next: next, clock: clk, ttl: ttl, logger: logger}
	if err := c.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteLinkCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS fetches (
  topic TEXT PRIMARY KEY,
  fetched_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS links (
  topic TEXT NOT NULL,
  position INTEGER NOT NULL,
  linked TEXT NOT NULL,
  PRIMARY KEY (topic, position)
);
CREATE INDEX IF NOT EXISTS idx_links_linked ON links(linked);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create cache tables: %w", err)
	}
	return nil
}

func (c *SQLiteLinkCache) Links(ctx context.Context, topic domain.Topic) ([]domain.Topic, error) {
	cached, ok, err := c.lookup(ctx, topic)
	if err != nil {
		c.logger.Warn("link cache lookup failed", "topic", topic, "err", err)
	} else if ok {
		return cached, nil
	}

	links, err := c.next.Links(ctx, topic)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, topic, links); err != nil {
		c.logger.Warn("link cache store failed", "topic", topic, "err", err)
	}
	return links, nil
}

func (c *SQLiteLinkCache) lookup(ctx context.Context, topic domain.Topic) ([]domain.Topic, bool, error) {
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx, `SELECT fetched_at FROM fetches WHERE topic = ?`, topic).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup fetch: %w", err)
	}
	if c.ttl > 0 && c.clock.Now().Sub(time.Unix(fetchedAt, 0)) >= c.ttl {
		return nil, false, nil
	}

	rows, err := c.db.QueryContext(ctx, `SELECT linked FROM links WHERE topic = ? ORDER BY position ASC`, topic)
	if err != nil {
		return nil, false, fmt.Errorf("load links: %w", err)
	}
	defer rows.Close()
	out := make([]domain.Topic, 0)
	for rows.Next() {
		var linked string
		if err := rows.Scan(&linked); err != nil {
			return nil, false, fmt.Errorf("scan link: %w", err)
		}
		out = append(out, linked)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate links: %w", err)
	}
	return out, true, nil
}

func (c *SQLiteLinkCache) store(ctx context.Context, topic domain.Topic, links []domain.Topic) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE topic = ?`, topic); err != nil {
		return fmt.Errorf("clear links: %w", err)
	}
	for i, linked := range links {
		if _, err := tx.ExecContext(ctx, `INSERT INTO links (topic, position, linked) VALUES (?, ?, ?)`, topic, i, linked); err != nil {
			return fmt.Errorf("insert link: %w", err)
		}
	}
	const upsert = `
INSERT INTO fetches (topic, fetched_at)
VALUES (?, ?)
ON CONFLICT(topic) DO UPDATE SET fetched_at = excluded.fetched_at;
`
	if _, err := tx.ExecContext(ctx, upsert, topic, c.clock.Now().Unix()); err != nil {
		return fmt.Errorf("upsert fetch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache tx: %w", err)
	}
	return nil
}

// Stats reports how many topics and links are cached.
func (c *SQLiteLinkCache) Stats(ctx context.Context) (topics, links int, err error) {
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fetches`).Scan(&topics); err != nil {
		return 0, 0, fmt.Errorf("count fetches: %w", err)
	}
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&links); err != nil {
		return 0, 0, fmt.Errorf("count links: %w", err)
	}
	return topics, links, nil
}

func (c *SQLiteLinkCache) Reset(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM links; DELETE FROM fetches;`); err != nil {
		return fmt.Errorf("reset link cache: %w", err)
	}
	return nil
}

func (c *SQLiteLinkCache) Close() error {
	return c.db.Close()
}
