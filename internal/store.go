package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = errors.New("article not found")

// StoredArticle is a persisted generated article.
type StoredArticle struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const createArticlesTable = `
CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner TEXT NOT NULL,
	title TEXT NOT NULL,
	source_url TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_owner ON articles(owner);
`

// Store persists generated articles in SQLite. The pipeline core never
// touches it; the HTTP server and the CLI write to it after ok outcomes.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed initializes) the article database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(createArticlesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts an article and returns its ID.
func (s *Store) Save(ctx context.Context, a *StoredArticle) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (owner, title, source_url, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.Owner, a.Title, a.SourceURL, a.Content, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("saving article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading article id: %w", err)
	}
	a.ID = id
	return id, nil
}

// ListByOwner returns the owner's articles, newest first.
func (s *Store) ListByOwner(ctx context.Context, owner string) ([]StoredArticle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, title, source_url, content, created_at FROM articles WHERE owner = ? ORDER BY created_at DESC, id DESC`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var articles []StoredArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// Get returns one article by ID.
func (s *Store) Get(ctx context.Context, id int64) (*StoredArticle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, title, source_url, content, created_at FROM articles WHERE id = ?`, id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return article, err
}

// Latest returns the owner's most recently created article.
func (s *Store) Latest(ctx context.Context, owner string) (*StoredArticle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, title, source_url, content, created_at FROM articles WHERE owner = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		owner)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return article, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*StoredArticle, error) {
	var a StoredArticle
	var createdAt string
	if err := row.Scan(&a.ID, &a.Owner, &a.Title, &a.SourceURL, &a.Content, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing article timestamp: %w", err)
	}
	a.CreatedAt = parsed
	return &a, nil
}
