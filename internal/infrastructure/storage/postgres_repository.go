package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"stocknews/internal/domain"
	"stocknews/internal/ports"
)

const table = "stock_news_blog"

var columns = []string{
	"id", "title", "description", "news_image", "ai_image", "source",
	"meta_title", "meta_description", "ai_generated", "time", "created_at",
}

// PostgresRepository persists enriched articles into Postgres.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// NewPostgresRepository opens the connection pool and verifies it.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

// InitSchema creates the article table if it is absent. The unique index
// on title backs the dedup key.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS stock_news_blog (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		news_image TEXT NOT NULL DEFAULT '',
		ai_image TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		meta_title TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		ai_generated TEXT,
		time TEXT NOT NULL DEFAULT to_char(CURRENT_TIME, 'HH24:MI:SS'),
		created_at TEXT NOT NULL DEFAULT to_char(CURRENT_DATE, 'YYYY-MM-DD')
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_news_blog_title ON stock_news_blog(title);
	CREATE INDEX IF NOT EXISTS idx_stock_news_blog_created_at ON stock_news_blog(created_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ExistingTitles returns which of the given titles already have a row.
func (r *PostgresRepository) ExistingTitles(ctx context.Context, titles []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(titles) == 0 {
		return result, nil
	}

	query, args, err := r.sb.Select("title").From(table).Where(sq.Eq{"title": titles}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query existing titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		result[title] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// Create inserts the enriched article and returns it with its id filled.
func (r *PostgresRepository) Create(ctx context.Context, article domain.BlogArticle) (domain.BlogArticle, error) {
	query, args, err := r.sb.Insert(table).
		Columns("title", "description", "news_image", "ai_image", "source",
			"meta_title", "meta_description", "ai_generated", "time", "created_at").
		Values(article.Title, article.Description, article.NewsImage, article.AIImage,
			article.Source, article.MetaTitle, article.MetaDescription, article.BlogHTML,
			article.Time, article.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.BlogArticle{}, fmt.Errorf("build insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&article.ID); err != nil {
		return domain.BlogArticle{}, fmt.Errorf("insert article: %w", err)
	}

	return article, nil
}

// ListAll returns every article, most recent first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]domain.BlogArticle, error) {
	query, args, err := r.sb.Select(columns...).From(table).
		OrderBy("created_at DESC", "time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.queryArticles(ctx, query, args...)
}

// FindByID returns one article or nil if absent.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*domain.BlogArticle, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// FindByTitle returns the article with the exact title or nil.
func (r *PostgresRepository) FindByTitle(ctx context.Context, title string) (*domain.BlogArticle, error) {
	return r.findOne(ctx, sq.Eq{"title": title})
}

// FindByMetaTitle returns the article with the exact meta title or nil.
func (r *PostgresRepository) FindByMetaTitle(ctx context.Context, metaTitle string) (*domain.BlogArticle, error) {
	return r.findOne(ctx, sq.Eq{"meta_title": metaTitle})
}

// SearchByTitle matches a case-insensitive title substring.
func (r *PostgresRepository) SearchByTitle(ctx context.Context, search string) ([]domain.BlogArticle, error) {
	query, args, err := r.sb.Select(columns...).From(table).
		Where(sq.ILike{"title": "%" + search + "%"}).
		OrderBy("created_at DESC", "time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.queryArticles(ctx, query, args...)
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) findOne(ctx context.Context, pred any) (*domain.BlogArticle, error) {
	query, args, err := r.sb.Select(columns...).From(table).Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &article, nil
}

func (r *PostgresRepository) queryArticles(ctx context.Context, query string, args ...any) ([]domain.BlogArticle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.BlogArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (domain.BlogArticle, error) {
	var a domain.BlogArticle
	var blogHTML sql.NullString

	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.NewsImage, &a.AIImage,
		&a.Source, &a.MetaTitle, &a.MetaDescription, &blogHTML, &a.Time, &a.CreatedAt)
	if err != nil {
		return domain.BlogArticle{}, err
	}

	a.BlogHTML = blogHTML.String
	return a, nil
}
