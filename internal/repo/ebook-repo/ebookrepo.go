package ebookrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

const ebookColumns = `e.id, e.title, e.description, e.short_description, e.cover_image, e.price, e.currency,
	e.author_id, e.author_name, e.created_at, e.downloads, e.category, e.pdf_url`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanEbook(row pgx.Row) (domain.Ebook, error) {
	var e domain.Ebook
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.ShortDescription, &e.CoverImage, &e.Price, &e.Currency,
		&e.AuthorID, &e.AuthorName, &e.CreatedAt, &e.Downloads, &e.Category, &e.PDFURL,
	)
	return e, err
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Ebook, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get ebooks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ebooks := []domain.Ebook{}
	for rows.Next() {
		ebook, err := scanEbook(rows)
		if err != nil {
			zap.L().Error("can't scan ebook row", zap.Error(err))
			return nil, err
		}
		ebooks = append(ebooks, ebook)
	}
	return ebooks, rows.Err()
}

// FindAll returns the catalogue in insertion order.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Ebook, error) {
	return r.list(ctx, `SELECT `+ebookColumns+` FROM ebooks e ORDER BY e.seq`)
}

func (r *Repository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Ebook, error) {
	return r.list(ctx, `SELECT `+ebookColumns+` FROM ebooks e WHERE e.author_id = $1 ORDER BY e.seq`, authorID)
}

// FindPurchasedBy joins the user's receipts to the catalogue. Each listing appears once.
func (r *Repository) FindPurchasedBy(ctx context.Context, userID string) ([]domain.Ebook, error) {
	query := `SELECT ` + ebookColumns + ` FROM ebooks e
		WHERE EXISTS (SELECT 1 FROM purchases p WHERE p.ebook_id = e.id AND p.user_id = $1)
		ORDER BY e.seq`
	return r.list(ctx, query, userID)
}

func (r *Repository) FindByID(ctx context.Context, ebookID string) (*domain.Ebook, error) {
	ebook, err := scanEbook(r.db.QueryRow(ctx, `SELECT `+ebookColumns+` FROM ebooks e WHERE e.id = $1`, ebookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find ebook", zap.Error(err))
		return nil, err
	}
	return &ebook, nil
}

func (r *Repository) Create(ctx context.Context, ebook *domain.Ebook) (*domain.Ebook, error) {
	query := `
        INSERT INTO ebooks (id, title, description, short_description, cover_image, price, currency,
            author_id, author_name, created_at, downloads, category, pdf_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			ebook.ID, ebook.Title, ebook.Description, ebook.ShortDescription, ebook.CoverImage, ebook.Price, ebook.Currency,
			ebook.AuthorID, ebook.AuthorName, ebook.CreatedAt, ebook.Downloads, ebook.Category, ebook.PDFURL,
		)
		if err != nil {
			zap.L().Error("can't save ebook", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ebook, nil
}

func (r *Repository) IncrementDownloads(ctx context.Context, ebookID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE ebooks SET downloads = downloads + 1 WHERE id = $1`, ebookID)
	if err != nil {
		zap.L().Error("failed to increment downloads", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ebooks`).Scan(&count); err != nil {
		zap.L().Error("failed to count ebooks", zap.Error(err))
		return 0, err
	}
	return count, nil
}
