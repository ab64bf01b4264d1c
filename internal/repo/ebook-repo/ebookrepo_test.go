package ebookrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

var columns = []string{
	"id", "title", "description", "short_description", "cover_image", "price", "currency",
	"author_id", "author_name", "created_at", "downloads", "category", "pdf_url",
}

var createdAt = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func sampleEbook(id, title, authorID string) domain.Ebook {
	return domain.Ebook{
		ID:               id,
		Title:            title,
		Description:      "description",
		ShortDescription: "short",
		CoverImage:       "/assets/sample-ebook-cover-1.jpg",
		Price:            14.99,
		Currency:         domain.CurrencyUSD,
		AuthorID:         authorID,
		AuthorName:       "Author",
		CreatedAt:        createdAt,
		Downloads:        7,
		Category:         "Fiction",
		PDFURL:           "/ebooks/sample.pdf",
	}
}

func addRow(rows *pgxmock.Rows, e domain.Ebook) *pgxmock.Rows {
	return rows.AddRow(e.ID, e.Title, e.Description, e.ShortDescription, e.CoverImage, e.Price, e.Currency,
		e.AuthorID, e.AuthorName, e.CreatedAt, e.Downloads, e.Category, e.PDFURL)
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock, _ := NewMock(t)
	first := sampleEbook("1", "First", "author1")
	second := sampleEbook("2", "Second", "author2")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Ebook
	}{
		{
			name: "Catalogue in insertion order",
			mockSetup: func() {
				rows := addRow(addRow(pgxmock.NewRows(columns), first), second)
				mock.ExpectQuery(regexp.QuoteMeta("FROM ebooks e ORDER BY e.seq")).WillReturnRows(rows)
			},
			result: []domain.Ebook{first, second},
		},
		{
			name: "Empty catalogue",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM ebooks e ORDER BY e.seq")).WillReturnRows(pgxmock.NewRows(columns))
			},
			result: []domain.Ebook{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM ebooks e ORDER BY e.seq")).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindAll(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByAuthor(t *testing.T) {
	repo, mock, _ := NewMock(t)
	ebook := sampleEbook("5", "Mine", "user-1")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.author_id = $1")).
		WithArgs("user-1").
		WillReturnRows(addRow(pgxmock.NewRows(columns), ebook))

	result, err := repo.FindByAuthor(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, []domain.Ebook{ebook}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindPurchasedBy(t *testing.T) {
	repo, mock, _ := NewMock(t)
	ebook := sampleEbook("1", "Bought", "author1")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM purchases p WHERE p.ebook_id = e.id AND p.user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(addRow(pgxmock.NewRows(columns), ebook))

	result, err := repo.FindPurchasedBy(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, []domain.Ebook{ebook}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	ebook := sampleEbook("3", "Mystery at Midnight Manor", "author3")
	query := regexp.QuoteMeta("FROM ebooks e WHERE e.id = $1")

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		expectErr bool
		result    *domain.Ebook
	}{
		{
			name: "Ebook found",
			id:   "3",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("3").WillReturnRows(addRow(pgxmock.NewRows(columns), ebook))
			},
			result: &ebook,
		},
		{
			name: "Ebook not found",
			id:   "404",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("404").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   "3",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("3").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	ebook := sampleEbook("9", "New", "user-1")
	ebook.Downloads = 0

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Ebook saved",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ebooks")).
					WithArgs(ebook.ID, ebook.Title, ebook.Description, ebook.ShortDescription, ebook.CoverImage, ebook.Price, ebook.Currency,
						ebook.AuthorID, ebook.AuthorName, ebook.CreatedAt, ebook.Downloads, ebook.Category, ebook.PDFURL).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ebooks")).
					WithArgs(anyArgs(13)...).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
					return fn(ctx)
				})
			tt.mockSetup()

			result, err := repo.Create(context.Background(), &ebook)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, &ebook, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_IncrementDownloads(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("UPDATE ebooks SET downloads = downloads + 1 WHERE id = $1")

	mock.ExpectExec(query).WithArgs("1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.IncrementDownloads(context.Background(), "1"))

	mock.ExpectExec(query).WithArgs("404").WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.IncrementDownloads(context.Background(), "404"), pgx.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM ebooks")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
