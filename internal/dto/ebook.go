package dto

import (
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

type CreateEbookRequestDTO struct {
	Title            string  `json:"title" validate:"required" example:"Go in Practice"`
	Description      string  `json:"description" validate:"required" example:"Hands-on techniques for building Go services."`
	ShortDescription string  `json:"shortDescription" validate:"required" example:"Practical Go techniques."`
	Price            float64 `json:"price" validate:"gte=0" example:"9.99"`
	Currency         string  `json:"currency" validate:"required,oneof=USD EUR" example:"USD"`
	AIModel          string  `json:"aiModel" validate:"required" example:"claude"`
	CoverStyle       string  `json:"coverStyle" validate:"required" example:"minimalist"`
	Category         string  `json:"category" validate:"required" example:"Technology"`
}

func (r CreateEbookRequestDTO) Form() domain.EbookForm {
	return domain.EbookForm{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Price:            r.Price,
		Currency:         domain.Currency(r.Currency),
		AIModel:          r.AIModel,
		CoverStyle:       r.CoverStyle,
		Category:         r.Category,
	}
}

type EbookResponseDTO struct {
	ID               string    `json:"id" example:"3"`
	Title            string    `json:"title" example:"Mystery at Midnight Manor"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"shortDescription"`
	CoverImage       string    `json:"coverImage" example:"/assets/sample-ebook-cover-1.jpg"`
	Price            float64   `json:"price" example:"14.99"`
	Currency         string    `json:"currency" example:"USD"`
	AuthorID         string    `json:"authorId" example:"author3"`
	AuthorName       string    `json:"authorName" example:"James Wilson"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-03-10T00:00:00Z"`
	Downloads        int       `json:"downloads" example:"2100"`
	Category         string    `json:"category" example:"Fiction"`
	PDFURL           string    `json:"pdfUrl" example:"/ebooks/mystery-manor.pdf"`
}

func NewEbookResponse(e domain.Ebook) EbookResponseDTO {
	return EbookResponseDTO{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		CoverImage:       e.CoverImage,
		Price:            e.Price,
		Currency:         string(e.Currency),
		AuthorID:         e.AuthorID,
		AuthorName:       e.AuthorName,
		CreatedAt:        e.CreatedAt,
		Downloads:        e.Downloads,
		Category:         e.Category,
		PDFURL:           e.PDFURL,
	}
}

func NewEbookListResponse(ebooks []domain.Ebook) []EbookResponseDTO {
	response := make([]EbookResponseDTO, len(ebooks))
	for i, e := range ebooks {
		response[i] = NewEbookResponse(e)
	}
	return response
}

type PurchaseRequestDTO struct {
	Method string `json:"method" example:"stripe"`
}

type PurchaseResponseDTO struct {
	ID           string    `json:"id"`
	EbookID      string    `json:"ebookId" example:"1"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Price        float64   `json:"price" example:"29.99"`
	Currency     string    `json:"currency" example:"USD"`
	PDFURL       string    `json:"pdfUrl" example:"/ebooks/digital-marketing.pdf"`
}

type StatsResponseDTO struct {
	Created   int     `json:"created" example:"2"`
	Purchased int     `json:"purchased" example:"3"`
	Total     int     `json:"total" example:"12"`
	Balance   float64 `json:"balance" example:"20.99"`
}

type DashboardResponseDTO struct {
	Stats   StatsResponseDTO   `json:"stats"`
	Popular []EbookResponseDTO `json:"popular"`
}
