package ebookservice

import (
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

func SampleEbooks() []domain.Ebook {
	return []domain.Ebook{
		{
			ID:    "1",
			Title: "The Art of Digital Marketing",
			Description: "A comprehensive guide to mastering digital marketing strategies in the modern age. " +
				"Learn SEO, social media marketing, content creation, and analytics to grow your business online.",
			ShortDescription: "Master digital marketing strategies including SEO, social media, and content creation for business growth.",
			CoverImage:       "/assets/sample-ebook-cover-2.jpg",
			Price:            29.99,
			Currency:         domain.CurrencyUSD,
			AuthorID:         "author1",
			AuthorName:       "Sarah Johnson",
			CreatedAt:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Downloads:        1250,
			Category:         "Business",
			PDFURL:           "/ebooks/digital-marketing.pdf",
		},
		{
			ID:    "2",
			Title: "Journey to Self-Discovery",
			Description: "Transform your life with proven techniques for personal growth, mindfulness, and achieving your full potential. " +
				"Includes practical exercises and real-life success stories.",
			ShortDescription: "Transform your life with proven techniques for personal growth, mindfulness, and achieving your potential.",
			CoverImage:       "/assets/sample-ebook-cover-3.jpg",
			Price:            19.99,
			Currency:         domain.CurrencyUSD,
			AuthorID:         "author2",
			AuthorName:       "Michael Chen",
			CreatedAt:        time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			Downloads:        890,
			Category:         "Self-Help",
			PDFURL:           "/ebooks/self-discovery.pdf",
		},
		{
			ID:    "3",
			Title: "Mystery at Midnight Manor",
			Description: "A thrilling mystery novel that will keep you on the edge of your seat. " +
				"When detective Emma Stone arrives at the mysterious Midnight Manor, she uncovers secrets that change everything.",
			ShortDescription: "A thrilling mystery novel about detective Emma Stone uncovering dark secrets at Midnight Manor.",
			CoverImage:       "/assets/sample-ebook-cover-1.jpg",
			Price:            14.99,
			Currency:         domain.CurrencyUSD,
			AuthorID:         "author3",
			AuthorName:       "James Wilson",
			CreatedAt:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Downloads:        2100,
			Category:         "Fiction",
			PDFURL:           "/ebooks/mystery-manor.pdf",
		},
	}
}
