package domain

import "time"

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierBasic   SubscriptionTier = "basic"
	TierPremium SubscriptionTier = "premium"
)

func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierBasic, TierPremium:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

const (
	WithdrawalPending   = "PENDING"
	WithdrawalProcessed = "PROCESSED"
	WithdrawalFailed    = "FAILED"
)

type User struct {
	ID           string           `json:"id" db:"id"`
	Nickname     string           `json:"nickname" db:"nickname"`
	Email        string           `json:"email" db:"email"`
	PasswordHash string           `json:"password" db:"password_hash"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	Balance      float64          `json:"balance" db:"balance"`
	Subscription SubscriptionTier `json:"subscription" db:"subscription"`
}

type Balance struct {
	UserID    string  `db:"user_id"`
	Current   float64 `db:"balance"`
	Withdrawn float64 `db:"withdrawn"`
}

type Ebook struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	ShortDescription string    `json:"shortDescription" db:"short_description"`
	CoverImage       string    `json:"coverImage" db:"cover_image"`
	Price            float64   `json:"price" db:"price"`
	Currency         Currency  `json:"currency" db:"currency"`
	AuthorID         string    `json:"authorId" db:"author_id"`
	AuthorName       string    `json:"authorName" db:"author_name"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	Downloads        int       `json:"downloads" db:"downloads"`
	Category         string    `json:"category" db:"category"`
	PDFURL           string    `json:"pdfUrl" db:"pdf_url"`
}

type EbookForm struct {
	Title            string
	Description      string
	ShortDescription string
	Price            float64
	Currency         Currency
	AIModel          string
	CoverStyle       string
	Category         string
}

type Purchase struct {
	ID           string    `json:"id" db:"id"`
	EbookID      string    `json:"ebookId" db:"ebook_id"`
	UserID       string    `json:"userId" db:"user_id"`
	PurchaseDate time.Time `json:"purchaseDate" db:"purchase_date"`
	Price        float64   `json:"price" db:"price"`
	Currency     Currency  `json:"currency" db:"currency"`
}

type Withdrawal struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Amount      float64    `json:"amount" db:"amount"`
	Method      string     `json:"method" db:"method"`
	Account     string     `json:"account,omitempty" db:"account"`
	Status      string     `json:"status" db:"status"`
	RequestedAt time.Time  `json:"requestedAt" db:"requested_at"`
	ProcessedAt *time.Time `json:"processedAt,omitempty" db:"processed_at"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Plan struct {
	Tier        SubscriptionTier
	Name        string
	Price       float64
	EbooksLimit int
	Features    []string
}

type Stats struct {
	Created   int
	Purchased int
	Total     int
	Balance   float64
}
