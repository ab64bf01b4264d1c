package generator

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const coverVariants = 3

var ErrGenerationFailed = errors.New("content generation failed")

var whitespace = regexp.MustCompile(`\s+`)

type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AIModel     string `json:"aiModel"`
	CoverStyle  string `json:"coverStyle"`
}

type Content struct {
	CoverImage string `json:"coverImage"`
	PDFURL     string `json:"pdfUrl"`
}

type ContentGenerator interface {
	Generate(ctx context.Context, req Request) (*Content, error)
}

// CoverImageFor picks one of the bundled sample covers from the title hash.
func CoverImageFor(title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("/assets/sample-ebook-cover-%d.jpg", h.Sum32()%coverVariants+1)
}

func PDFURLFor(title string) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(title), "-")
	return "/ebooks/" + slug + ".pdf"
}

type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) Generate(ctx context.Context, req Request) (*Content, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: empty title", ErrGenerationFailed)
	}
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	zap.L().Debug("content generated", zap.String("title", req.Title), zap.String("model", req.AIModel))
	return &Content{
		CoverImage: CoverImageFor(req.Title),
		PDFURL:     PDFURLFor(req.Title),
	}, nil
}
