package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/i18n"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidName     = errors.New("name is required")
)

// Product is a catalog entry with per-language text. Products are immutable
// once loaded; the cart and checkout only read them.
type Product struct {
	ID            int64                `json:"id"`
	Names         map[i18n.Lang]string `json:"names"`
	Descriptions  map[i18n.Lang]string `json:"descriptions"`
	Price         decimal.Decimal      `json:"price"`
	ImageFilename string               `json:"image_filename,omitempty"`
}

// Name returns the product name in lang, falling back to French.
func (p *Product) Name(lang i18n.Lang) string {
	return localized(p.Names, lang)
}

// Description returns the product description in lang, falling back to French.
func (p *Product) Description(lang i18n.Lang) string {
	return localized(p.Descriptions, lang)
}

func localized(m map[i18n.Lang]string, lang i18n.Lang) string {
	if s, ok := m[lang]; ok && s != "" {
		return s
	}
	return m[i18n.Fallback]
}

// Entry is a product resolved for one language.
type Entry struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"image_ref,omitempty"`
}

// Repository is the persistence boundary of the catalog.
type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	CountProducts(ctx context.Context) (int, error)
	InsertProduct(ctx context.Context, p *Product) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Lookup resolves a product in the given language. It returns
// ErrProductNotFound for unknown ids.
func (s *Service) Lookup(ctx context.Context, id int64, lang i18n.Lang) (*Entry, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEntry(p, lang), nil
}

// List returns every product in lang. A non-empty search keeps only products
// whose localized name contains it, case-insensitively.
func (s *Service) List(ctx context.Context, lang i18n.Lang, search string) ([]*Entry, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	entries := make([]*Entry, 0, len(products))
	for _, p := range products {
		e := toEntry(p, lang)
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.Names[i18n.Fallback] == "" {
		return nil, ErrInvalidName
	}
	if p.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	id, err := s.repo.InsertProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	created := *p
	created.ID = id
	return &created, nil
}

// SeedIfEmpty inserts the sample products when the catalog has none and
// reports how many were added.
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for _, p := range SampleProducts() {
		if _, err := s.Create(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %q: %w", p.Names[i18n.Fallback], err)
		}
	}
	return len(SampleProducts()), nil
}

func toEntry(p *Product, lang i18n.Lang) *Entry {
	return &Entry{
		ID:          p.ID,
		Name:        p.Name(lang),
		Description: p.Description(lang),
		Price:       p.Price,
		ImageRef:    p.ImageFilename,
	}
}
