package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/i18n"
)

// ProductRepository implements catalog.Repository on SQL.
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name_fr, name_en, name_ar, description_fr, description_en, description_ar, price, image_filename`

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepository) InsertProduct(ctx context.Context, p *catalog.Product) (int64, error) {
	args := []any{
		p.Names[i18n.French], p.Names[i18n.English], p.Names[i18n.Arabic],
		p.Descriptions[i18n.French], p.Descriptions[i18n.English], p.Descriptions[i18n.Arabic],
		p.Price.StringFixed(2), nullString(p.ImageFilename),
	}
	query := `INSERT INTO products (name_fr, name_en, name_ar, description_fr, description_en, description_ar, price, image_filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if r.db.dialect == Postgres {
		var id int64
		err := r.db.QueryRowContext(ctx, r.db.rebind(query+` RETURNING id`), args...).Scan(&id)
		return id, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p                      catalog.Product
		nameFR, nameEN, nameAR string
		descFR, descEN, descAR string
		image                  sql.NullString
	)
	if err := row.Scan(&p.ID, &nameFR, &nameEN, &nameAR, &descFR, &descEN, &descAR, &p.Price, &image); err != nil {
		return nil, err
	}
	p.Names = map[i18n.Lang]string{i18n.French: nameFR, i18n.English: nameEN, i18n.Arabic: nameAR}
	p.Descriptions = map[i18n.Lang]string{i18n.French: descFR, i18n.English: descEN, i18n.Arabic: descAR}
	p.ImageFilename = image.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
