package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domproduct "example.com/trendy-store/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
    id, name, brand, category, description, price, original_price,
    images, sizes, colors, rating, review_count, in_stock, is_featured, created_at
`

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	images, sizes, colors, err := marshalLists(p)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
        INSERT INTO products (
            name, brand, category, description, price, original_price,
            images, sizes, colors, rating, review_count, in_stock, is_featured
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		p.Name, p.Brand, p.Category, p.Description, p.Price, p.OriginalPrice,
		images, sizes, colors, p.Rating, p.ReviewCount, p.InStock, p.IsFeatured,
	)
	if err != nil {
		return nil, err
	}
	p.ID, _ = res.LastInsertId()
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	images, sizes, colors, err := marshalLists(p)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE products
        SET name = ?, brand = ?, category = ?, description = ?, price = ?, original_price = ?,
            images = ?, sizes = ?, colors = ?, rating = ?, review_count = ?, in_stock = ?, is_featured = ?
        WHERE id = ?
    `,
		p.Name, p.Brand, p.Category, p.Description, p.Price, p.OriginalPrice,
		images, sizes, colors, p.Rating, p.ReviewCount, p.InStock, p.IsFeatured, p.ID,
	)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domproduct.ErrProductNotFound
	}
	return p, err
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var conds []string
	var args []any

	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Brand != "" {
		conds = append(conds, "brand = ?")
		args = append(args, filter.Brand)
	}
	if filter.Search != "" {
		conds = append(conds, "(name LIKE ? OR description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Featured {
		conds = append(conds, "is_featured = TRUE")
	}
	if filter.Discounted {
		conds = append(conds, "original_price > price")
	}
	if filter.OnlyInStock {
		conds = append(conds, "in_stock = TRUE")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch filter.Sort {
	case "price_asc":
		query += " ORDER BY price ASC"
	case "price_desc":
		query += " ORDER BY price DESC"
	case "rating":
		query += " ORDER BY rating DESC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func marshalLists(p *domproduct.Product) (images, sizes, colors []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	if sizes, err = json.Marshal(p.Sizes); err != nil {
		return nil, nil, nil, err
	}
	if colors, err = json.Marshal(p.Colors); err != nil {
		return nil, nil, nil, err
	}
	return images, sizes, colors, nil
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	var images, sizes, colors []byte
	var originalPrice sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Category, &p.Description, &p.Price, &originalPrice,
		&images, &sizes, &colors, &p.Rating, &p.ReviewCount, &p.InStock, &p.IsFeatured, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.OriginalPrice = originalPrice.Float64
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]*domproduct.Product, error) {
	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
