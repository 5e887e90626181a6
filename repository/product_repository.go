package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/NBNEORIGIN/signmaker/db"
	"github.com/NBNEORIGIN/signmaker/models"
)

// ProductRepository handles database operations for sign products
// Implements ProductRepositoryInterface
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, m_number, description, size, color, orientation, layout_mode,
	icon_files, text_line_1, text_line_2, text_line_3, font, material, mounting_type,
	ean, qa_status, icon_scale, text_scale, icon_offset_x, icon_offset_y`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.MNumber, &p.Description, &p.Size, &p.Color, &p.Orientation, &p.LayoutMode,
		&p.IconFiles, &p.TextLine1, &p.TextLine2, &p.TextLine3, &p.Font, &p.Material, &p.MountingType,
		&p.EAN, &p.QAStatus, &p.IconScale, &p.TextScale, &p.IconOffsetX, &p.IconOffsetY,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByMNumber returns a single product by its M number
func (r *ProductRepository) GetByMNumber(ctx context.Context, mNumber string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE m_number = $1`
	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, mNumber))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s not found", mNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", mNumber, err)
	}
	return p, nil
}

// GetByMNumbers returns the products matching the given M numbers,
// in database order
func (r *ProductRepository) GetByMNumbers(ctx context.Context, mNumbers []string) ([]models.Product, error) {
	if len(mNumbers) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(mNumbers))
	args := make([]any, len(mNumbers))
	for i, m := range mNumbers {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = m
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE m_number IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY m_number ASC`
	return r.queryProducts(ctx, query, args...)
}

// GetAll returns every product ordered by M number
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY m_number ASC`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Insert inserts a new product
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	log.Printf("💾 Repository.Insert called for m_number: %s", p.MNumber)

	query := `
		INSERT INTO products (m_number, description, size, color, orientation, layout_mode,
			icon_files, text_line_1, text_line_2, text_line_3, font, material, mounting_type,
			ean, qa_status, icon_scale, text_scale, icon_offset_x, icon_offset_y)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`
	err := db.DB.QueryRowContext(ctx, query,
		p.MNumber, p.Description, p.Size, p.Color, p.Orientation, p.LayoutMode,
		p.IconFiles, p.TextLine1, p.TextLine2, p.TextLine3, p.Font, p.Material, p.MountingType,
		p.EAN, p.QAStatus, p.IconScale, p.TextScale, p.IconOffsetX, p.IconOffsetY,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product %s: %w", p.MNumber, err)
	}
	return nil
}

// Update updates all editable fields of a product by M number
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products SET description = $2, size = $3, color = $4, orientation = $5,
			layout_mode = $6, icon_files = $7, text_line_1 = $8, text_line_2 = $9,
			text_line_3 = $10, font = $11, material = $12, mounting_type = $13, ean = $14,
			qa_status = $15, icon_scale = $16, text_scale = $17, icon_offset_x = $18,
			icon_offset_y = $19
		WHERE m_number = $1`
	result, err := db.DB.ExecContext(ctx, query,
		p.MNumber, p.Description, p.Size, p.Color, p.Orientation,
		p.LayoutMode, p.IconFiles, p.TextLine1, p.TextLine2,
		p.TextLine3, p.Font, p.Material, p.MountingType, p.EAN,
		p.QAStatus, p.IconScale, p.TextScale, p.IconOffsetX,
		p.IconOffsetY,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.MNumber, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("product %s not found", p.MNumber)
	}
	return nil
}

// Delete removes a product by M number
func (r *ProductRepository) Delete(ctx context.Context, mNumber string) error {
	_, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE m_number = $1`, mNumber)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", mNumber, err)
	}
	return nil
}
