package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Nikolai0169/Ecommerce/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context, filter *string, onlyActive bool, limit, page *int32) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	SetCategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error)

	CreateSubcategory(ctx context.Context, s *Subcategory) error
	GetSubcategoryByID(ctx context.Context, id string) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID string, onlyActive bool) ([]*Subcategory, error)
	SetSubcategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error)

	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetProductActive(ctx context.Context, id string, active bool) error
	DeleteProduct(ctx context.Context, id string) (*string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// translatePg maps postgres constraint violations onto the package sentinels.
func translatePg(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case PgUniqueViolation:
			return ErrDuplicateName
		case PgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `
	INSERT INTO categories (id, name, description, active)
	VALUES ($1, $2, $3, TRUE)
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Description).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translatePg(err)
	}

	c.Active = true
	return nil
}

func (r *repository) GetCategoryByID(ctx context.Context, id string) (*Category, error) {
	query := `
	SELECT id, name, description, active, created_at, updated_at
	FROM categories
	WHERE id = $1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) ListCategories(
	ctx context.Context,
	filter *string,
	onlyActive bool,
	limit, page *int32,
) ([]*Category, error) {

	finalLimit := int32(20)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if page != nil && *page > 0 {
		finalPage = *page
	}
	offset := (finalPage - 1) * finalLimit

	where := []string{}
	args := []any{}

	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter+"%")
	}
	if onlyActive {
		where = append(where, "active")
	}

	query := `
	SELECT id, name, description, active, created_at, updated_at
	FROM categories
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*Category, 0, finalLimit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) UpdateCategory(ctx context.Context, c *Category) error {
	query := `
	UPDATE categories
	SET name = $1, description = $2, updated_at = NOW()
	WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.ID)
	if err != nil {
		return translatePg(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// SetCategoryActive flips the category flag. Deactivation cascades to every
// subcategory and product under the category inside one transaction; turning
// a category back on touches the category row only.
func (r *repository) SetCategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetCategoryActive"),
		zap.String("category_id", id),
		zap.Bool("active", active),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin deactivation tx: %w", err)
	}
	defer tx.Rollback()

	var current bool
	err = tx.QueryRowContext(ctx,
		`SELECT active FROM categories WHERE id = $1 FOR UPDATE`, id,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	result := &CascadeResult{}

	if current == active {
		log.Debug("category already in requested state")
		return result, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE categories SET active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	); err != nil {
		return nil, err
	}

	if !active {
		res, err := tx.ExecContext(ctx,
			`UPDATE subcategories SET active = FALSE, updated_at = NOW()
			 WHERE category_id = $1 AND active`, id,
		)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		result.Subcategories = int(n)

		res, err = tx.ExecContext(ctx,
			`UPDATE products SET active = FALSE, updated_at = NOW()
			 WHERE category_id = $1 AND active`, id,
		)
		if err != nil {
			return nil, err
		}
		n, err = res.RowsAffected()
		if err != nil {
			return nil, err
		}
		result.Products = int(n)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("category activation updated",
		zap.Int("subcategories_affected", result.Subcategories),
		zap.Int("products_affected", result.Products),
	)

	return result, nil
}

func (r *repository) CreateSubcategory(ctx context.Context, s *Subcategory) error {
	query := `
	INSERT INTO subcategories (id, name, description, category_id, active)
	VALUES ($1, $2, $3, $4, TRUE)
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, s.ID, s.Name, s.Description, s.CategoryID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translatePg(err)
	}

	s.Active = true
	return nil
}

func (r *repository) GetSubcategoryByID(ctx context.Context, id string) (*Subcategory, error) {
	query := `
	SELECT id, name, description, category_id, active, created_at, updated_at
	FROM subcategories
	WHERE id = $1
	`

	var s Subcategory
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListSubcategories(ctx context.Context, categoryID string, onlyActive bool) ([]*Subcategory, error) {
	query := `
	SELECT id, name, description, category_id, active, created_at, updated_at
	FROM subcategories
	WHERE category_id = $1
	`
	if onlyActive {
		query += " AND active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subcategories []*Subcategory
	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CategoryID, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, &s)
	}

	return subcategories, rows.Err()
}

// SetSubcategoryActive mirrors SetCategoryActive one level down: deactivation
// cascades to the subcategory's products in the same transaction.
func (r *repository) SetSubcategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin deactivation tx: %w", err)
	}
	defer tx.Rollback()

	var current bool
	err = tx.QueryRowContext(ctx,
		`SELECT active FROM subcategories WHERE id = $1 FOR UPDATE`, id,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	result := &CascadeResult{}

	if current == active {
		return result, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE subcategories SET active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	); err != nil {
		return nil, err
	}

	if !active {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET active = FALSE, updated_at = NOW()
			 WHERE subcategory_id = $1 AND active`, id,
		)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		result.Products = int(n)
	}

	return result, tx.Commit()
}

func (r *repository) CreateProduct(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("product_name", p.Name),
	)

	query := `
	INSERT INTO products (id, name, description, price, stock, image_name, category_id, subcategory_id, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImageName, p.CategoryID, p.SubcategoryID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return translatePg(err)
	}

	p.Active = true
	log.Info("product created", zap.String("product_id", p.ID))
	return nil
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	query := `
	SELECT id, name, description, price, stock, image_name, category_id, subcategory_id, active, created_at, updated_at
	FROM products
	WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageName,
		&p.CategoryID, &p.SubcategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListProducts(ctx context.Context, filter ListProductsFilter) ([]*Product, error) {
	finalLimit := int32(20)
	if filter.Limit != nil && *filter.Limit > 0 {
		finalLimit = *filter.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if filter.Page != nil && *filter.Page > 0 {
		finalPage = *filter.Page
	}
	offset := (finalPage - 1) * finalLimit

	where := []string{}
	args := []any{}

	if filter.CategoryID != nil && *filter.CategoryID != "" {
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
	}
	if filter.SubcategoryID != nil && *filter.SubcategoryID != "" {
		where = append(where, fmt.Sprintf("subcategory_id = $%d", len(args)+1))
		args = append(args, *filter.SubcategoryID)
	}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter.Search+"%")
	}
	if filter.OnlyActive {
		where = append(where, "active")
	}

	query := `
	SELECT id, name, description, price, stock, image_name, category_id, subcategory_id, active, created_at, updated_at
	FROM products
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageName,
			&p.CategoryID, &p.SubcategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}

func (r *repository) UpdateProduct(ctx context.Context, p *Product) error {
	query := `
	UPDATE products
	SET name = $1, description = $2, price = $3, image_name = $4,
	    category_id = $5, subcategory_id = $6, updated_at = NOW()
	WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.ImageName, p.CategoryID, p.SubcategoryID, p.ID,
	)
	if err != nil {
		return translatePg(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// SetProductActive flips a single product. Products are leaves, so there is
// nothing to cascade into.
func (r *repository) SetProductActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteProduct removes the row and hands back the image name so the caller
// can drop the asset. Order lines keep a RESTRICT reference, so a referenced
// product refuses deletion.
func (r *repository) DeleteProduct(ctx context.Context, id string) (*string, error) {
	var image sql.NullString
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM products WHERE id = $1 RETURNING image_name`, id,
	).Scan(&image)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgForeignKeyViolation {
			return nil, ErrProductReferenced
		}
		return nil, err
	}

	if !image.Valid {
		return nil, nil
	}
	return &image.String, nil
}
