package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"sellora-backend/db"
	"sellora-backend/models"
	"sellora-backend/utils"
)

const productColumns = `id, product_id, sku, name, slug, category_id, brand_id, price, wholesale_price, discount_price,
	stock_quantity, is_active, is_featured, image_path, short_description, description, rating, reviews_count, created_at, updated_at`

const variantColumns = `id, product_id, sku, ram, storage, color, price, wholesale_price, discount_price, stock_quantity, is_active`

// ProductRepository handles database operations for the catalog
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	var imagePath, shortDescription, description sql.NullString
	var discountPrice sql.NullInt64
	err := row.Scan(
		&p.ID,
		&p.ProductID,
		&p.SKU,
		&p.Name,
		&p.Slug,
		&p.CategoryID,
		&p.BrandID,
		&p.Price,
		&p.WholesalePrice,
		&discountPrice,
		&p.StockQuantity,
		&p.IsActive,
		&p.IsFeatured,
		&imagePath,
		&shortDescription,
		&description,
		&p.Rating,
		&p.ReviewsCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if discountPrice.Valid {
		p.DiscountPrice = discountPrice.Int64
	}
	if imagePath.Valid {
		p.ImagePath = imagePath.String
	}
	if shortDescription.Valid {
		p.ShortDescription = shortDescription.String
	}
	if description.Valid {
		p.Description = description.String
	}
	return &p, nil
}

func scanVariant(row interface{ Scan(...interface{}) error }) (*models.ProductVariant, error) {
	var v models.ProductVariant
	var ram, storage, color sql.NullString
	var discountPrice sql.NullInt64
	err := row.Scan(
		&v.ID,
		&v.ProductID,
		&v.SKU,
		&ram,
		&storage,
		&color,
		&v.Price,
		&v.WholesalePrice,
		&discountPrice,
		&v.StockQuantity,
		&v.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if ram.Valid {
		v.RAM = ram.String
	}
	if storage.Valid {
		v.Storage = storage.String
	}
	if color.Valid {
		v.Color = color.String
	}
	if discountPrice.Valid {
		v.DiscountPrice = discountPrice.Int64
	}
	return &v, nil
}

// Create creates a product with its variants in one transaction. The slug is
// derived from the name and suffixed on collision; the public product id is
// regenerated on collision. An empty SKU falls back to the public id.
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	log.Printf("📦 Create: Creating product name=%s", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than 0")
	}
	if req.CategoryID == 0 {
		return nil, fmt.Errorf("category_id cannot be empty")
	}
	if req.BrandID == 0 {
		return nil, fmt.Errorf("brand_id cannot be empty")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Find a free slug: base, base-2, base-3, ...
	baseSlug := utils.Slugify(req.Name)
	slug := baseSlug
	for i := 2; ; i++ {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists); err != nil {
			log.Printf("❌ Create: Error checking slug: %v", err)
			return nil, fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, i)
	}

	// Find a free public id
	publicID := utils.GeneratePublicID()
	for {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1)`, publicID).Scan(&exists); err != nil {
			log.Printf("❌ Create: Error checking product_id: %v", err)
			return nil, fmt.Errorf("failed to check product_id: %w", err)
		}
		if !exists {
			break
		}
		publicID = utils.GeneratePublicID()
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = publicID
	}

	queryInsert := `
		INSERT INTO products (product_id, sku, name, slug, category_id, brand_id, price, wholesale_price, discount_price,
		                      stock_quantity, is_active, is_featured, image_path, short_description, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, $11, $12, $13, $14)
		RETURNING ` + productColumns

	product, err := scanProduct(tx.QueryRowContext(ctx, queryInsert,
		publicID,
		sku,
		strings.TrimSpace(req.Name),
		slug,
		req.CategoryID,
		req.BrandID,
		req.Price,
		req.WholesalePrice,
		sql.NullInt64{Int64: req.DiscountPrice, Valid: req.DiscountPrice > 0},
		req.StockQuantity,
		req.IsFeatured,
		sql.NullString{String: req.ImagePath, Valid: req.ImagePath != ""},
		sql.NullString{String: req.ShortDescription, Valid: req.ShortDescription != ""},
		sql.NullString{String: req.Description, Valid: req.Description != ""},
	))
	if err != nil {
		log.Printf("❌ Create: Error creating product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	queryVariant := `
		INSERT INTO product_variants (product_id, sku, ram, storage, color, price, wholesale_price, discount_price, stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		RETURNING ` + variantColumns

	for i, vi := range req.Variants {
		if vi.Price <= 0 {
			return nil, fmt.Errorf("variant price must be greater than 0")
		}
		variantSKU := strings.TrimSpace(vi.SKU)
		if variantSKU == "" {
			variantSKU = fmt.Sprintf("%s-V%d", publicID, i+1)
		}
		variant, err := scanVariant(tx.QueryRowContext(ctx, queryVariant,
			product.ID,
			variantSKU,
			sql.NullString{String: vi.RAM, Valid: vi.RAM != ""},
			sql.NullString{String: vi.Storage, Valid: vi.Storage != ""},
			sql.NullString{String: vi.Color, Valid: vi.Color != ""},
			vi.Price,
			vi.WholesalePrice,
			sql.NullInt64{Int64: vi.DiscountPrice, Valid: vi.DiscountPrice > 0},
			vi.StockQuantity,
		))
		if err != nil {
			log.Printf("❌ Create: Error creating variant: %v", err)
			return nil, fmt.Errorf("failed to create variant: %w", err)
		}
		product.Variants = append(product.Variants, *variant)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created product id=%d slug=%s with %d variants", product.ID, product.Slug, len(product.Variants))
	return product, nil
}

// GetProduct retrieves a product by internal id with its variants
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetProduct: Product not found: id=%d", id)
			return nil, ErrProductNotFound
		}
		log.Printf("❌ GetProduct: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	variants, err := r.getVariants(ctx, id, false)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	return product, nil
}

// GetBySlug retrieves an active product by slug with its variants
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND is_active = true`

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetBySlug: Product not found: slug=%s", slug)
			return nil, ErrProductNotFound
		}
		log.Printf("❌ GetBySlug: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	variants, err := r.getVariants(ctx, product.ID, true)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	return product, nil
}

// GetVariant retrieves a variant by id
func (r *ProductRepository) GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`

	variant, err := scanVariant(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetVariant: Variant not found: id=%d", id)
			return nil, ErrVariantNotFound
		}
		log.Printf("❌ GetVariant: Error fetching variant: %v", err)
		return nil, fmt.Errorf("failed to fetch variant: %w", err)
	}

	return variant, nil
}

// GetActiveVariants retrieves a product's active variants ordered by id
func (r *ProductRepository) GetActiveVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	return r.getVariants(ctx, productID, true)
}

func (r *ProductRepository) getVariants(ctx context.Context, productID int64, activeOnly bool) ([]models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY id ASC`

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		log.Printf("❌ getVariants: Error fetching variants: %v", err)
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		variant, err := scanVariant(rows)
		if err != nil {
			log.Printf("❌ getVariants: Error scanning variant: %v", err)
			continue
		}
		variants = append(variants, *variant)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ getVariants: Error iterating variants: %v", err)
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	return variants, nil
}

// List retrieves products with optional category/brand/featured/active filters
func (r *ProductRepository) List(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	log.Printf("📦 List: Fetching products with filter=%+v", filter)

	query := `SELECT ` + productColumns + ` FROM products`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter != nil {
		if filter.CategoryID != 0 {
			conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
			args = append(args, filter.CategoryID)
			argIndex++
		}
		if filter.BrandID != 0 {
			conditions = append(conditions, fmt.Sprintf("brand_id = $%d", argIndex))
			args = append(args, filter.BrandID)
			argIndex++
		}
		if filter.Featured != nil {
			conditions = append(conditions, fmt.Sprintf("is_featured = $%d", argIndex))
			args = append(args, *filter.Featured)
			argIndex++
		}
		if filter.Active != nil {
			conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIndex))
			args = append(args, *filter.Active)
			argIndex++
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ List: Error scanning product: %v", err)
			continue
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating products: %v", err)
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d products", len(products))
	return products, nil
}

// GetImagePath retrieves the stored image path for a product
func (r *ProductRepository) GetImagePath(ctx context.Context, id int64) (string, error) {
	query := `SELECT image_path FROM products WHERE id = $1 AND is_active = true`

	var imagePath sql.NullString
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&imagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrProductNotFound
		}
		log.Printf("❌ GetImagePath: Error fetching image path: %v", err)
		return "", fmt.Errorf("failed to fetch image path: %w", err)
	}

	if !imagePath.Valid || imagePath.String == "" {
		return "", ErrProductNotFound
	}

	return imagePath.String, nil
}

// CreateCategory creates a category; the slug is derived from the name
func (r *ProductRepository) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	log.Printf("📦 CreateCategory: Creating category name=%s", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	query := `
		INSERT INTO categories (name, slug, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, parent_id
	`

	var category models.Category
	var parentID sql.NullInt64
	err := db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		utils.Slugify(req.Name),
		sql.NullInt64{Int64: req.ParentID, Valid: req.ParentID != 0},
	).Scan(&category.ID, &category.Name, &category.Slug, &parentID)
	if err != nil {
		log.Printf("❌ CreateCategory: Error creating category: %v", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if parentID.Valid {
		category.ParentID = parentID.Int64
	}

	log.Printf("✅ CreateCategory: Successfully created category id=%d", category.ID)
	return &category, nil
}

// ListCategories retrieves all categories ordered by name
func (r *ProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, parent_id FROM categories ORDER BY name ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ ListCategories: Error fetching categories: %v", err)
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		var parentID sql.NullInt64
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &parentID); err != nil {
			log.Printf("❌ ListCategories: Error scanning category: %v", err)
			continue
		}
		if parentID.Valid {
			category.ParentID = parentID.Int64
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ ListCategories: Error iterating categories: %v", err)
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// CreateBrand creates a brand; the slug is derived from the name
func (r *ProductRepository) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {
	log.Printf("📦 CreateBrand: Creating brand name=%s", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	query := `
		INSERT INTO brands (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug
	`

	var brand models.Brand
	err := db.DB.QueryRowContext(ctx, query, strings.TrimSpace(req.Name), utils.Slugify(req.Name)).
		Scan(&brand.ID, &brand.Name, &brand.Slug)
	if err != nil {
		log.Printf("❌ CreateBrand: Error creating brand: %v", err)
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	log.Printf("✅ CreateBrand: Successfully created brand id=%d", brand.ID)
	return &brand, nil
}

// ListBrands retrieves all brands ordered by name
func (r *ProductRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	query := `SELECT id, name, slug FROM brands ORDER BY name ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ ListBrands: Error fetching brands: %v", err)
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var brand models.Brand
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug); err != nil {
			log.Printf("❌ ListBrands: Error scanning brand: %v", err)
			continue
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ ListBrands: Error iterating brands: %v", err)
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}

	return brands, nil
}
