package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"sellora-backend/db"
	"sellora-backend/models"
)

const addressColumns = `id, customer_id, full_name, phone, address, division, district, sub_district, address_type, is_default`

// AddressRepository handles database operations for customer address books
type AddressRepository struct{}

// NewAddressRepository creates a new AddressRepository
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

// Ensure AddressRepository implements AddressRepositoryInterface
var _ AddressRepositoryInterface = (*AddressRepository)(nil)

func scanAddress(row interface{ Scan(...interface{}) error }) (*models.Address, error) {
	var a models.Address
	var subDistrict sql.NullString
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.FullName,
		&a.Phone,
		&a.Address,
		&a.Division,
		&a.District,
		&subDistrict,
		&a.AddressType,
		&a.IsDefault,
	)
	if err != nil {
		return nil, err
	}
	if subDistrict.Valid {
		a.SubDistrict = subDistrict.String
	}
	return &a, nil
}

func validateAddressRequest(req *models.CreateAddressRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("full_name cannot be empty")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if strings.TrimSpace(req.Division) == "" {
		return fmt.Errorf("division cannot be empty")
	}
	if strings.TrimSpace(req.District) == "" {
		return fmt.Errorf("district cannot be empty")
	}
	if req.AddressType != "" && req.AddressType != models.AddressTypeHome && req.AddressType != models.AddressTypeOffice {
		return fmt.Errorf("address_type must be %s or %s", models.AddressTypeHome, models.AddressTypeOffice)
	}
	return nil
}

// Create creates a new address. When the new address is marked default, any
// previous default is cleared in the same transaction.
func (r *AddressRepository) Create(ctx context.Context, customerID int64, req *models.CreateAddressRequest) (*models.Address, error) {
	log.Printf("📥 Create: Creating address for customer_id=%d", customerID)

	if err := validateAddressRequest(req); err != nil {
		return nil, err
	}

	addressType := req.AddressType
	if addressType == "" {
		addressType = models.AddressTypeHome
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// First address for a customer becomes the default automatically
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses WHERE customer_id = $1`, customerID).Scan(&count); err != nil {
		log.Printf("❌ Create: Error counting addresses: %v", err)
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	isDefault := req.IsDefault || count == 0

	if isDefault {
		queryClear := `UPDATE addresses SET is_default = false WHERE customer_id = $1 AND is_default = true`
		if _, err := tx.ExecContext(ctx, queryClear, customerID); err != nil {
			log.Printf("❌ Create: Error clearing previous default: %v", err)
			return nil, fmt.Errorf("failed to clear previous default: %w", err)
		}
	}

	queryInsert := `
		INSERT INTO addresses (customer_id, full_name, phone, address, division, district, sub_district, address_type, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + addressColumns

	address, err := scanAddress(tx.QueryRowContext(ctx, queryInsert,
		customerID,
		strings.TrimSpace(req.FullName),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Address),
		strings.TrimSpace(req.Division),
		strings.TrimSpace(req.District),
		sql.NullString{String: req.SubDistrict, Valid: req.SubDistrict != ""},
		addressType,
		isDefault,
	))
	if err != nil {
		log.Printf("❌ Create: Error creating address: %v", err)
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created address id=%d (default=%v)", address.ID, isDefault)
	return address, nil
}

// GetByID retrieves an address scoped to its owner
func (r *AddressRepository) GetByID(ctx context.Context, customerID, addressID int64) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND customer_id = $2`

	address, err := scanAddress(db.DB.QueryRowContext(ctx, query, addressID, customerID))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetByID: Address not found: id=%d, customer_id=%d", addressID, customerID)
			return nil, ErrAddressNotFound
		}
		log.Printf("❌ GetByID: Error fetching address: %v", err)
		return nil, fmt.Errorf("failed to fetch address: %w", err)
	}

	return address, nil
}

// List retrieves a customer's addresses, default first
func (r *AddressRepository) List(ctx context.Context, customerID int64) ([]models.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		log.Printf("❌ List: Error fetching addresses: %v", err)
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			log.Printf("❌ List: Error scanning address: %v", err)
			continue
		}
		addresses = append(addresses, *address)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ List: Error iterating addresses: %v", err)
		return nil, fmt.Errorf("failed to iterate addresses: %w", err)
	}

	return addresses, nil
}

// Update replaces an address's fields, handling default promotion in the
// same transaction
func (r *AddressRepository) Update(ctx context.Context, customerID, addressID int64, req *models.CreateAddressRequest) (*models.Address, error) {
	log.Printf("📥 Update: Updating address id=%d for customer_id=%d", addressID, customerID)

	if err := validateAddressRequest(req); err != nil {
		return nil, err
	}

	addressType := req.AddressType
	if addressType == "" {
		addressType = models.AddressTypeHome
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Update: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if req.IsDefault {
		queryClear := `UPDATE addresses SET is_default = false WHERE customer_id = $1 AND is_default = true AND id <> $2`
		if _, err := tx.ExecContext(ctx, queryClear, customerID, addressID); err != nil {
			log.Printf("❌ Update: Error clearing previous default: %v", err)
			return nil, fmt.Errorf("failed to clear previous default: %w", err)
		}
	}

	queryUpdate := `
		UPDATE addresses
		SET full_name = $1, phone = $2, address = $3, division = $4, district = $5,
		    sub_district = $6, address_type = $7, is_default = $8
		WHERE id = $9 AND customer_id = $10
		RETURNING ` + addressColumns

	address, err := scanAddress(tx.QueryRowContext(ctx, queryUpdate,
		strings.TrimSpace(req.FullName),
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Address),
		strings.TrimSpace(req.Division),
		strings.TrimSpace(req.District),
		sql.NullString{String: req.SubDistrict, Valid: req.SubDistrict != ""},
		addressType,
		req.IsDefault,
		addressID,
		customerID,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ Update: Address not found: id=%d, customer_id=%d", addressID, customerID)
			return nil, ErrAddressNotFound
		}
		log.Printf("❌ Update: Error updating address: %v", err)
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Update: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Update: Successfully updated address id=%d", addressID)
	return address, nil
}

// Delete removes an address from the customer's address book
func (r *AddressRepository) Delete(ctx context.Context, customerID, addressID int64) error {
	log.Printf("🗑️ Delete: Deleting address id=%d for customer_id=%d", addressID, customerID)

	query := `DELETE FROM addresses WHERE id = $1 AND customer_id = $2`

	result, err := db.DB.ExecContext(ctx, query, addressID, customerID)
	if err != nil {
		log.Printf("❌ Delete: Error deleting address: %v", err)
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ Delete: Address not found: id=%d, customer_id=%d", addressID, customerID)
		return ErrAddressNotFound
	}

	log.Printf("✅ Delete: Successfully deleted address id=%d", addressID)
	return nil
}

// SetDefault marks one address as the default, clearing the previous default
// in the same transaction so at most one is ever set.
func (r *AddressRepository) SetDefault(ctx context.Context, customerID, addressID int64) error {
	log.Printf("📥 SetDefault: Setting address id=%d as default for customer_id=%d", addressID, customerID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ SetDefault: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryClear := `UPDATE addresses SET is_default = false WHERE customer_id = $1 AND is_default = true`
	if _, err := tx.ExecContext(ctx, queryClear, customerID); err != nil {
		log.Printf("❌ SetDefault: Error clearing previous default: %v", err)
		return fmt.Errorf("failed to clear previous default: %w", err)
	}

	querySet := `UPDATE addresses SET is_default = true WHERE id = $1 AND customer_id = $2`
	result, err := tx.ExecContext(ctx, querySet, addressID, customerID)
	if err != nil {
		log.Printf("❌ SetDefault: Error setting default: %v", err)
		return fmt.Errorf("failed to set default: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Printf("❌ SetDefault: Address not found: id=%d, customer_id=%d", addressID, customerID)
		return ErrAddressNotFound
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ SetDefault: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ SetDefault: Address id=%d is now the default", addressID)
	return nil
}
