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

// CustomerRepository handles database operations for accounts and profiles
type CustomerRepository struct{}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

// Register creates a user account and its customer profile in one transaction.
// New customers always start as retail.
func (r *CustomerRepository) Register(ctx context.Context, req *models.RegisterRequest, passwordHash string) (*models.Customer, error) {
	log.Printf("📥 Register: Creating account for email=%s", req.Email)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Register: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Reject duplicate emails up front for a clean error
	var exists bool
	queryExists := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := tx.QueryRowContext(ctx, queryExists, email).Scan(&exists); err != nil {
		log.Printf("❌ Register: Error checking email: %v", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		log.Printf("❌ Register: Email already registered: %s", email)
		return nil, ErrEmailTaken
	}

	var userID int64
	queryUser := `
		INSERT INTO users (email, password_hash, is_staff)
		VALUES ($1, $2, false)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, queryUser, email, passwordHash).Scan(&userID); err != nil {
		log.Printf("❌ Register: Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	queryCustomer := `
		INSERT INTO customers (user_id, name, email, phone, customer_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, email, phone, customer_type, created_at
	`

	var customer models.Customer
	var phone sql.NullString
	err = tx.QueryRowContext(ctx, queryCustomer,
		userID,
		strings.TrimSpace(req.Name),
		email,
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		models.CustomerTypeRetail,
	).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Name,
		&customer.Email,
		&phone,
		&customer.CustomerType,
		&customer.CreatedAt,
	)
	if err != nil {
		log.Printf("❌ Register: Error creating customer profile: %v", err)
		return nil, fmt.Errorf("failed to create customer profile: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Register: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Register: Successfully created customer id=%d for user id=%d", customer.ID, userID)
	return &customer, nil
}

// GetUserByEmail retrieves a user (including the password hash) for login
func (r *CustomerRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, is_staff, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := db.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		log.Printf("❌ GetUserByEmail: Error fetching user: %v", err)
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByUserID retrieves the customer profile linked to a user
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	query := `
		SELECT id, user_id, name, email, phone, customer_type, created_at
		FROM customers
		WHERE user_id = $1
	`

	var customer models.Customer
	var phone sql.NullString
	err := db.DB.QueryRowContext(ctx, query, userID).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Name,
		&customer.Email,
		&phone,
		&customer.CustomerType,
		&customer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetByUserID: Customer not found for user id=%d", userID)
			return nil, ErrCustomerNotFound
		}
		log.Printf("❌ GetByUserID: Error fetching customer: %v", err)
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}

	return &customer, nil
}

// UpdateProfile updates the customer's name and phone
func (r *CustomerRepository) UpdateProfile(ctx context.Context, customerID int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	log.Printf("📥 UpdateProfile: Updating customer id=%d", customerID)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	query := `
		UPDATE customers
		SET name = $1, phone = $2
		WHERE id = $3
		RETURNING id, user_id, name, email, phone, customer_type, created_at
	`

	var customer models.Customer
	var phone sql.NullString
	err := db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		customerID,
	).Scan(
		&customer.ID,
		&customer.UserID,
		&customer.Name,
		&customer.Email,
		&phone,
		&customer.CustomerType,
		&customer.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ UpdateProfile: Customer not found: id=%d", customerID)
			return nil, ErrCustomerNotFound
		}
		log.Printf("❌ UpdateProfile: Error updating customer: %v", err)
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if phone.Valid {
		customer.Phone = phone.String
	}

	log.Printf("✅ UpdateProfile: Successfully updated customer id=%d", customerID)
	return &customer, nil
}

// UpdatePasswordHash replaces a user's password hash
func (r *CustomerRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	result, err := db.DB.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		log.Printf("❌ UpdatePasswordHash: Error updating password: %v", err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	log.Printf("✅ UpdatePasswordHash: Password updated for user id=%d", userID)
	return nil
}
