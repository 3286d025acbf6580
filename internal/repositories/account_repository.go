package repositories

import (
	"github.com/okanv/likeledger/internal/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccountByAddress(address string) (*models.Account, error)
	GetAccountByFirebaseUID(firebaseUID string) (*models.Account, error)
	UpdateAccount(account *models.Account) error
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// CreateAccount creates a new account in PostgreSQL
func (r *PostgresAccountRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetAccountByID retrieves an account by ID from PostgreSQL
func (r *PostgresAccountRepository) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByEmail retrieves an account by email from PostgreSQL
func (r *PostgresAccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByAddress retrieves an account by its ledger address
func (r *PostgresAccountRepository) GetAccountByAddress(address string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("address = ?", address).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByFirebaseUID retrieves an account by Firebase UID from PostgreSQL
func (r *PostgresAccountRepository) GetAccountByFirebaseUID(firebaseUID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount updates an existing account in PostgreSQL
func (r *PostgresAccountRepository) UpdateAccount(account *models.Account) error {
	return r.db.Save(account).Error
}
