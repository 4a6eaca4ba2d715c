package keystore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snehendu098/ghost/wallet/pkg/account"
	"github.com/snehendu098/ghost/wallet/pkg/log"
)

var (
	ErrNotFound         = errors.New("account not found")
	ErrDuplicateName    = errors.New("an account with this name already exists")
	ErrDuplicateAddress = errors.New("this account is already stored")
	ErrInvalidName      = errors.New("name must be 1-64 characters of letters, digits, '.', '_' or '-'")
	ErrCorrupt          = errors.New("stored key does not match its address")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// keyRecord is a row of the accounts table. Only the address is kept in the
// clear; the private key seed is sealed with the owner's passphrase and the
// address is bound to the ciphertext as associated data.
type keyRecord struct {
	ID        string `gorm:"column:id;primaryKey"`
	Name      string `gorm:"column:name;uniqueIndex;not null"`
	Address   string `gorm:"column:address;uniqueIndex;not null"`
	SealedKey []byte `gorm:"column:sealed_key;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (keyRecord) TableName() string {
	return "accounts"
}

// Entry is the public view of a stored account.
type Entry struct {
	ID        string
	Name      string
	Address   account.Address
	CreatedAt time.Time
}

// Store keeps passphrase-sealed private keys in a gorm database.
// It is safe for concurrent use.
type Store struct {
	db *gorm.DB
	lg log.Logger

	kdf KDFParams
}

// NewStore wraps an open, migrated database.
func NewStore(db *gorm.DB, lg log.Logger) *Store {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return &Store{
		db:  db,
		lg:  lg.WithName("keystore"),
		kdf: DefaultKDFParams,
	}
}

// Add seals pk under passphrase and stores it as name.
func (s *Store) Add(ctx context.Context, name string, pk *account.PrivateKey, passphrase string) (Entry, error) {
	if !namePattern.MatchString(name) {
		return Entry{}, ErrInvalidName
	}
	if passphrase == "" {
		return Entry{}, errors.New("passphrase cannot be empty")
	}

	addr := pk.Address().String()
	seed := pk.Bytes()
	defer zeroBytes(seed)

	sealed, err := sealWithParams(seed, passphrase, []byte(addr), s.kdf)
	if err != nil {
		return Entry{}, fmt.Errorf("seal private key: %w", err)
	}

	rec := keyRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   addr,
		SealedKey: sealed,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []keyRecord
		if err := tx.Where("name = ? OR address = ?", name, addr).Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			if e.Name == name {
				return ErrDuplicateName
			}
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w as %q", ErrDuplicateAddress, existing[0].Name)
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return Entry{}, err
	}

	s.lg.Info("account stored", "name", name, "address", addr)
	return rec.entry()
}

// List returns all stored accounts ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	var recs []keyRecord
	if err := s.db.WithContext(ctx).Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		e, err := rec.entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Get returns the account stored as name without unsealing it.
func (s *Store) Get(ctx context.Context, name string) (Entry, error) {
	rec, err := s.find(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	return rec.entry()
}

// Unlock unseals the private key stored as name. The caller owns the returned
// key and should Zero it when done.
func (s *Store) Unlock(ctx context.Context, name, passphrase string) (*account.PrivateKey, error) {
	rec, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}

	seed, err := Open(rec.SealedKey, passphrase, []byte(rec.Address))
	if err != nil {
		s.lg.Warn("unlock failed", "name", name, "error", err)
		return nil, err
	}
	defer zeroBytes(seed)

	pk, err := account.PrivateKeyFromBytes(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if pk.Address().String() != rec.Address {
		pk.Zero()
		return nil, ErrCorrupt
	}
	return pk, nil
}

// Remove deletes the account stored as name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&keyRecord{})
	if res.Error != nil {
		return fmt.Errorf("remove account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.lg.Info("account removed", "name", name)
	return nil
}

func (s *Store) find(ctx context.Context, name string) (keyRecord, error) {
	var rec keyRecord
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return keyRecord{}, ErrNotFound
		}
		return keyRecord{}, fmt.Errorf("get account: %w", err)
	}
	return rec, nil
}

func (rec keyRecord) entry() (Entry, error) {
	addr, err := account.ParseAddress(rec.Address)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Entry{
		ID:        rec.ID,
		Name:      rec.Name,
		Address:   addr,
		CreatedAt: rec.CreatedAt,
	}, nil
}
