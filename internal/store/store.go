// Package store persists the ledger (transactions, settings and a version
// marker) in a key-value substrate. Reads never fail: an absent, unreadable
// or corrupt collection degrades to an empty one and is logged.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fjacquet/spendlog/internal/kvstore"
	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"

	"github.com/google/uuid"
)

// Persisted keys.
const (
	KeyTransactions = "spendlog:transactions"
	KeySettings     = "spendlog:settings"
	KeyVersion      = "spendlog:version"
)

// maxIDAttempts bounds regeneration when a generated id already exists.
const maxIDAttempts = 5

// Store is the explicit handle every component receives at construction.
type Store struct {
	kv     kvstore.KeyValue
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides transaction id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New returns a Store writing through kv.
func New(kv kvstore.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: logging.Discard(),
		now:    time.Now,
		newID:  newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Now returns the store clock's current instant.
func (s *Store) Now() time.Time {
	return s.now()
}

// Load returns the persisted transactions in insertion order.
func (s *Store) Load() []models.Transaction {
	raw, found, err := s.kv.Get(KeyTransactions)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read transactions, using empty ledger",
			logging.F(logging.FieldKey, KeyTransactions))
		return []models.Transaction{}
	}
	if !found || raw == "" {
		return []models.Transaction{}
	}

	var records []*models.Transaction
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.WithError(err).Warn("Stored transactions are corrupt, using empty ledger",
			logging.F(logging.FieldKey, KeyTransactions))
		return []models.Transaction{}
	}
	txs := make([]models.Transaction, 0, len(records))
	for i, r := range records {
		if r == nil {
			s.logger.Warn("Stored transactions hold a null record, using empty ledger",
				logging.F(logging.FieldKey, KeyTransactions),
				logging.F(logging.FieldIndex, i))
			return []models.Transaction{}
		}
		txs = append(txs, *r)
	}
	return txs
}

// Save replaces the persisted collection and stamps the version marker.
func (s *Store) Save(txs []models.Transaction) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	entries, err := transactionEntries(txs)
	if err != nil {
		return err
	}
	if err := s.kv.SetMany(entries); err != nil {
		return &ledgererror.StorageError{Op: "save", Key: KeyTransactions, Err: err}
	}
	s.logger.Debug("Saved transactions", logging.F(logging.FieldCount, len(txs)))
	return nil
}

func transactionEntries(txs []models.Transaction) (map[string]string, error) {
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, &ledgererror.StorageError{Op: "marshal", Key: KeyTransactions, Err: err}
	}
	version, err := json.Marshal(models.SchemaVersion)
	if err != nil {
		return nil, &ledgererror.StorageError{Op: "marshal", Key: KeyVersion, Err: err}
	}
	return map[string]string{
		KeyTransactions: string(data),
		KeyVersion:      string(version),
	}, nil
}

// Add stores a new transaction built from already validated fields.
func (s *Store) Add(fields models.TransactionFields) (models.Transaction, error) {
	txs := s.Load()

	id, err := s.uniqueID(txs)
	if err != nil {
		return models.Transaction{}, err
	}
	now := s.now().UTC()
	tx := models.Transaction{
		ID:            id,
		Description:   fields.Description,
		Amount:        fields.Amount,
		Category:      fields.Category,
		Date:          fields.Date,
		PaymentMethod: fields.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Save(append(txs, tx)); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Debug("Added transaction",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldCategory, tx.Category))
	return tx, nil
}

func (s *Store) uniqueID(txs []models.Transaction) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && indexOf(txs, id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique transaction id after %d attempts", maxIDAttempts)
}

func indexOf(txs []models.Transaction, id string) int {
	for i := range txs {
		if txs[i].ID == id {
			return i
		}
	}
	return -1
}

// Update merges patch over the transaction with id.
func (s *Store) Update(id string, patch models.TransactionPatch) (models.Transaction, error) {
	txs := s.Load()
	i := indexOf(txs, id)
	if i < 0 {
		return models.Transaction{}, fmt.Errorf("update %s: %w", id, ledgererror.ErrNotFound)
	}

	updated := patch.Apply(txs[i])
	updated.UpdatedAt = s.now().UTC()
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}
	txs[i] = updated

	if err := s.Save(txs); err != nil {
		return models.Transaction{}, err
	}
	s.logger.Debug("Updated transaction", logging.F(logging.FieldTransactionID, id))
	return updated, nil
}

// Remove deletes the transaction with id.
func (s *Store) Remove(id string) error {
	txs := s.Load()
	i := indexOf(txs, id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ledgererror.ErrNotFound)
	}
	txs = append(txs[:i], txs[i+1:]...)
	if err := s.Save(txs); err != nil {
		return err
	}
	s.logger.Debug("Removed transaction", logging.F(logging.FieldTransactionID, id))
	return nil
}

// GetByID returns the transaction with id, if present.
func (s *Store) GetByID(id string) (models.Transaction, bool) {
	txs := s.Load()
	if i := indexOf(txs, id); i >= 0 {
		return txs[i], true
	}
	return models.Transaction{}, false
}

// Clear deletes the transaction collection. Settings are kept.
func (s *Store) Clear() error {
	if err := s.kv.Delete(KeyTransactions); err != nil {
		return &ledgererror.StorageError{Op: "clear", Key: KeyTransactions, Err: err}
	}
	s.logger.Info("Cleared transactions")
	return nil
}

// Version returns the stored version marker, or "" when none was written.
func (s *Store) Version() string {
	raw, found, err := s.kv.Get(KeyVersion)
	if err != nil || !found {
		return ""
	}
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return ""
	}
	return v
}

// Restore writes txs, the version marker and, when given, settings in one
// batch. It is the write path of snapshot import.
func (s *Store) Restore(txs []models.Transaction, settings *models.Settings) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	entries, err := transactionEntries(txs)
	if err != nil {
		return err
	}
	if settings != nil {
		data, err := json.Marshal(settings)
		if err != nil {
			return &ledgererror.StorageError{Op: "marshal", Key: KeySettings, Err: err}
		}
		entries[KeySettings] = string(data)
	}
	if err := s.kv.SetMany(entries); err != nil {
		return &ledgererror.StorageError{Op: "restore", Err: err}
	}
	return nil
}

// IsNotFound reports whether err means the targeted transaction does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ledgererror.ErrNotFound)
}
