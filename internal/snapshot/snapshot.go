// Package snapshot exports the ledger as a portable document and restores
// it from one. Imports are all-or-nothing: every check runs before the
// single write.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"
)

// Mode selects how imported transactions combine with the current ledger.
type Mode string

const (
	// ModeReplace discards the current collection.
	ModeReplace Mode = "replace"
	// ModeMerge upserts by id, keeping the current order and appending new ids.
	ModeMerge Mode = "merge"
)

// ParseMode maps a flag value to a Mode. "" means ModeReplace.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeReplace:
		return ModeReplace, nil
	case ModeMerge:
		return ModeMerge, nil
	default:
		return "", fmt.Errorf("unknown import mode %q (valid: replace, merge)", s)
	}
}

// Ledger is the part of the store snapshots read and write.
type Ledger interface {
	Load() []models.Transaction
	LoadSettings() models.Settings
	Restore(txs []models.Transaction, settings *models.Settings) error
}

// Service exports and imports snapshots of a Ledger.
type Service struct {
	ledger    Ledger
	logger    logging.Logger
	now       func() time.Time
	delimiter rune
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the export and import timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDelimiter sets the CSV field delimiter (default ',').
func WithDelimiter(r rune) Option {
	return func(s *Service) {
		if r != 0 {
			s.delimiter = r
		}
	}
}

// New returns a Service over ledger.
func New(ledger Ledger, opts ...Option) *Service {
	s := &Service{
		ledger:    ledger,
		logger:    logging.Discard(),
		now:       time.Now,
		delimiter: ',',
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export captures the whole ledger and the settings.
func (s *Service) Export() models.Snapshot {
	return models.Snapshot{
		Version:      models.SchemaVersion,
		ExportDate:   s.now().UTC(),
		Transactions: s.ledger.Load(),
		Settings:     s.ledger.LoadSettings(),
	}
}

// ExportJSON renders Export as indented JSON.
func (s *Service) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling snapshot: %w", err)
	}
	return data, nil
}

// ImportResult describes a successful import.
type ImportResult struct {
	Mode             Mode   `json:"mode"`
	Version          string `json:"version,omitempty"`
	Imported         int    `json:"imported"`
	Added            int    `json:"added"`
	Replaced         int    `json:"replaced"`
	Total            int    `json:"total"`
	SettingsReplaced bool   `json:"settingsReplaced"`
}

type document struct {
	version      string
	transactions []models.Transaction
	settings     *models.Settings
}

// Import parses data and writes it to the ledger according to mode.
// Structural problems are reported as *ledgererror.ImportError and leave
// the ledger untouched.
func (s *Service) Import(data []byte, mode Mode) (ImportResult, error) {
	if mode == "" {
		mode = ModeReplace
	}
	if mode != ModeReplace && mode != ModeMerge {
		return ImportResult{}, ledgererror.NewDocumentError("unknown import mode %q", mode)
	}

	doc, err := s.parse(data)
	if err != nil {
		s.logger.WithError(err).Warn("Rejected import document")
		return ImportResult{}, err
	}

	result := ImportResult{
		Mode:             mode,
		Version:          doc.version,
		Imported:         len(doc.transactions),
		SettingsReplaced: doc.settings != nil,
	}

	txs := doc.transactions
	if mode == ModeMerge {
		txs, result.Added, result.Replaced = merge(s.ledger.Load(), doc.transactions)
	} else {
		result.Added = len(txs)
	}
	result.Total = len(txs)

	if err := s.ledger.Restore(txs, doc.settings); err != nil {
		return ImportResult{}, err
	}

	s.logger.Info("Imported snapshot",
		logging.F(logging.FieldMode, string(mode)),
		logging.F(logging.FieldCount, result.Imported))
	return result, nil
}

func (s *Service) parse(data []byte) (document, error) {
	var doc document

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return doc, ledgererror.NewDocumentError("document must be a JSON object")
	}

	if raw, ok := top["version"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &doc.version); err != nil {
			return doc, ledgererror.NewDocumentError("version must be a string")
		}
		if doc.version != "" && major(doc.version) != major(models.SchemaVersion) {
			s.logger.Warn("Importing snapshot written by a different schema version",
				logging.F(logging.FieldVersion, doc.version))
		}
	}

	rawTxs, ok := top["transactions"]
	if !ok || isNull(rawTxs) {
		return doc, ledgererror.NewDocumentError("document has no transactions array")
	}
	var records []json.RawMessage
	if err := json.Unmarshal(rawTxs, &records); err != nil {
		return doc, ledgererror.NewDocumentError("transactions must be an array")
	}

	now := s.now()
	seen := make(map[string]int, len(records))
	doc.transactions = make([]models.Transaction, 0, len(records))
	for i, raw := range records {
		tx, err := parseRecord(i, raw, now)
		if err != nil {
			return doc, err
		}
		if first, dup := seen[tx.ID]; dup {
			return doc, &ledgererror.ImportError{
				Index: i,
				Field: "id",
				Msg:   fmt.Sprintf("transaction at index %d repeats id %q of index %d", i, tx.ID, first),
			}
		}
		seen[tx.ID] = i
		doc.transactions = append(doc.transactions, tx)
	}

	if raw, ok := top["settings"]; ok && isObject(raw) {
		settings := models.DefaultSettings()
		if err := json.Unmarshal(raw, &settings); err != nil {
			return doc, ledgererror.NewDocumentError("settings are malformed: %v", err)
		}
		if errs := validation.ValidateSettings(settings); len(errs) > 0 {
			return doc, ledgererror.NewDocumentError("settings are invalid: %s", errs[0].Error())
		}
		doc.settings = &settings
	}
	return doc, nil
}

func parseRecord(i int, raw json.RawMessage, now time.Time) (models.Transaction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.Transaction{}, &ledgererror.ImportError{
			Index: i,
			Msg:   fmt.Sprintf("transaction at index %d is not an object", i),
		}
	}
	for _, name := range models.RequiredImportFields {
		v, ok := fields[name]
		if !ok || isNull(v) || isEmptyString(v) {
			return models.Transaction{}, ledgererror.NewMissingFieldError(i, name)
		}
	}

	var tx models.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return models.Transaction{}, &ledgererror.ImportError{
			Index: i,
			Msg:   fmt.Sprintf("transaction at index %d is malformed: %v", i, err),
		}
	}
	if err := validateRecord(i, &tx, now); err != nil {
		return models.Transaction{}, err
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now.UTC()
	}
	if tx.UpdatedAt.Before(tx.CreatedAt) {
		tx.UpdatedAt = tx.CreatedAt
	}
	return tx, nil
}

// validateRecord applies the field rules of a manual entry to an imported
// record, reporting the first failing field.
func validateRecord(i int, tx *models.Transaction, now time.Time) error {
	tx.Category = strings.TrimSpace(tx.Category)
	checks := []struct {
		field string
		res   validation.Result
	}{
		{validation.FieldDescription, validation.ValidateDescription(tx.Description)},
		{validation.FieldAmount, validation.ValidateAmount(tx.Amount)},
		{validation.FieldCategory, validation.ValidateCategory(tx.Category)},
		{validation.FieldDate, validation.ValidateDateOn(tx.Date, now)},
	}
	for _, c := range checks {
		if !c.res.Valid {
			return &ledgererror.ImportError{
				Index: i,
				Field: c.field,
				Msg:   fmt.Sprintf("transaction at index %d has an invalid %s: %s", i, c.field, c.res.Error),
			}
		}
	}
	return nil
}

// merge upserts incoming into current by id.
func merge(current, incoming []models.Transaction) (out []models.Transaction, added, replaced int) {
	out = models.Clone(current)
	index := make(map[string]int, len(out))
	for i, tx := range out {
		index[tx.ID] = i
	}
	for _, tx := range incoming {
		if i, ok := index[tx.ID]; ok {
			out[i] = tx
			replaced++
			continue
		}
		index[tx.ID] = len(out)
		out = append(out, tx)
		added++
	}
	return out, added, replaced
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isEmptyString(raw json.RawMessage) bool {
	var s string
	return json.Unmarshal(raw, &s) == nil && s == ""
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func major(version string) string {
	v := strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return v[:i]
	}
	return v
}
