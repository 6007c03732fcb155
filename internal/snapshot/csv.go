package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the flat CSV rendering of a transaction.
type csvRow struct {
	ID            string `csv:"ID"`
	Date          string `csv:"Date"`
	Description   string `csv:"Description"`
	Category      string `csv:"Category"`
	Amount        string `csv:"Amount"`
	Currency      string `csv:"Currency"`
	PaymentMethod string `csv:"PaymentMethod"`
	CreatedAt     string `csv:"CreatedAt"`
	UpdatedAt     string `csv:"UpdatedAt"`
}

func toRows(txs []models.Transaction, code string) []csvRow {
	rows := make([]csvRow, len(txs))
	for i, tx := range txs {
		rows[i] = csvRow{
			ID:            tx.ID,
			Date:          tx.Date,
			Description:   tx.Description,
			Category:      tx.Category,
			Amount:        currency.FormatAmount(tx.Amount, ""),
			Currency:      code,
			PaymentMethod: tx.PaymentMethod,
			CreatedAt:     tx.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:     tx.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return rows
}

// ExportCSV writes every transaction to w as CSV with a header row.
func (s *Service) ExportCSV(w io.Writer) error {
	txs := s.ledger.Load()
	rows := toRows(txs, s.ledger.LoadSettings().BaseCurrency)

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = s.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		s.logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	s.logger.Info("Exported transactions to CSV", logging.F(logging.FieldCount, len(rows)))
	return nil
}
