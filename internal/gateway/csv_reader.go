package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"mini-ledger/internal/domain"
)

const (
	columnType   = "type"
	columnClient = "client"
	columnTx     = "tx"
	columnAmount = "amount"
)

// csvRow is a single trimmed input row before type conversion.
type csvRow struct {
	Type   string `validate:"required,oneof=deposit withdrawal dispute resolve chargeback"`
	Client string `validate:"required,number"`
	Tx     string `validate:"required,number"`
	Amount string
}

// CSVTransactionRepository streams transaction records from CSV files.
type CSVTransactionRepository struct {
	validate *validator.Validate
}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository() *CSVTransactionRepository {
	return &CSVTransactionRepository{validate: validator.New()}
}

// ReadTransactions opens the CSV file at path and passes each record to
// handle in file order. It stops at the first error from either the file or
// handle.
func (r *CSVTransactionRepository) ReadTransactions(ctx context.Context, path string, handle func(domain.TransactionRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transaction file %s: %w", path, err)
	}
	defer file.Close()

	if err := r.Stream(ctx, file, handle); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Stream reads CSV data from in. The first row must be a header naming at
// least the type, client and tx columns; the amount column is optional and
// rows may omit trailing fields.
func (r *CSVTransactionRepository) Stream(ctx context.Context, in io.Reader, handle func(domain.TransactionRecord) error) error {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		record, err := r.parseRecord(columns.row(fields))
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := handle(record); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func (r *CSVTransactionRepository) parseRecord(row csvRow) (domain.TransactionRecord, error) {
	row.Type = strings.ToLower(row.Type)
	if err := r.validate.Struct(row); err != nil {
		return domain.TransactionRecord{}, describeValidation(err)
	}

	kind, err := domain.ParseKind(row.Type)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	client, err := strconv.ParseUint(row.Client, 10, 16)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("could not parse client '%s': %w", row.Client, err)
	}

	tx, err := strconv.ParseUint(row.Tx, 10, 32)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("could not parse tx '%s': %w", row.Tx, err)
	}

	record := domain.TransactionRecord{
		Kind:   kind,
		Client: domain.ClientID(client),
		Tx:     domain.TxID(tx),
	}
	if row.Amount != "" {
		amount, err := domain.ParseMoney(row.Amount)
		if err != nil {
			return domain.TransactionRecord{}, err
		}
		record.Amount = amount
		record.HasAmount = true
	}
	return record, nil
}

// columnIndex maps the known columns to their position in a row, -1 when absent.
type columnIndex struct {
	kind, client, tx, amount int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case columnType:
			idx.kind = i
		case columnClient:
			idx.client = i
		case columnTx:
			idx.tx = i
		case columnAmount:
			idx.amount = i
		}
	}

	var missing []string
	if idx.kind < 0 {
		missing = append(missing, columnType)
	}
	if idx.client < 0 {
		missing = append(missing, columnClient)
	}
	if idx.tx < 0 {
		missing = append(missing, columnTx)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) row(fields []string) csvRow {
	return csvRow{
		Type:   field(fields, c.kind),
		Client: field(fields, c.client),
		Tx:     field(fields, c.tx),
		Amount: field(fields, c.amount),
	}
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func describeValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("%s failed on '%s' (got '%v')", strings.ToLower(fe.Field()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid record: %s", strings.Join(details, "; "))
}
