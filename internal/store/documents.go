package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/legisync/internal/bill"
)

// Document kinds stored in the documents table.
const (
	KindBill     = "bill"
	KindCalendar = "calendar"
)

// GetDocument loads the document stored under key into v.
// Returns (false, nil) when no document exists for the key.
func (s *Store) GetDocument(ctx context.Context, key string, v any) (bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get document %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("unmarshal document %s: %w", key, err)
	}
	return true, nil
}

// SetDocument upserts a document under key as JSON TEXT.
func (s *Store) SetDocument(ctx context.Context, key, kind string, session int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, kind, session, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			session = excluded.session,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, key, kind, session, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set document %s: %w", key, err)
	}
	return nil
}

// BillKey builds the storage key for a bill, e.g. "2013/bill/S1892A-2013".
// Used both for storage and for changelog entries.
func BillKey(b *bill.Bill) string {
	return billKey(b.BillID, b.Year)
}

func billKey(billID string, session int) string {
	return fmt.Sprintf("%d/%s/%s", session, KindBill, billID)
}

// GetBill loads a bill by print number (including any amendment letter) and
// session year. Returns (nil, nil) when the bill does not exist.
func (s *Store) GetBill(ctx context.Context, printNo string, session int) (*bill.Bill, error) {
	return s.getBillByKey(ctx, billKey(fmt.Sprintf("%s-%d", printNo, session), session))
}

// GetBillByID loads a bill by its full id, e.g. "S1892A-2013".
// Returns (nil, nil) when the bill does not exist.
func (s *Store) GetBillByID(ctx context.Context, billID string) (*bill.Bill, error) {
	session, err := SessionFromBillID(billID)
	if err != nil {
		return nil, err
	}
	return s.getBillByKey(ctx, billKey(billID, session))
}

func (s *Store) getBillByKey(ctx context.Context, key string) (*bill.Bill, error) {
	var b bill.Bill
	found, err := s.GetDocument(ctx, key, &b)
	if err != nil || !found {
		return nil, err
	}
	b.MarkPersisted()
	return &b, nil
}

// SetBill upserts a bill document and clears its brand-new flag.
func (s *Store) SetBill(ctx context.Context, b *bill.Bill) error {
	if err := s.SetDocument(ctx, BillKey(b), KindBill, b.Year, b); err != nil {
		return err
	}
	b.MarkPersisted()
	return nil
}

// SessionFromBillID extracts the session year from a full bill id.
func SessionFromBillID(billID string) (int, error) {
	i := strings.LastIndex(billID, "-")
	if i < 0 {
		return 0, fmt.Errorf("bill id %q has no session suffix", billID)
	}
	session, err := strconv.Atoi(billID[i+1:])
	if err != nil {
		return 0, fmt.Errorf("bill id %q has no session suffix: %w", billID, err)
	}
	return session, nil
}
