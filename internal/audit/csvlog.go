package audit

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/example/storefront/internal/domain/order"
)

const TimestampLayout = "2006-01-02 15:04:05"

var header = []string{
	"timestamp", "name", "email", "phone", "address", "payment_method", "card_number", "items", "total",
}

// Record is one completed order as written to the audit log.
type Record struct {
	Timestamp     time.Time
	Name          string
	Email         string
	Phone         string
	Address       string
	PaymentMethod order.PaymentMethod
	CardRef       string
	Items         string
	Total         string
}

// NameFunc resolves the product name used in the items column.
type NameFunc func(productID int64) (string, bool)

// NewRecord flattens o into an audit record. The card reference is masked
// and left empty for cash orders.
func NewRecord(o *order.Order, name NameFunc) Record {
	return Record{
		Timestamp:     o.CreatedAt.Local(),
		Name:          o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		CardRef:       o.MaskedCardRef(),
		Items:         DescribeItems(o.Items, name),
		Total:         o.Total.StringFixed(2),
	}
}

// DescribeItems renders items as "<name> x <qty>; ...". Unknown products
// are written as ID<n>.
func DescribeItems(items []order.Item, name NameFunc) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		n, ok := name(item.ProductID)
		if !ok {
			n = fmt.Sprintf("ID%d", item.ProductID)
		}
		parts = append(parts, fmt.Sprintf("%s x %d", n, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

func (r Record) row() []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.Name,
		r.Email,
		r.Phone,
		r.Address,
		string(r.PaymentMethod),
		r.CardRef,
		r.Items,
		r.Total,
	}
}

// CSVLog appends records to a ';'-delimited file, writing the header row
// when the file is new or empty.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

func (l *CSVLog) Path() string {
	return l.path
}

func (l *CSVLog) Append(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat audit log: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(r.row()); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return f.Sync()
}
