package ports

import (
	"context"
	"strings"
)

// AddressBookEntry is a read-only view of the external address book.
type AddressBookEntry struct {
	ID        int64
	UserID    int64
	Consignee string
	Phone     string
	Province  string
	City      string
	District  string
	Detail    string
}

// FullAddress joins the administrative parts and the detail line, skipping blanks.
func (e AddressBookEntry) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{e.Province, e.City, e.District, e.Detail} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type AddressBookRepository interface {
	Get(ctx context.Context, id int64) (AddressBookEntry, error)
}
