package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit is the page size used when the caller asks for none.
const DefaultLimit = 20

// Cursor points at the last record of a page. Transaction lists are ordered by
// (record date, created_at, record id) descending; the id breaks ties between
// rows written in the same instant.
type Cursor struct {
	RecordDate time.Time
	CreatedAt  time.Time
	RecordID   string
}

// Encode creates an opaque, URL-safe token for the cursor.
func (c Cursor) Encode() string {
	tokenStr := strings.Join([]string{
		c.RecordDate.Format(timeFormat),
		c.CreatedAt.Format(timeFormat),
		c.RecordID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by Cursor.Encode.
func DecodeCursor(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	recordDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (record date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return Cursor{RecordDate: recordDate, CreatedAt: createdAt, RecordID: parts[2]}, nil
}

// NormalizeLimit applies the default page size to non-positive limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// TrimPage drops the look-ahead row fetched beyond limit and returns the token
// for the next page, or nil when rows holds the last page.
func TrimPage[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	token := cursorOf(rows[limit-1]).Encode()
	return rows[:limit], &token
}
