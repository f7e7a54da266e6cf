package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/username/painelvendas/backend/src/logger"
	"github.com/username/painelvendas/backend/src/models"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrSourceUnavailable means the remote CSV could not be fetched or was not
// valid delimited text. Fatal for the session; there is no retry policy.
var ErrSourceUnavailable = errors.New("sales data source unavailable")

// Loader fetches the raw CSV snapshot and parses it into a RawTable.
type Loader interface {
	Load(ctx context.Context) (*models.RawTable, error)
}

// HTTPLoader downloads the snapshot from a fixed URL. The export is
// Latin-1 encoded and semicolon-delimited.
type HTTPLoader struct {
	url      string
	client   *http.Client
	maxBytes int64
}

func NewHTTPLoader(url string, timeout time.Duration, maxBytes int64) *HTTPLoader {
	return &HTTPLoader{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

func (l *HTTPLoader) Load(ctx context.Context) (*models.RawTable, error) {
	startTime := time.Now()
	logger.L.Info("Fetching sales CSV snapshot", "url", l.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrSourceUnavailable, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrSourceUnavailable, l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from source", ErrSourceUnavailable, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if l.maxBytes > 0 {
		// Read one byte past the limit so an oversized snapshot fails
		// outright instead of being truncated mid-row.
		data, err := io.ReadAll(io.LimitReader(body, l.maxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: reading response body: %v", ErrSourceUnavailable, err)
		}
		if int64(len(data)) > l.maxBytes {
			return nil, fmt.Errorf("%w: snapshot exceeds size limit of %d bytes", ErrSourceUnavailable, l.maxBytes)
		}
		body = bytes.NewReader(data)
	}

	table, err := ParseCSV(body)
	if err != nil {
		return nil, err
	}

	logger.L.Info("Sales CSV snapshot loaded",
		"rows", len(table.Rows), "columns", len(table.Columns), "duration", time.Since(startTime))
	return table, nil
}

// ParseCSV decodes Latin-1 bytes and parses `;`-delimited text into a
// RawTable with trimmed column names. Rows shorter than the header keep only
// the fields they have; missing cells read back as empty strings.
func ParseCSV(r io.Reader) (*models.RawTable, error) {
	decoded := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", ErrSourceUnavailable, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	table := &models.RawTable{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading CSV records: %v", ErrSourceUnavailable, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
