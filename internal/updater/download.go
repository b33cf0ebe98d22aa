package updater

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hokuto/jiten/internal/dict"
)

// countingReader tracks bytes read for download progress reporting
type countingReader struct {
	r     io.Reader
	read  int64
	total int64
	onRead func(read, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.onRead != nil {
		c.onRead(c.read, c.total)
	}
	return n, err
}

// downloadSnapshot streams a JSONL snapshot and decodes one entry per line.
// progress is invoked with a fraction in [0,1]; it stays at 0 when the
// server does not report a content length.
func downloadSnapshot(ctx context.Context, client *http.Client, manifestRawURL string, m *Manifest, progress func(float64)) ([]dict.KanjiEntry, error) {
	base, err := url.Parse(manifestRawURL)
	if err != nil {
		return nil, err
	}
	dataURL := base.ResolveReference(&url.URL{Path: m.DataPath})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dataURL.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot request returned %s", resp.Status)
	}
	if resp.ContentLength > maxSnapshotSize {
		return nil, fmt.Errorf("snapshot too large (%d bytes)", resp.ContentLength)
	}

	counter := &countingReader{
		r:     io.LimitReader(resp.Body, maxSnapshotSize),
		total: resp.ContentLength,
		onRead: func(read, total int64) {
			if total > 0 && progress != nil {
				frac := float64(read) / float64(total)
				if frac > 1 {
					frac = 1
				}
				progress(frac)
			}
		},
	}

	capacity := m.Records
	if capacity < 0 {
		capacity = 0
	}
	entries := make([]dict.KanjiEntry, 0, capacity)

	scanner := bufio.NewScanner(counter)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var entry dict.KanjiEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("corrupt snapshot at line %d: %w", line, err)
		}
		if entry.Literal == "" {
			return nil, fmt.Errorf("corrupt snapshot at line %d: missing literal", line)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("snapshot read failed: %w", err)
	}

	if m.Records > 0 && len(entries) != m.Records {
		return nil, fmt.Errorf("snapshot truncated: got %d of %d records", len(entries), m.Records)
	}

	return entries, nil
}
