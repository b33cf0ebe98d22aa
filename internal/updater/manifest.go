// Package updater implements the data-set update pipeline: manifest check,
// snapshot download and store apply, with lifecycle snapshots streamed to
// the UI.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hokuto/jiten/internal/dict"
)

const (
	// HTTP client timeout for manifest requests.
	manifestTimeout = 10 * time.Second

	// HTTP client timeout for snapshot downloads.
	downloadTimeout = 5 * time.Minute

	// Maximum manifest size (64KB) - a version descriptor should be tiny.
	maxManifestSize = 64 * 1024

	// Maximum snapshot download size (200MB) - prevents unbounded downloads.
	maxSnapshotSize = 200 * 1024 * 1024
)

// Manifest describes the latest published snapshot of a data set
type Manifest struct {
	Major           int    `json:"major"`
	Minor           int    `json:"minor"`
	Patch           int    `json:"patch"`
	DatabaseVersion string `json:"databaseVersion"`
	DateOfCreation  string `json:"dateOfCreation"`
	Lang            string `json:"lang"`
	DataPath        string `json:"dataPath"` // Snapshot file path relative to the manifest
	Records         int    `json:"records"`
}

// Triple returns the manifest's version triple
func (m Manifest) Triple() dict.VersionTriple {
	return dict.VersionTriple{Major: m.Major, Minor: m.Minor, Patch: m.Patch}
}

// VersionInfo converts the manifest into an installed-version record
func (m Manifest) VersionInfo() dict.VersionInfo {
	return dict.VersionInfo{
		VersionTriple:   m.Triple(),
		DatabaseVersion: m.DatabaseVersion,
		DateOfCreation:  m.DateOfCreation,
		Lang:            m.Lang,
	}
}

// manifestURL builds the version manifest URL for a data set and language
func manifestURL(baseURL, lang string, kind dict.DataSetKind) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	return u.JoinPath(lang, string(kind), "version.json").String(), nil
}

// fetchManifest retrieves and decodes the version manifest
func fetchManifest(ctx context.Context, client *http.Client, rawURL string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manifest request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest request returned %s", resp.Status)
	}

	var manifest Manifest
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxManifestSize)).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	if manifest.DataPath == "" {
		return nil, fmt.Errorf("manifest missing data path")
	}

	return &manifest, nil
}
