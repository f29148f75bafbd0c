package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"almadina/models"
)

const DefaultCatalogPath = "services.json"

// HTTPSource loads the catalog with a single GET.
type HTTPSource struct {
	BaseURL string
	Path    string
	Client  *http.Client
}

func NewHTTPSource(baseURL, path string, client *http.Client) *HTTPSource {
	if path == "" {
		path = DefaultCatalogPath
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{BaseURL: baseURL, Path: path, Client: client}
}

// URL is the resolved catalog location.
func (s *HTTPSource) URL() string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(s.Path, "/")
}

func (s *HTTPSource) Fetch(ctx context.Context) (*models.CatalogDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(), nil)
	if err != nil {
		return nil, NewLoadError("failed to build catalog request", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, NewLoadError("failed to fetch catalog", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewLoadError(fmt.Sprintf("catalog request returned %s", resp.Status), nil)
	}
	return DecodeDocument(resp.Body)
}

// FileSource reads the catalog from local disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) (*models.CatalogDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewLoadError("catalog load cancelled", err)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, NewLoadError("failed to open catalog file", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// DecodeDocument parses a catalog body. A body without a services array
// is rejected.
func DecodeDocument(r io.Reader) (*models.CatalogDocument, error) {
	var raw struct {
		Services *[]models.Service `json:"services"`
		Contact  *models.Contact   `json:"contact"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, NewParseError("catalog body is not a valid document", err)
	}
	if raw.Services == nil {
		return nil, NewParseError("catalog document has no services", nil)
	}
	return &models.CatalogDocument{Services: *raw.Services, Contact: raw.Contact}, nil
}
