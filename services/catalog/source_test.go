package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"almadina/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
  "services": [
    {"id": 1, "name": "Oil change", "description": "Oil and filter", "price": 100, "currency": "AFN",
     "vehicleTypes": ["Sedan", "SUV"], "featured": true, "bgColor": "bg-blue-100", "icon": "fas fa-oil-can", "iconColor": "text-blue-600"},
    {"id": "wash", "name": "Car wash", "description": "Full wash", "price": 12.5, "currency": "AFN",
     "vehicleTypes": [], "featured": false, "bgColor": "bg-green-100", "icon": "fas fa-soap", "iconColor": "text-green-600"}
  ],
  "contact": {"whatsapp": "+93700000000", "phone": "0700000000"}
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(sampleBody))
	require.NoError(t, err)

	require.Len(t, doc.Services, 2)
	assert.True(t, doc.Services[0].ID.Equal(models.IntID(1)))
	assert.True(t, doc.Services[1].ID.Equal(models.StringID("wash")))
	assert.Equal(t, []string{"Sedan", "SUV"}, doc.Services[0].VehicleTypes)
	assert.True(t, doc.Services[0].Featured)
	assert.Equal(t, 12.5, doc.Services[1].Price)
	require.NotNil(t, doc.Contact)
	assert.Equal(t, "+93700000000", doc.Contact.WhatsApp)
}

func TestDecodeDocumentFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"missing services", `{"contact": {"phone": "1"}}`},
		{"services wrong type", `{"services": {"id": 1}}`},
		{"bad id kind", `{"services": [{"id": true}]}`},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParseFailure)
		})
	}
}

func TestDecodeDocumentWithoutContact(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(`{"services": []}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Services)
	assert.Nil(t, doc.Contact)
}

func TestHTTPSourceFetch(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "", srv.Client())
	doc, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/services.json", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Len(t, doc.Services, 2)
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, "services.json", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSourceNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(url, "services.json", nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestHTTPSourceParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, "services.json", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBody), 0o644))

	doc, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Services, 2)

	_, err = (&FileSource{Path: filepath.Join(dir, "missing.json")}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailure)
}
