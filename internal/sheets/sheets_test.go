package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
)

func TestExportURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"edit link with gid",
			"https://docs.google.com/spreadsheets/d/1AbC-xyz_9/edit#gid=123456",
			"https://docs.google.com/spreadsheets/d/1AbC-xyz_9/export?format=csv&gid=123456",
		},
		{
			"share link defaults to first sheet",
			"https://docs.google.com/spreadsheets/d/1AbC-xyz_9/edit?usp=sharing",
			"https://docs.google.com/spreadsheets/d/1AbC-xyz_9/export?format=csv&gid=0",
		},
		{
			"bare id",
			"1AbC-xyz_9",
			"https://docs.google.com/spreadsheets/d/1AbC-xyz_9/export?format=csv&gid=0",
		},
		{
			"legacy key param",
			"https://docs.google.com/spreadsheet/ccc?key=0Aabc&gid=4",
			"https://docs.google.com/spreadsheets/d/0Aabc/export?format=csv&gid=4",
		},
		{
			"already an export link",
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=csv&gid=7",
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=csv&gid=7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExportURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "https://example.com/some page"} {
		_, err := ExportURL(in)
		assert.ErrorIs(t, err, domain.ErrInvalidSheetURL, in)
	}
}

func TestFetcher_FetchCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Contains(t, r.Header.Get("Accept"), "text/csv")
			_, _ = w.Write([]byte("Name\nAcme\n"))
		case "/private":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewFetcher()

	body, err := f.FetchCSV(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "Name\nAcme\n", string(body))

	_, err = f.FetchCSV(context.Background(), srv.URL+"/private")
	assert.ErrorIs(t, err, domain.ErrSheetFetchFailed)
	assert.Contains(t, err.Error(), "access denied")

	_, err = f.FetchCSV(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, domain.ErrSheetFetchFailed)
	assert.Contains(t, err.Error(), "not found")
}
