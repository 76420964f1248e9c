package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableUniquesHeaders(t *testing.T) {
	grid := [][]string{
		{"Timestamp", "", "Venue", "Venue", "Notes"},
		{"1/1/26", "x", "Oak Hall", "dup", "fine"},
		{"1/2/26", "y", "Barn"},
	}

	rows := Table(grid)
	require.Len(t, rows, 2)

	assert.Equal(t, "1/1/26", rows[0]["Timestamp"])
	assert.Equal(t, "x", rows[0]["Column_1"])
	assert.Equal(t, "Oak Hall", rows[0]["Venue"])
	assert.Equal(t, "dup", rows[0]["Venue_1"])

	// Short rows are padded.
	assert.Equal(t, "", rows[1]["Notes"])
}

func TestTableEmpty(t *testing.T) {
	assert.Nil(t, Table(nil))
	assert.Empty(t, Table([][]string{{"Only", "Headers"}}))
}

func TestValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Master%20View", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		// Year headers come back as JSON numbers when the sheet stores them
		// as numerics.
		_, _ = w.Write([]byte(`{"values":[["Day",2026,2025],["Jan 1","5","3"]]}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	grid, err := c.Values(context.Background(), "sheet-id", "Master View")
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Day", "2026", "2025"}, grid[0])
	assert.Equal(t, []string{"Jan 1", "5", "3"}, grid[1])
}

func TestValuesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL)
	_, err := c.Values(context.Background(), "sheet-id", "Master View")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNewWithServiceAccountRejectsGarbage(t *testing.T) {
	_, err := NewWithServiceAccount(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
