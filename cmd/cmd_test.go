package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asp_listings/listing"
	"asp_listings/models"
)

type apiRecorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *apiRecorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *apiRecorder) all() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

// newAPI serves total listings on the properties endpoint, honouring size
// and offset.
func newAPI(t *testing.T, total int) (*httptest.Server, *apiRecorder) {
	t.Helper()
	rec := &apiRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		var items []map[string]any
		for n := offset + 1; n <= offset+size && n <= total; n++ {
			items = append(items, map[string]any{
				"id":       n,
				"title":    "Listing " + strconv.Itoa(n),
				"price":    n * 100_000,
				"location": map[string]string{"community": "JVC", "city": "Dubai"},
				"agent":    map[string]string{"name": "Omar", "phone": "+971 50 123 4567", "email": "omar@example.com"},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"properties": items, "totalProperties": total})
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func runCLI(t *testing.T, baseURL string, args ...string) error {
	t.Helper()
	t.Setenv("PROPFUSION_BASE_URL", baseURL)
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "test.log"))
	t.Setenv("KINDS_DIR", t.TempDir())
	t.Setenv("IP_LOOKUP_DISABLED", "true")
	t.Setenv("CACHE_TTL", "1ns")

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestListLoadsEveryPage(t *testing.T) {
	srv, rec := newAPI(t, 14)

	err := runCLI(t, srv.URL, "list", "--kind", "rentals", "--pages", "0", "--beds", "2")
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "0", reqs[0].URL.Query().Get("offset"))
	assert.Equal(t, "12", reqs[1].URL.Query().Get("offset"))
	assert.Equal(t, "RENT", reqs[0].URL.Query().Get("listing_type"))
	assert.Equal(t, "2", reqs[0].URL.Query().Get("bedrooms"))
	assert.Equal(t, "/properties/get_properties_for_main_site", reqs[0].URL.Path)
}

func TestListStopsAtPageLimit(t *testing.T) {
	srv, rec := newAPI(t, 50)

	err := runCLI(t, srv.URL, "list", "--kind", "properties", "--pages", "2", "--beds", "")
	require.NoError(t, err)
	assert.Len(t, rec.all(), 2)
}

func TestListRejectsUnknownBucket(t *testing.T) {
	srv, rec := newAPI(t, 5)

	err := runCLI(t, srv.URL, "list", "--kind", "properties", "--bucket", "50-100k", "--pages", "1", "--beds", "")
	assert.ErrorIs(t, err, listing.ErrUnknownBucket)
	assert.Empty(t, rec.all())
}

func TestListQuery(t *testing.T) {
	listOpts.search = "  marina "
	listOpts.propType = "villa"
	listOpts.beds = "0"
	listOpts.sort = "price-low"
	t.Cleanup(func() {
		listOpts.search, listOpts.propType, listOpts.beds, listOpts.sort = "", "", "", ""
	})

	q, err := listQuery()
	require.NoError(t, err)
	assert.Equal(t, "marina", q.Search)
	assert.Equal(t, "VILLA", q.PropertyType)
	require.NotNil(t, q.Bedrooms)
	assert.Equal(t, 0, *q.Bedrooms)
	assert.Equal(t, listing.SortPriceLow, q.Sort)

	listOpts.beds = "lots"
	_, err = listQuery()
	assert.Error(t, err)
}

func TestContactUnknownLink(t *testing.T) {
	srv, _ := newAPI(t, 3)

	err := runCLI(t, srv.URL, "contact", "--kind", "properties", "--link", "fax", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown link")
}

func TestLeadValidatesBeforeSending(t *testing.T) {
	srv, rec := newAPI(t, 0)

	err := runCLI(t, srv.URL, "lead", "--name", "Sara", "--email", "sara@example.com", "--message", "")
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "message", ve.Field)
	assert.Empty(t, rec.all())
}
