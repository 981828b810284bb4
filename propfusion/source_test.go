package propfusion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asp_listings/config"
	"asp_listings/listing"
	"asp_listings/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

func fixtureServer(t *testing.T, fixture string, hits *int32) *httptest.Server {
	t.Helper()
	body := loadFixture(t, fixture)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPageURL_OffsetPaging(t *testing.T) {
	kinds := config.DefaultKinds("https://api.test")
	src := NewSource[models.Property](NewClient(http.DefaultClient, config.CacheConfig{}), kinds[config.KindProperties])

	q := listing.Query{
		Search:       "marina",
		PriceBucket:  "1-2m",
		PropertyType: "apartment",
		Bedrooms:     listing.Beds(2),
		Furnished:    "yes",
	}
	raw, err := src.PageURL(q, 3, 12)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/properties/get_properties_for_main_site", u.Path)

	params := u.Query()
	assert.Equal(t, "12", params.Get("size"))
	assert.Equal(t, "24", params.Get("offset"))
	assert.Empty(t, params.Get("page"))
	assert.Equal(t, "ACTIVE", params.Get("status"))
	assert.Equal(t, "SELL", params.Get("listing_type"))
	assert.Equal(t, "apartment", params.Get("property_type"))
	assert.Equal(t, "2", params.Get("bedrooms"))
	assert.Equal(t, "marina", params.Get("search"))

	for _, local := range []string{"price", "price_range", "furnished", "developer"} {
		assert.False(t, params.Has(local), "%s must not be sent", local)
	}
}

func TestPageURL_PagePaging(t *testing.T) {
	kinds := config.DefaultKinds("https://api.test")
	src := NewSource[models.Project](NewClient(http.DefaultClient, config.CacheConfig{}), kinds[config.KindProjects])

	raw, err := src.PageURL(listing.Query{Search: "creek", PropertyType: "villa", Bedrooms: listing.Beds(3)}, 2, 12)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	params := u.Query()
	assert.Equal(t, "/properties/projects", u.Path)
	assert.Equal(t, "2", params.Get("page"))
	assert.False(t, params.Has("offset"))
	assert.Equal(t, "creek", params.Get("search"))
	assert.False(t, params.Has("property_type"))
	assert.False(t, params.Has("bedrooms"))
	assert.False(t, params.Has("listing_type"))
}

func TestFetchPage_DecodesProperties(t *testing.T) {
	srv := fixtureServer(t, "properties_page.json", nil)
	kinds := config.DefaultKinds(srv.URL)
	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}), kinds[config.KindProperties])

	page, err := src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)

	assert.Equal(t, 50, page.Total)
	assert.Equal(t, 12, page.PageSize)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "101", page.Items[0].ListingID())
	assert.Equal(t, "Dubai Marina", page.Items[0].CommunityName())
	assert.Equal(t, 1500000.0, page.Items[0].PriceAED())
	require.NotNil(t, page.Items[0].Agent)
	assert.Equal(t, "Sara", page.Items[0].Agent.Name)
	assert.Nil(t, page.Items[1].Developer)
}

func TestFetchPage_DecodesRentalsAndProjects(t *testing.T) {
	rentSrv := fixtureServer(t, "rentals_page.json", nil)
	rentals := NewSource[models.Rental](NewClient(rentSrv.Client(), config.CacheConfig{}),
		config.DefaultKinds(rentSrv.URL)[config.KindRentals])

	rentPage, err := rentals.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	require.Len(t, rentPage.Items, 1)
	assert.Equal(t, "yes", rentPage.Items[0].FurnishedStatus())
	assert.Equal(t, "Yearly", rentPage.Items[0].PriceType)
	assert.Equal(t, 1, rentPage.Total)

	projSrv := fixtureServer(t, "projects_page.json", nil)
	projects := NewSource[models.Project](NewClient(projSrv.Client(), config.CacheConfig{}),
		config.DefaultKinds(projSrv.URL)[config.KindProjects])

	projPage, err := projects.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	require.Len(t, projPage.Items, 1)
	p := projPage.Items[0]
	assert.Equal(t, "Creek Horizon", p.ListingTitle())
	assert.True(t, p.HasBedrooms(2))
	assert.Equal(t, "2027-01-15", p.HandoverAt())
	assert.Equal(t, 60.0, p.PaymentPlan.UnderConstruction)
}

func TestFetchPage_MissingTotalEndsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties":[{"id":1,"title":"A"}]}`))
	}))
	defer srv.Close()

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	page, err := src.FetchPage(context.Background(), listing.Query{}, 2, 12)
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)
	assert.Len(t, page.Items, 1)
}

func TestFetchPage_NullItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties":null,"totalProperties":0}`))
	}))
	defer srv.Close()

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	page, err := src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestFetchPage_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	_, err := src.FetchPage(context.Background(), listing.Query{}, 4, 12)
	require.Error(t, err)

	var fe *listing.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.Equal(t, 4, fe.Page)
	assert.Equal(t, config.KindProperties, fe.Kind)
	assert.Equal(t, "Failed to fetch properties (status 500)", fe.Error())
}

func TestFetchPage_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	_, err := src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	var fe *listing.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}

func TestFetchPage_CachesIdenticalRequests(t *testing.T) {
	var hits int32
	srv := fixtureServer(t, "properties_page.json", &hits)

	client := NewClient(srv.Client(), config.CacheConfig{TTL: time.Minute, Size: 8})
	src := NewSource[models.Property](client, config.DefaultKinds(srv.URL)[config.KindProperties])

	for i := 0; i < 3; i++ {
		_, err := src.FetchPage(context.Background(), listing.Query{Search: "marina"}, 1, 12)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err := src.FetchPage(context.Background(), listing.Query{Search: "marina"}, 2, 12)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchPage_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.FetchPage(ctx, listing.Query{}, 1, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchPage_BypassCacheRefetches(t *testing.T) {
	var hits int32
	srv := fixtureServer(t, "properties_page.json", &hits)

	client := NewClient(srv.Client(), config.CacheConfig{TTL: time.Minute, Size: 8})
	src := NewSource[models.Property](client, config.DefaultKinds(srv.URL)[config.KindProperties])

	_, err := src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	_, err = src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = src.FetchPage(BypassCache(context.Background()), listing.Query{}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	// The refreshed body is cached again for plain requests.
	_, err = src.FetchPage(context.Background(), listing.Query{}, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestController_BucketChangeDuringInFlightPage(t *testing.T) {
	body := loadFixture(t, "properties_page.json")
	arrived := make(chan struct{}, 4)
	release := make(chan struct{})
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		arrived <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	kind := config.DefaultKinds(srv.URL)[config.KindProperties]
	client := NewClient(srv.Client(), config.CacheConfig{})
	ctrl := listing.NewController[models.Property](kind.ID, NewSource[models.Property](client, kind), kind.PageSize, kind.PriceBuckets)

	first := ctrl.Reset()
	firstRes := make(chan listing.Result[models.Property], 1)
	go func() { firstRes <- ctrl.Fetch(context.Background(), first) }()

	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("first page request never reached the server")
	}

	// Price bucket is applied locally, so the new generation asks for the same URL.
	second, changed, err := ctrl.SetQuery(listing.Query{PriceBucket: "1-2m"})
	require.NoError(t, err)
	require.True(t, changed)

	secondRes := make(chan listing.Result[models.Property], 1)
	go func() { secondRes <- ctrl.Fetch(context.Background(), second) }()

	time.Sleep(50 * time.Millisecond)
	close(release)

	var r2 listing.Result[models.Property]
	select {
	case r2 = <-secondRes:
	case <-time.After(2 * time.Second):
		t.Fatal("second generation fetch never returned")
	}
	require.NoError(t, r2.Err)
	assert.True(t, ctrl.Apply(r2))
	assert.Nil(t, ctrl.Status().Err)

	r1 := <-firstRes
	assert.False(t, ctrl.Apply(r1))
	assert.Nil(t, ctrl.Status().Err)
	assert.LessOrEqual(t, atomic.LoadInt32(&hits), int32(2))
}

func TestLookup_Scan(t *testing.T) {
	var gotSize string
	body := loadFixture(t, "properties_page.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("size")
		w.Write(body)
	}))
	defer srv.Close()

	src := NewSource[models.Property](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProperties])

	p, err := src.Lookup(context.Background(), "102")
	require.NoError(t, err)
	assert.Equal(t, "Palm Villa", p.Title)
	assert.Equal(t, "100", gotSize)

	_, err = src.Lookup(context.Background(), "999")
	assert.ErrorIs(t, err, listing.ErrNotFound)
}

func TestLookup_ByID(t *testing.T) {
	var gotID string
	body := loadFixture(t, "projects_page.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		if gotID != "7" {
			w.Write([]byte(`{"projects":[],"totalProjects":0}`))
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	src := NewSource[models.Project](NewClient(srv.Client(), config.CacheConfig{}),
		config.DefaultKinds(srv.URL)[config.KindProjects])

	p, err := src.Lookup(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Creek Horizon", p.Name)
	assert.Equal(t, "7", gotID)

	_, err = src.Lookup(context.Background(), "8")
	assert.ErrorIs(t, err, listing.ErrNotFound)
}

func TestSourceSatisfiesListingSource(t *testing.T) {
	var _ listing.Source[models.Property] = (*Source[models.Property])(nil)
	var _ listing.Source[models.Rental] = (*Source[models.Rental])(nil)
	var _ listing.Source[models.Project] = (*Source[models.Project])(nil)
}
