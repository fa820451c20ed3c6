package gog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogBody = `{
	"products": [
		{
			"title": "Test Game",
			"slug": "test-game",
			"price": {"finalMoney": {"amount": 1999}},
			"releaseDate": "2020-01-01",
			"genres": [{"name": "Action"}],
			"operatingSystems": ["Windows"],
			"developers": ["Acme"],
			"publishers": ["Acme Pub"],
			"coverHorizontal": "http://img/cover.jpg",
			"screenshots": []
		}
	]
}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		CatalogURL:  server.URL + "/v1/catalog",
		GamePageURL: server.URL + "/game",
	})
	require.NoError(t, err)

	return client, server
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{CatalogURL: "http://example.com"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestClient_Catalog(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(catalogBody))
	}))

	products, err := client.Catalog(context.Background(), url.Values{"limit": {"10"}, "order": {"desc:trending"}})
	require.NoError(t, err)
	require.Len(t, products, 1)

	// Query parameters are forwarded verbatim
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "desc:trending", gotQuery.Get("order"))

	product := products[0]
	assert.Equal(t, "Test Game", product.Title)
	assert.Equal(t, "test-game", product.Slug)
	assert.Equal(t, float64(1999), product.Price.FinalMoney.Amount)
	assert.Equal(t, []string{"Windows"}, product.OperatingSystems)
	assert.Equal(t, []string{"Acme"}, product.Developers)
	assert.Equal(t, []string{"Acme Pub"}, product.Publishers)
	require.Len(t, product.Genres, 1)
	assert.Equal(t, "Action", product.Genres[0].Name)
}

func TestClient_Catalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			_, err := client.Catalog(context.Background(), nil)
			assert.ErrorIs(t, err, ErrCatalogFetch)
		})
	}
}

func TestClient_GameDetails(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`<html><body>
			<div class="description"><p>A <b>great</b> game.</p></div>
			<div class="age-restrictions__icon"><svg><use xlink:href="#age_18"></use></svg></div>
		</body></html>`))
	}))

	details, err := client.GameDetails(context.Background(), "Test-Game")
	require.NoError(t, err)

	// Catalog slug maps to the page slug convention
	assert.Equal(t, "/game/test_game", gotPath)

	assert.Contains(t, details.Description, "<b>great</b>")
	assert.Equal(t, "A great game.", details.ShortDescription)
	assert.Equal(t, "age18", details.Rating)
}

func TestClient_GameDetails_DefaultRating(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="description">Plain text only</div></body></html>`))
	}))

	details, err := client.GameDetails(context.Background(), "test-game")
	require.NoError(t, err)
	assert.Equal(t, "BR0", details.Rating)
}

func TestClient_GameDetails_ShortDescriptionTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="description">` + long + `</div></body></html>`))
	}))

	details, err := client.GameDetails(context.Background(), "test-game")
	require.NoError(t, err)
	assert.Len(t, details.ShortDescription, 160)
}

func TestClient_GameDetails_MissingDescription(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>404</h1></body></html>`))
	}))

	_, err := client.GameDetails(context.Background(), "test-game")
	assert.ErrorIs(t, err, ErrDetailsUnavailable)
}

func TestClient_DownloadImage(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cover.jpg" {
			w.Write([]byte("jpegbytes"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	data, err := client.DownloadImage(context.Background(), server.URL+"/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), data)

	_, err = client.DownloadImage(context.Background(), server.URL+"/missing.jpg")
	assert.ErrorIs(t, err, ErrImageDownload)
}

func TestScreenshotURL(t *testing.T) {
	raw := "https://images.gog.com/abc_{formatter}.webp"
	assert.Equal(t, "https://images.gog.com/abc_product_card_v2_mobile_slider_639.webp", ScreenshotURL(raw))

	// URLs without the token pass through unchanged
	assert.Equal(t, "https://images.gog.com/abc.webp", ScreenshotURL("https://images.gog.com/abc.webp"))
}
