package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mensa-backend/lib/telemetry"
	"mensa-backend/services/mensa"

	"github.com/stretchr/testify/require"
)

const testHost = "mensa.example"

func testService(t *testing.T, populate bool) *mensa.Service {
	cleanup := telemetry.SetupForTesting("test:mensa-server")
	t.Cleanup(cleanup)

	svc := mensa.NewService(mensa.Options{SourceURL: "https://sw.example/menu"})
	if !populate {
		return svc
	}

	adenauerring := mensa.Canteen{}
	adenauerring.Add("Linie 1", mensa.Line{
		{Name: "Käsespätzle", Note: "mit Röstzwiebeln", Price: "3,20 €", Tags: []string{"veggi"}},
	})
	adenauerring.Add("Theke 1", mensa.Line{
		{Name: "Schnitzel Wiener Art", Price: "4,50 €", Tags: []string{"schwein"}},
	})
	adenauerring.Add("Spätausgabe und Abendessen", mensa.Line{})

	gottesaue := mensa.Canteen{}
	gottesaue.Add("Linie 2", mensa.Line{
		{Name: "Rindergulasch", Price: "3,80 €", Tags: []string{"rind"}},
	})

	svc.Cache().Replace(mensa.Snapshot{
		"Mensa Am Adenauerring":   adenauerring,
		"Mensa Schloss Gottesaue": gottesaue,
	}, time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC))

	return svc
}

func get(t *testing.T, svc *mensa.Service, target string) *httptest.ResponseRecorder {
	router := NewRouter(svc, testHost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestMeta(t *testing.T) {
	rec := get(t, testService(t, true), "/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta mensa.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Equal(t, "2026-02-03T10:00:00Z", meta.LastUpdate)
}

func TestMetaBeforeFirstRefresh(t *testing.T) {
	rec := get(t, testService(t, false), "/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta mensa.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	require.Empty(t, meta.LastUpdate)
}

func TestDefaultRouteText(t *testing.T) {
	rec := get(t, testService(t, true), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	require.Contains(t, body, "Linie 1")
	require.Contains(t, body, "Käsespätzle (mit Röstzwiebeln)")
	require.Contains(t, body, "http://mensa.example/help")
	// lines without meals are left out of the rendering
	require.NotContains(t, body, "Spätausgabe")
}

func TestDefaultRouteJSON(t *testing.T) {
	rec := get(t, testService(t, true), "/?format=json")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var canteen mensa.Canteen
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canteen))
	require.Equal(t, []string{"Linie 1", "Theke 1", "Spätausgabe und Abendessen"}, canteen.Order)
}

func TestCanteenRoute(t *testing.T) {
	rec := get(t, testService(t, true), "/Gottesaue")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Rindergulasch")
}

func TestLineRouteJSON(t *testing.T) {
	rec := get(t, testService(t, true), "/Aden/Linie%201?format=json")
	require.Equal(t, http.StatusOK, rec.Code)

	var line mensa.Line
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	require.Len(t, line, 1)
	require.Equal(t, "Käsespätzle", line[0].Name)
}

func TestUnknownCanteen(t *testing.T) {
	rec := get(t, testService(t, true), "/Mensaria")
	// user errors render as text, not as http errors
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `unknown canteen "Mensaria"`)
}

func TestAmbiguousLine(t *testing.T) {
	rec := get(t, testService(t, true), "/Aden/1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `ambiguous line "1"`)
	require.Contains(t, body, "Linie 1")
	require.Contains(t, body, "Theke 1")
}

func TestEmptyCacheIsServiceUnavailable(t *testing.T) {
	svc := testService(t, false)

	for _, target := range []string{"/", "/Aden", "/Aden/1"} {
		rec := get(t, svc, target)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, "target %s", target)
		require.Contains(t, rec.Body.String(), "no menu data available yet")
	}
}

func TestHelpForCurl(t *testing.T) {
	router := NewRouter(testService(t, true), testHost)
	req := httptest.NewRequest("GET", "/help", nil)
	req.Header.Set("User-Agent", "curl/8.5.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	require.Contains(t, rec.Body.String(), "mensa.example")
}

func TestHelpForBrowser(t *testing.T) {
	router := NewRouter(testService(t, true), testHost)
	req := httptest.NewRequest("GET", "/help", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "<pre>")
}
