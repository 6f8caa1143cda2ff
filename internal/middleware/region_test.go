package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveCountryPrefersProxyHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("CF-IPCountry", "gb")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	if got := ResolveCountry(req, nil); got != "GB" {
		t.Errorf("country = %q, want GB", got)
	}
}

func TestResolveCountryFallsBackToAcceptLanguage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")

	if got := ResolveCountry(req, nil); got != "ID" {
		t.Errorf("country = %q, want ID", got)
	}
}

func TestResolveCountryUsesGeoIPLookupLast(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.5:443"

	lookup := func(ip string) (string, error) {
		if ip != "203.0.113.5" {
			t.Errorf("lookup ip = %q", ip)
		}
		return "us", nil
	}
	if got := ResolveCountry(req, lookup); got != "US" {
		t.Errorf("country = %q, want US", got)
	}
}

func TestResolveCountryEmptyWhenNothingMatches(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := ResolveCountry(req, nil); got != "" {
		t.Errorf("country = %q, want empty", got)
	}
}

func TestRegionMiddlewareStoresCountryOnContext(t *testing.T) {
	var seen string
	handler := Region(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Country-Code", "us")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "US" {
		t.Errorf("context country = %q, want US", seen)
	}
}

func TestClientIPFromForwardedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	req.RemoteAddr = "10.0.0.1:1234"

	if got := ClientIP(req); got != "198.51.100.7" {
		t.Errorf("ip = %q", got)
	}
}
