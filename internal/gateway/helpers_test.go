package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/podkit/approvalgate/internal/probe"
	"github.com/podkit/approvalgate/internal/relay"
)

type fakeRelay struct {
	outcome relay.Outcome
	calls   int
}

func (f *fakeRelay) Submit(context.Context, string) relay.Outcome {
	f.calls++
	return f.outcome
}

type fakeProbe struct {
	status probe.Status
}

func (f *fakeProbe) Snapshot() probe.Status { return f.status }

func newTestGateway(t *testing.T, rel Relay, ps ProbeSource) *Gateway {
	t.Helper()
	g, err := New(Config{}, rel, ps, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func getPage(g *Gateway, rawToken string) *httptest.ResponseRecorder {
	target := "/"
	if rawToken != "" {
		target += "?token=" + url.QueryEscape(rawToken)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	g.handlePage().ServeHTTP(rr, req)
	return rr
}

func postConfirm(g *Gateway, rawToken string) *httptest.ResponseRecorder {
	form := url.Values{}
	if rawToken != "" {
		form.Set("token", rawToken)
	}
	req := httptest.NewRequest(http.MethodPost, "/approve", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	g.handleConfirm().ServeHTTP(rr, req)
	return rr
}
