package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tiendanube/internal/installation"
	"tiendanube/pkg/config"
	"tiendanube/pkg/tiendanube"
)

type fakeExchanger struct {
	tok *tiendanube.AccessToken
	err error
}

func (f fakeExchanger) ExchangeCode(context.Context, string) (*tiendanube.AccessToken, error) {
	return f.tok, f.err
}

type fakeInstallations struct {
	saved []*installation.Installation
	err   error
}

func (f *fakeInstallations) Upsert(_ context.Context, storeID int64, token, scope string) (*installation.Installation, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := &installation.Installation{StoreID: storeID, AccessToken: token, Scope: scope, Status: "active"}
	f.saved = append(f.saved, i)
	return i, nil
}

func TestInstallRedirect(t *testing.T) {
	h := Handlers{Cfg: config.Config{Nube: config.NubeConfig{AppID: "1234"}}, Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.Install(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/install", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "www.tiendanube.com", loc.Host)
	assert.Equal(t, "/apps/1234/authorize", loc.Path)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, stateCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, loc.Query().Get("state"))
}

func callbackRequest(code, state, cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/callback?"+url.Values{"code": {code}, "state": {state}}.Encode(), nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: cookie})
	}
	return req
}

func TestCallback_InstallsAndRegistersWebhooks(t *testing.T) {
	var (
		mu         sync.Mutex
		registered []map[string]string
		paths      []string
	)
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(b, &body)
		mu.Lock()
		registered = append(registered, body)
		paths = append(paths, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authentication"))
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 1}`)
	}))
	defer apiSrv.Close()

	installs := &fakeInstallations{}
	h := Handlers{
		Cfg: config.Config{
			PublicBaseURL: "https://app.example/",
			Nube:          config.NubeConfig{UserAgent: "ua", APIBaseURL: apiSrv.URL},
		},
		Installations: installs,
		Exchanger:     fakeExchanger{tok: &tiendanube.AccessToken{AccessToken: "tok", Scope: "write_products", StoreID: 46}},
		Log:           zap.NewNop(),
	}

	rec := httptest.NewRecorder()
	h.Callback(rec, callbackRequest("abc", "s1", "s1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "installed", rec.Body.String())
	require.Len(t, installs.saved, 1)
	assert.Equal(t, int64(46), installs.saved[0].StoreID)

	require.Len(t, registered, 2)
	assert.Equal(t, map[string]string{"event": "app/uninstalled", "url": "https://app.example/v1/webhooks/tiendanube"}, registered[0])
	assert.Equal(t, "order/paid", registered[1]["event"])
	assert.Equal(t, "POST /46/webhooks bearer tok", paths[0])
}

func TestCallback_Rejections(t *testing.T) {
	ok := fakeExchanger{tok: &tiendanube.AccessToken{AccessToken: "tok", StoreID: 46}}

	cases := []struct {
		name     string
		req      *http.Request
		ex       fakeExchanger
		storeErr error
		status   int
	}{
		{"missing code", callbackRequest("", "s1", "s1"), ok, nil, http.StatusBadRequest},
		{"no state cookie", callbackRequest("abc", "s1", ""), ok, nil, http.StatusBadRequest},
		{"state mismatch", callbackRequest("abc", "s1", "s2"), ok, nil, http.StatusBadRequest},
		{"exchange fails", callbackRequest("abc", "s1", "s1"), fakeExchanger{err: errors.New("invalid_grant")}, nil, http.StatusBadGateway},
		{"save fails", callbackRequest("abc", "s1", "s1"), ok, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Handlers{
				Installations: &fakeInstallations{err: tc.storeErr},
				Exchanger:     tc.ex,
				Log:           zap.NewNop(),
			}
			rec := httptest.NewRecorder()
			h.Callback(rec, tc.req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
