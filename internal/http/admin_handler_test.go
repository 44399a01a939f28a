package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"itemshop/internal/domain"
	"itemshop/internal/repos"
)

func seedUser(t *testing.T, a *testApp, email, roles string) string {
	t.Helper()
	if roles == domain.RoleAdmin {
		if err := repos.SeedOperator(a.db, email, "Passw0rd!"); err != nil {
			t.Fatal(err)
		}
	} else {
		u := domain.User{AccountID: domain.NewID(), Email: email, Username: "user", Hash: "x", Roles: roles}
		if err := repos.NewUserRepo(a.db).CreateWithProfiles(u, nil); err != nil {
			t.Fatal(err)
		}
	}
	u, err := repos.NewUserRepo(a.db).ByEmail(email)
	if err != nil {
		t.Fatal(err)
	}
	return u.AccountID
}

func withSession(t *testing.T, a *testApp, req *http.Request, sid, accountID string) *http.Request {
	t.Helper()
	if err := repos.NewUserRepo(a.db).BindSession(sid, accountID); err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func TestAdminGuard(t *testing.T) {
	quietLogs(t)
	a := newTestApp(t)

	resp, _ := a.do(t, httptest.NewRequest("GET", "/admin", nil))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous: want redirect, got %d", resp.StatusCode)
	}

	user := seedUser(t, a, "user@example.com", "")
	resp, _ = a.do(t, withSession(t, a, httptest.NewRequest("GET", "/admin", nil), "sid-user", user))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: want 403, got %d", resp.StatusCode)
	}

	admin := seedUser(t, a, "ops@example.com", domain.RoleAdmin)
	resp, body := a.do(t, withSession(t, a, httptest.NewRequest("GET", "/admin", nil), "sid-admin", admin))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "No shop has been published yet") {
		t.Fatalf("admin: want dashboard, got %d", resp.StatusCode)
	}
}

func TestAdminSessionCanRegenerateViaAPI(t *testing.T) {
	quietLogs(t)
	a := newTestApp(t)
	admin := seedUser(t, a, "ops@example.com", domain.RoleAdmin)

	req := withSession(t, a, jsonReq("POST", "/api/v1/admin/shop/regenerate", nil), "sid-admin", admin)
	if resp, body := a.do(t, req); resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d (%s)", resp.StatusCode, body)
	}
	resp, body := a.do(t, withSession(t, a, httptest.NewRequest("GET", "/admin", nil), "sid-admin", admin))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "BRDailyStorefront") {
		t.Fatalf("dashboard should list the published storefronts: %d", resp.StatusCode)
	}
}

func TestLoginFlowAndFormRegenerate(t *testing.T) {
	logs := quietLogs(t)
	a := newTestApp(t)
	seedUser(t, a, "ops@example.com", domain.RoleAdmin)

	resp, _ := a.do(t, httptest.NewRequest("GET", "/login", nil))
	tok := cookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf cookie missing")
	}

	login := func(pass string) *http.Response {
		form := url.Values{"csrf": {tok}, "email": {"ops@example.com"}, "password": {pass}}
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
		resp, _ := a.do(t, req)
		return resp
	}

	if resp := login("Wr0ngpass!"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}
	resp = login("Passw0rd!")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: want redirect, got %d", resp.StatusCode)
	}
	sid := cookie(resp, "sid")
	if sid == "" {
		t.Fatal("session cookie missing")
	}
	got := logs.actions()
	if !slices.Contains(got, "auth.login.fail") || !slices.Contains(got, "auth.login.success") {
		t.Fatalf("auth events not logged: %v", got)
	}

	form := url.Values{"csrf": {tok}}
	req := httptest.NewRequest("POST", "/admin/shop/regenerate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, _ = a.do(t, req)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin?status=ok" {
		t.Fatalf("form regenerate: got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}

	noTok := httptest.NewRequest("POST", "/admin/shop/regenerate", nil)
	noTok.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	if resp, _ = a.do(t, noTok); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("missing csrf token: want 403, got %d", resp.StatusCode)
	}
}
