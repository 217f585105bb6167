package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dinereserve-server/models"
	"dinereserve-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const testAccessSecret = "test-access-secret"

func newAuthTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", testAccessSecret)

	app := iris.New()

	verifier := jwt.NewVerifier(jwt.HS256, []byte(testAccessSecret))
	verifier.WithDefaultBlocklist()
	verifyMiddleware := verifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	admin := app.Party("/api/admin", verifyMiddleware, utils.AdminOnlyMiddleware)
	admin.Get("/ping", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"userID": ctx.Values().Get("userID")})
	})
	admin.Get("/restaurants", GetAllRestaurantsAdmin)

	manager := app.Party("/api/manager", verifyMiddleware, utils.ManagerOnlyMiddleware)
	manager.Get("/ping", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"ok": true})
	})

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return srv
}

func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, []byte(testAccessSecret), time.Hour)
	token, err := signer.Sign(utils.AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(token)
}

func getWithToken(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	res.Body.Close()
	return res
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newAuthTestServer(t)

	res := getWithToken(t, srv.URL+"/api/admin/ping", "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: got status %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}
}

func TestAdminRoutesRejectCustomerAndManager(t *testing.T) {
	srv := newAuthTestServer(t)

	for _, role := range []string{models.RoleCustomer, models.RoleManager} {
		token := signTestToken(t, 7, role)
		res := getWithToken(t, srv.URL+"/api/admin/ping", token)
		if res.StatusCode != http.StatusForbidden {
			t.Fatalf("role %s: got status %d, want %d", role, res.StatusCode, http.StatusForbidden)
		}
	}
}

func TestAdminRoutesAcceptAdmin(t *testing.T) {
	srv := newAuthTestServer(t)

	token := signTestToken(t, 42, models.RoleAdmin)
	res := getWithToken(t, srv.URL+"/api/admin/ping", token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("admin: got status %d, want %d", res.StatusCode, http.StatusOK)
	}
}

func TestManagerRoutesAcceptManagerAndAdmin(t *testing.T) {
	srv := newAuthTestServer(t)

	for _, role := range []string{models.RoleManager, models.RoleAdmin} {
		token := signTestToken(t, 9, role)
		res := getWithToken(t, srv.URL+"/api/manager/ping", token)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("role %s: got status %d, want %d", role, res.StatusCode, http.StatusOK)
		}
	}

	customer := signTestToken(t, 9, models.RoleCustomer)
	res := getWithToken(t, srv.URL+"/api/manager/ping", customer)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("customer: got status %d, want %d", res.StatusCode, http.StatusForbidden)
	}
}

func TestFullCatalogListingIsAdminOnly(t *testing.T) {
	srv := newAuthTestServer(t)

	// Anonymous callers must not see pending or suspended listings.
	res := getWithToken(t, srv.URL+"/api/admin/restaurants", "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: got status %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}

	for _, role := range []string{models.RoleCustomer, models.RoleManager} {
		token := signTestToken(t, 5, role)
		res := getWithToken(t, srv.URL+"/api/admin/restaurants", token)
		if res.StatusCode != http.StatusForbidden {
			t.Fatalf("role %s: got status %d, want %d", role, res.StatusCode, http.StatusForbidden)
		}
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	srv := newAuthTestServer(t)

	res := getWithToken(t, srv.URL+"/api/admin/ping", "not-a-token")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: got status %d, want %d", res.StatusCode, http.StatusUnauthorized)
	}
}
