package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cataloghttp "coursebay/contexts/course-catalog/catalog-service/transport/http"
	identityentities "coursebay/contexts/identity-access/identity-service/domain/entities"
	identityhttp "coursebay/contexts/identity-access/identity-service/transport/http"
)

func doJSON(t *testing.T, handler http.Handler, method string, target string, token string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeIdentityError(t *testing.T, rec *httptest.ResponseRecorder) identityhttp.ErrorResponse {
	t.Helper()

	var resp identityhttp.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp
}

func TestServerRequiresSessionForGuardedRoutes(t *testing.T) {
	ts := newTestServer(t)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/catalog/courses"},
		{http.MethodGet, "/instructor/courses"},
		{http.MethodPost, "/checkout/sessions"},
		{http.MethodGet, "/enrollments"},
		{http.MethodGet, "/admin/users"},
		{http.MethodPost, "/admin/users/user_1/role"},
	}

	for _, route := range routes {
		rec := doJSON(t, ts.server.Handler(), route.method, route.target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want %d", route.method, route.target, rec.Code, http.StatusUnauthorized)
		}
		resp := decodeIdentityError(t, rec)
		if resp.Code != "unauthorized" {
			t.Fatalf("%s %s: code = %q, want unauthorized", route.method, route.target, resp.Code)
		}
		if resp.RedirectTo != "/signin" {
			t.Fatalf("%s %s: redirect_to = %q, want /signin", route.method, route.target, resp.RedirectTo)
		}
	}
}

func TestServerRejectsGarbageToken(t *testing.T) {
	ts := newTestServer(t)

	rec := doJSON(t, ts.server.Handler(), http.MethodGet, "/auth/me", "not-a-jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServerPublicCatalogNeedsNoSession(t *testing.T) {
	ts := newTestServer(t)

	rec := doJSON(t, ts.server.Handler(), http.MethodGet, "/catalog/courses", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServerLearnerCannotCreateCourse(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.seedUser(t, "learner@example.com", identityentities.RoleLearner)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/catalog/courses", token,
		`{"title":"Forbidden Course","price_cents":1900}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	resp := decodeIdentityError(t, rec)
	if resp.Code != "forbidden" {
		t.Fatalf("code = %q, want forbidden", resp.Code)
	}
	if resp.RedirectTo != "/" {
		t.Fatalf("redirect_to = %q, want /", resp.RedirectTo)
	}
}

func TestServerInstructorCreatesCourse(t *testing.T) {
	ts := newTestServer(t)
	instructor, token := ts.seedUser(t, "teach@example.com", identityentities.RoleInstructor)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/catalog/courses", token,
		`{"title":"Go In Practice","description":"hands on","price_cents":4900}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp cataloghttp.CreateCourseResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Item.Slug != "go-in-practice" {
		t.Fatalf("slug = %q, want go-in-practice", resp.Item.Slug)
	}
	if resp.Item.InstructorID != instructor.UserID {
		t.Fatalf("instructor_id = %q, want %q", resp.Item.InstructorID, instructor.UserID)
	}

	got := doJSON(t, ts.server.Handler(), http.MethodGet, "/catalog/courses/go-in-practice", "", "")
	if got.Code != http.StatusOK {
		t.Fatalf("fetch by slug: status = %d, want %d", got.Code, http.StatusOK)
	}
}

func TestServerAdminSurfacesAreAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	_, learnerToken := ts.seedUser(t, "learner@example.com", identityentities.RoleLearner)
	_, adminToken := ts.seedUser(t, "root@example.com", identityentities.RoleAdmin)

	rec := doJSON(t, ts.server.Handler(), http.MethodGet, "/admin/users", learnerToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("learner list users: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = doJSON(t, ts.server.Handler(), http.MethodGet, "/admin/users", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list users: status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp identityhttp.ListUsersResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(resp.Items))
	}
}

// A promotion takes effect on the next request even though the bearer token
// still carries the old role claim: the directory record is authoritative.
func TestServerPromotionAppliesWithoutReissuingToken(t *testing.T) {
	ts := newTestServer(t)
	learner, learnerToken := ts.seedUser(t, "upandcomer@example.com", identityentities.RoleLearner)
	_, adminToken := ts.seedUser(t, "root@example.com", identityentities.RoleAdmin)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/admin/users/"+learner.UserID+"/role", adminToken,
		`{"role":"instructor"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote: status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec = doJSON(t, ts.server.Handler(), http.MethodPost, "/catalog/courses", learnerToken,
		`{"title":"Fresh Instructor","price_cents":900}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create after promotion: status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestServerRejectsUnknownRole(t *testing.T) {
	ts := newTestServer(t)
	learner, _ := ts.seedUser(t, "learner@example.com", identityentities.RoleLearner)
	_, adminToken := ts.seedUser(t, "root@example.com", identityentities.RoleAdmin)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/admin/users/"+learner.UserID+"/role", adminToken,
		`{"role":"superuser"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServerAuthFlowWithCookie(t *testing.T) {
	ts := newTestServer(t)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/auth/register", "",
		`{"email":"new@example.com","name":"New User","password":"long-enough-password"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rec = doJSON(t, ts.server.Handler(), http.MethodPost, "/auth/login", "",
		`{"email":"new@example.com","password":"long-enough-password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	got := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(got, req)
	if got.Code != http.StatusOK {
		t.Fatalf("me with cookie: status = %d, want %d", got.Code, http.StatusOK)
	}

	var me identityhttp.MeResponse
	if err := json.NewDecoder(got.Body).Decode(&me); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if me.User.Email != "new@example.com" {
		t.Fatalf("email = %q, want new@example.com", me.User.Email)
	}
	if me.User.Role != string(identityentities.RoleLearner) {
		t.Fatalf("role = %q, want learner", me.User.Role)
	}
}

func TestServerRejectsDuplicateRegistration(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "taken@example.com", identityentities.RoleLearner)

	rec := doJSON(t, ts.server.Handler(), http.MethodPost, "/auth/register", "",
		`{"email":"taken@example.com","name":"Copy Cat","password":"long-enough-password"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}
