package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	enrollmentservice "coursebay/contexts/commerce/enrollment-service"
	enrollmenterrors "coursebay/contexts/commerce/enrollment-service/domain/errors"
	enrollmenthttp "coursebay/contexts/commerce/enrollment-service/transport/http"
	catalogservice "coursebay/contexts/course-catalog/catalog-service"
	catalogerrors "coursebay/contexts/course-catalog/catalog-service/domain/errors"
	cataloghttp "coursebay/contexts/course-catalog/catalog-service/transport/http"
	identityservice "coursebay/contexts/identity-access/identity-service"
	identityentities "coursebay/contexts/identity-access/identity-service/domain/entities"
	identityerrors "coursebay/contexts/identity-access/identity-service/domain/errors"
	identityhttp "coursebay/contexts/identity-access/identity-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const sessionCookieName = "session"

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	identity   identityservice.Module
	catalog    catalogservice.Module
	enrollment enrollmentservice.Module
}

func New(
	identityModule identityservice.Module,
	catalogModule catalogservice.Module,
	enrollmentModule enrollmentservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		identity:   identityModule,
		catalog:    catalogModule,
		enrollment: enrollmentModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/me", s.handleMe)

	s.mux.HandleFunc("GET /catalog/courses", s.handleListCourses)
	s.mux.HandleFunc("GET /catalog/courses/{slug}", s.handleGetCourse)
	s.mux.HandleFunc("POST /catalog/courses", s.handleCreateCourse)
	s.mux.HandleFunc("GET /instructor/courses", s.handleInstructorCourses)

	s.mux.HandleFunc("POST /checkout/sessions", s.handleStartCheckout)
	s.mux.HandleFunc("GET /checkout/verify", s.handleVerifyCheckout)
	s.mux.HandleFunc("GET /enrollments", s.handleListEnrollments)

	s.mux.HandleFunc("GET /admin/users", s.handleListUsers)
	s.mux.HandleFunc("POST /admin/users/{user_id}/role", s.handleUpdateRole)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}
	resp, err := s.identity.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}
	resp, err := s.identity.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, "")
	if !ok {
		return
	}
	resp, err := s.identity.Handler.MeHandler(r.Context(), identity)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListCoursesHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetCourseHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, identityentities.RoleInstructor)
	if !ok {
		return
	}

	var req cataloghttp.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreateCourseHandler(r.Context(), identity.UserID, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleInstructorCourses(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, identityentities.RoleInstructor)
	if !ok {
		return
	}
	resp, err := s.catalog.Handler.ListInstructorCoursesHandler(r.Context(), identity.UserID)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartCheckout(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, "")
	if !ok {
		return
	}

	var req enrollmenthttp.StartCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnrollmentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.enrollment.Handler.StartCheckoutHandler(r.Context(), identity.UserID, identity.Email, req)
	if err != nil {
		writeEnrollmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVerifyCheckout runs independently of the role guard: the provider
// session carries its own attribution and the write is idempotent. A session
// is still resolved when present so ownership can be cross-checked.
func (s *Server) handleVerifyCheckout(w http.ResponseWriter, r *http.Request) {
	callerID := ""
	if identity, err := s.identity.Guard.ResolveSession(r.Context(), extractToken(r)); err == nil {
		callerID = identity.UserID
	}

	resp, err := s.enrollment.Handler.VerifyCheckoutHandler(r.Context(), callerID, enrollmenthttp.VerifyCheckoutRequest{
		SessionID: r.URL.Query().Get("session_id"),
	})
	if err != nil {
		writeEnrollmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, "")
	if !ok {
		return
	}
	resp, err := s.enrollment.Handler.ListEnrollmentsHandler(r.Context(), identity.UserID)
	if err != nil {
		writeEnrollmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, identityentities.RoleAdmin); !ok {
		return
	}
	resp, err := s.identity.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, identityentities.RoleAdmin); !ok {
		return
	}

	var req identityhttp.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}

	resp, err := s.identity.Handler.UpdateRoleHandler(r.Context(), r.PathValue("user_id"), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireRole resolves the caller and applies the guard decision. Denials are
// written as JSON with the guard's redirect target; they are never errors.
func (s *Server) requireRole(
	w http.ResponseWriter,
	r *http.Request,
	required identityentities.Role,
) (identityentities.Identity, bool) {
	identity, err := s.identity.Guard.ResolveSession(r.Context(), extractToken(r))
	if err != nil {
		decision := s.identity.Guard.Authorize(required, nil)
		writeIdentityError(w, http.StatusUnauthorized, "unauthorized", "sign in required", decision.Redirect)
		return identityentities.Identity{}, false
	}

	decision := s.identity.Guard.Authorize(required, &identity)
	if !decision.Allowed {
		writeIdentityError(w, http.StatusForbidden, "forbidden", "insufficient role", decision.Redirect)
		return identityentities.Identity{}, false
	}
	return identity, true
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrNoSession):
		writeIdentityError(w, http.StatusUnauthorized, "unauthorized", err.Error(), "/signin")
	case errors.Is(err, identityerrors.ErrInvalidCredentials):
		writeIdentityError(w, http.StatusUnauthorized, "invalid_credentials", err.Error(), "")
	case errors.Is(err, identityerrors.ErrEmailTaken):
		writeIdentityError(w, http.StatusConflict, "email_taken", err.Error(), "")
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error(), "")
	case errors.Is(err, identityerrors.ErrInvalidRole):
		writeIdentityError(w, http.StatusUnprocessableEntity, "invalid_role", err.Error(), "")
	case errors.Is(err, identityerrors.ErrInvalidRequest):
		writeIdentityError(w, http.StatusBadRequest, "invalid_request", err.Error(), "")
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error", "")
	}
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrCourseNotFound):
		writeCatalogError(w, http.StatusNotFound, "course_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrSlugTaken),
		errors.Is(err, catalogerrors.ErrSlugGenerationExhausted):
		writeCatalogError(w, http.StatusConflict, "slug_conflict", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidCourseTitle),
		errors.Is(err, catalogerrors.ErrInvalidCourse):
		writeCatalogError(w, http.StatusBadRequest, "invalid_course", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEnrollmentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enrollmenterrors.ErrInvalidProviderSession):
		writeEnrollmentError(w, http.StatusBadRequest, "invalid_session_id", err.Error())
	case errors.Is(err, enrollmenterrors.ErrPaymentNotCompleted):
		writeEnrollmentError(w, http.StatusPaymentRequired, "payment_not_completed", err.Error())
	case errors.Is(err, enrollmenterrors.ErrVerificationFailed):
		writeEnrollmentError(w, http.StatusBadGateway, "verification_failed", err.Error())
	case errors.Is(err, enrollmenterrors.ErrSessionOwnerMismatch):
		writeEnrollmentError(w, http.StatusForbidden, "session_owner_mismatch", err.Error())
	case errors.Is(err, enrollmenterrors.ErrCheckoutAmountInvalid):
		writeEnrollmentError(w, http.StatusUnprocessableEntity, "invalid_amount", err.Error())
	case errors.Is(err, enrollmenterrors.ErrEnrollmentNotFound):
		writeEnrollmentError(w, http.StatusNotFound, "enrollment_not_found", err.Error())
	case errors.Is(err, enrollmenterrors.ErrInvalidEnrollment):
		writeEnrollmentError(w, http.StatusBadRequest, "invalid_enrollment", err.Error())
	case errors.Is(err, catalogerrors.ErrCourseNotFound):
		writeEnrollmentError(w, http.StatusNotFound, "course_not_found", err.Error())
	default:
		writeEnrollmentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string, redirect string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:       code,
		Message:    message,
		RedirectTo: redirect,
	})
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeEnrollmentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enrollmenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
