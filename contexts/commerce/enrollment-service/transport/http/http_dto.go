package httptransport

type EnrollmentDTO struct {
	EnrollmentID string `json:"enrollment_id"`
	UserID       string `json:"user_id"`
	CourseID     string `json:"course_id"`
	CreatedAt    string `json:"created_at"`
}

type StartCheckoutRequest struct {
	CourseID string `json:"course_id"`
}

type StartCheckoutResponse struct {
	ProviderSessionID string `json:"provider_session_id,omitempty"`
	AlreadyEnrolled   bool   `json:"already_enrolled"`
	CourseSlug        string `json:"course_slug"`
}

type VerifyCheckoutRequest struct {
	SessionID string `json:"session_id"`
}

type VerifyCheckoutResponse struct {
	Enrollment      EnrollmentDTO `json:"enrollment"`
	CourseID        string        `json:"course_id"`
	CourseSlug      string        `json:"course_slug"`
	AlreadyEnrolled bool          `json:"already_enrolled"`
}

type ListEnrollmentsResponse struct {
	Items []EnrollmentDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
