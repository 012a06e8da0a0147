package httptransport

type CourseDTO struct {
	CourseID     string `json:"course_id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID string `json:"instructor_id"`
	PriceCents   int64  `json:"price_cents"`
}

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

type CreateCourseResponse struct {
	Item CourseDTO `json:"item"`
}

type GetCourseResponse struct {
	Item CourseDTO `json:"item"`
}

type ListCoursesResponse struct {
	Items []CourseDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
