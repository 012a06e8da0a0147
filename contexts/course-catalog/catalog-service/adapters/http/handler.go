package httpadapter

import (
	"context"
	"log/slog"

	"coursebay/contexts/course-catalog/catalog-service/application/commands"
	"coursebay/contexts/course-catalog/catalog-service/application/queries"
	"coursebay/contexts/course-catalog/catalog-service/domain/entities"
	httptransport "coursebay/contexts/course-catalog/catalog-service/transport/http"
)

type Handler struct {
	CreateCourse      commands.CreateCourseUseCase
	GetCourse         queries.GetCourseBySlugUseCase
	ListCourses       queries.ListCoursesUseCase
	InstructorCourses queries.ListInstructorCoursesUseCase
	Logger            *slog.Logger
}

// ListCoursesHandler godoc
// @Summary List catalog courses
// @Description Returns the published course catalog.
// @Tags catalog
// @Produce json
// @Success 200 {object} httptransport.ListCoursesResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /catalog/courses [get]
func (h Handler) ListCoursesHandler(ctx context.Context) (httptransport.ListCoursesResponse, error) {
	items, err := h.ListCourses.Execute(ctx)
	if err != nil {
		return httptransport.ListCoursesResponse{}, err
	}
	return httptransport.ListCoursesResponse{Items: mapCourses(items)}, nil
}

// GetCourseHandler godoc
// @Summary Get a course by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} httptransport.GetCourseResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /catalog/courses/{slug} [get]
func (h Handler) GetCourseHandler(ctx context.Context, slug string) (httptransport.GetCourseResponse, error) {
	course, err := h.GetCourse.Execute(ctx, queries.GetCourseBySlugQuery{Slug: slug})
	if err != nil {
		return httptransport.GetCourseResponse{}, err
	}
	return httptransport.GetCourseResponse{Item: mapCourse(course)}, nil
}

// CreateCourseHandler godoc
// @Summary Create a course
// @Description Instructor surface: creates a course with a derived unique slug.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateCourseRequest true "Course payload"
// @Success 201 {object} httptransport.CreateCourseResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /catalog/courses [post]
func (h Handler) CreateCourseHandler(
	ctx context.Context,
	instructorID string,
	req httptransport.CreateCourseRequest,
) (httptransport.CreateCourseResponse, error) {
	result, err := h.CreateCourse.Execute(ctx, commands.CreateCourseCommand{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		return httptransport.CreateCourseResponse{}, err
	}
	return httptransport.CreateCourseResponse{Item: mapCourse(result.Course)}, nil
}

// ListInstructorCoursesHandler godoc
// @Summary List the caller's courses
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ListCoursesResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /instructor/courses [get]
func (h Handler) ListInstructorCoursesHandler(ctx context.Context, instructorID string) (httptransport.ListCoursesResponse, error) {
	items, err := h.InstructorCourses.Execute(ctx, instructorID)
	if err != nil {
		return httptransport.ListCoursesResponse{}, err
	}
	return httptransport.ListCoursesResponse{Items: mapCourses(items)}, nil
}

func mapCourses(courses []entities.Course) []httptransport.CourseDTO {
	items := make([]httptransport.CourseDTO, 0, len(courses))
	for _, course := range courses {
		items = append(items, mapCourse(course))
	}
	return items
}

func mapCourse(course entities.Course) httptransport.CourseDTO {
	return httptransport.CourseDTO{
		CourseID:     course.CourseID,
		Slug:         course.Slug,
		Title:        course.Title,
		Description:  course.Description,
		InstructorID: course.InstructorID,
		PriceCents:   course.PriceCents,
	}
}
