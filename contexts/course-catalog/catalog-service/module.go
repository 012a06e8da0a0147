package catalogservice

import (
	"log/slog"

	httpadapter "coursebay/contexts/course-catalog/catalog-service/adapters/http"
	"coursebay/contexts/course-catalog/catalog-service/application/commands"
	"coursebay/contexts/course-catalog/catalog-service/application/queries"
	"coursebay/contexts/course-catalog/catalog-service/ports"
)

// Module is the catalog-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Courses     ports.CourseRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCourse := commands.CreateCourseUseCase{
		Courses:     deps.Courses,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	getCourse := queries.GetCourseBySlugUseCase{
		Courses: deps.Courses,
		Logger:  deps.Logger,
	}
	listCourses := queries.ListCoursesUseCase{
		Courses: deps.Courses,
		Logger:  deps.Logger,
	}
	instructorCourses := queries.ListInstructorCoursesUseCase{
		Courses: deps.Courses,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCourse:      createCourse,
			GetCourse:         getCourse,
			ListCourses:       listCourses,
			InstructorCourses: instructorCourses,
			Logger:            deps.Logger,
		},
	}
}
