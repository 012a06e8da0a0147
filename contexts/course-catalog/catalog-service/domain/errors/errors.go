package errors

import "errors"

var (
	ErrInvalidCourse           = errors.New("invalid course")
	ErrInvalidCourseTitle      = errors.New("course title yields an empty slug")
	ErrCourseNotFound          = errors.New("course not found")
	ErrSlugTaken               = errors.New("slug already in use")
	ErrSlugGenerationExhausted = errors.New("could not derive a unique slug")
)
