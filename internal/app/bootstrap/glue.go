package bootstrap

import (
	"context"

	enrollmentports "coursebay/contexts/commerce/enrollment-service/ports"
	catalogports "coursebay/contexts/course-catalog/catalog-service/ports"
	identityports "coursebay/contexts/identity-access/identity-service/ports"
	sessionapp "coursebay/contexts/identity-access/session-service/application"
)

// sessionGlue exposes the session token service through the identity-service
// verifier/issuer ports so the contexts stay import-decoupled.
type sessionGlue struct {
	tokens sessionapp.Service
}

func (g sessionGlue) Verify(token string) (identityports.VerifiedSession, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return identityports.VerifiedSession{}, err
	}
	return identityports.VerifiedSession{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (g sessionGlue) Sign(userID string, email string, role string) (string, error) {
	return g.tokens.Sign(userID, email, role)
}

// courseDirectory narrows the catalog repository to the summary view the
// enrollment module needs.
type courseDirectory struct {
	courses catalogports.CourseRepository
}

func (d courseDirectory) GetCourse(ctx context.Context, courseID string) (enrollmentports.CourseSummary, error) {
	course, err := d.courses.GetCourse(ctx, courseID)
	if err != nil {
		return enrollmentports.CourseSummary{}, err
	}
	return enrollmentports.CourseSummary{
		CourseID:   course.CourseID,
		Slug:       course.Slug,
		Title:      course.Title,
		PriceCents: course.PriceCents,
	}, nil
}
