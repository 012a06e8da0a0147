// Package enrollmentservice reconciles CourseBay enrollments with the
// external payment provider.
//
// Checkout sessions are owned by the provider; this module treats them as
// read-only evidence. Activation is a synchronous point-in-time check: it
// never waits for an open session to complete, and the enrollment write is
// idempotent on (user_id, course_id) so replayed success redirects cannot
// produce duplicate rows or duplicate welcome emails.
package enrollmentservice
