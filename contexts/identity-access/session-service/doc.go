// Package sessionservice contains the CourseBay signed-session token service.
//
// The module issues, verifies, and decodes compact signed tokens carrying
// identity and role claims. Signing lives behind a port so application code
// stays library-agnostic.
package sessionservice
