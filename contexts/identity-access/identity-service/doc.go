// Package identityservice contains the CourseBay user directory and
// authorization guard.
//
// The guard turns "is this caller allowed here" into a pure decision value:
// allow, or redirect to a role-appropriate target. Denials are decisions, not
// errors, so page-level gating stays composable.
package identityservice
