package entities

// DenyReason distinguishes "no session" from "session with insufficient role".
type DenyReason string

const (
	DenyUnauthorized DenyReason = "unauthorized"
	DenyForbidden    DenyReason = "forbidden"
)

// Decision is the guard's output. A denial always carries a redirect target;
// the guard never surfaces denials as errors.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Redirect(target string, reason DenyReason) Decision {
	return Decision{Redirect: target, Reason: reason}
}
