// AngelaMos | 2026
// entitlement.go

// Package entitlement decides what a resolved identity may see of a course.
// Evaluation is a pure function of its two inputs and runs on every request
// that serves course or lesson content; results are never cached or stored.
package entitlement

type Capability string

const (
	// CapAdmin grants full access to all content and admin surfaces.
	CapAdmin Capability = "admin"

	// CapPaidContent grants full access to all non-preview courses.
	CapPaidContent Capability = "paid_content"
)

// Identity is the outcome of credential resolution. The zero value is the
// anonymous identity: no user, no capabilities.
type Identity struct {
	UserID string
	caps   map[Capability]struct{}
}

// Anonymous is the identity of a request with a missing, invalid, or
// expired credential.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated builds an identity bound to a user with the given
// capabilities.
func Authenticated(userID string, caps ...Capability) Identity {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return Identity{UserID: userID, caps: set}
}

func (id Identity) IsAuthenticated() bool {
	return id.UserID != ""
}

func (id Identity) Has(c Capability) bool {
	_, ok := id.caps[c]
	return ok
}

func (id Identity) IsAdmin() bool {
	return id.Has(CapAdmin)
}

// Access is the computed entitlement level for one identity and one course.
type Access int

const (
	// AccessPreviewOnly exposes catalog metadata and the purchase link only.
	// Video URLs and lesson content are withheld.
	AccessPreviewOnly Access = iota

	// AccessFull exposes all lesson content including video URLs.
	AccessFull
)

func (a Access) String() string {
	if a == AccessFull {
		return "full"
	}
	return "preview_only"
}

// Course is the slice of a course record the evaluator needs.
type Course interface {
	// PreviewOpen reports whether the course is flagged open to every
	// identity regardless of payment state.
	PreviewOpen() bool
}

// Evaluate applies the access rule, first match wins:
//
//  1. admin capability        -> full
//  2. paid-content capability -> full
//  3. preview course          -> full
//  4. otherwise               -> preview only
//
// Anonymous identities carry no capabilities and fall through to the
// preview rule, identical to a non-admin, non-paying authenticated user.
func Evaluate(id Identity, course Course) Access {
	switch {
	case id.Has(CapAdmin):
		return AccessFull
	case id.Has(CapPaidContent):
		return AccessFull
	case course != nil && course.PreviewOpen():
		return AccessFull
	default:
		return AccessPreviewOnly
	}
}
