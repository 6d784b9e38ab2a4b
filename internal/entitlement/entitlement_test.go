// AngelaMos | 2026
// entitlement_test.go

package entitlement

import (
	"testing"
)

type fakeCourse struct {
	preview bool
}

func (c fakeCourse) PreviewOpen() bool {
	return c.preview
}

func TestEvaluateAdminAlwaysFull(t *testing.T) {
	admin := Authenticated("u1", CapAdmin)

	for _, preview := range []bool{true, false} {
		if got := Evaluate(admin, fakeCourse{preview: preview}); got != AccessFull {
			t.Errorf("Evaluate(admin, preview=%v) = %v, want AccessFull", preview, got)
		}
	}
}

func TestEvaluateAdminWithoutPaidAccess(t *testing.T) {
	// Admin capability alone is sufficient; paid access is irrelevant.
	admin := Authenticated("u1", CapAdmin)

	if got := Evaluate(admin, fakeCourse{preview: false}); got != AccessFull {
		t.Errorf("Evaluate(admin, restricted course) = %v, want AccessFull", got)
	}
}

func TestEvaluatePaidUserAlwaysFull(t *testing.T) {
	paid := Authenticated("u2", CapPaidContent)

	for _, preview := range []bool{true, false} {
		if got := Evaluate(paid, fakeCourse{preview: preview}); got != AccessFull {
			t.Errorf("Evaluate(paid, preview=%v) = %v, want AccessFull", preview, got)
		}
	}
}

func TestEvaluateFreeUserPreviewRule(t *testing.T) {
	free := Authenticated("u3")

	if got := Evaluate(free, fakeCourse{preview: true}); got != AccessFull {
		t.Errorf("Evaluate(free, preview course) = %v, want AccessFull", got)
	}
	if got := Evaluate(free, fakeCourse{preview: false}); got != AccessPreviewOnly {
		t.Errorf("Evaluate(free, restricted course) = %v, want AccessPreviewOnly", got)
	}
}

func TestEvaluateAnonymousMatchesFreeUser(t *testing.T) {
	anon := Anonymous()
	free := Authenticated("u4")

	for _, preview := range []bool{true, false} {
		course := fakeCourse{preview: preview}
		if got, want := Evaluate(anon, course), Evaluate(free, course); got != want {
			t.Errorf("anonymous and free user diverge on preview=%v: %v vs %v",
				preview, got, want)
		}
	}
}

func TestEvaluateNilCourse(t *testing.T) {
	if got := Evaluate(Anonymous(), nil); got != AccessPreviewOnly {
		t.Errorf("Evaluate(anonymous, nil) = %v, want AccessPreviewOnly", got)
	}
	if got := Evaluate(Authenticated("u5", CapAdmin), nil); got != AccessFull {
		t.Errorf("Evaluate(admin, nil) = %v, want AccessFull", got)
	}
}

func TestGrantingPaidAccessFlipsEvaluation(t *testing.T) {
	course := fakeCourse{preview: false}

	before := Evaluate(Authenticated("u6"), course)
	if before != AccessPreviewOnly {
		t.Fatalf("before grant: Evaluate = %v, want AccessPreviewOnly", before)
	}

	after := Evaluate(Authenticated("u6", CapPaidContent), course)
	if after != AccessFull {
		t.Errorf("after grant: Evaluate = %v, want AccessFull", after)
	}
}

func TestAnonymousHasNoCapabilities(t *testing.T) {
	anon := Anonymous()

	if anon.IsAuthenticated() {
		t.Error("Anonymous().IsAuthenticated() = true")
	}
	if anon.Has(CapAdmin) || anon.Has(CapPaidContent) {
		t.Error("anonymous identity reports capabilities")
	}
}

func TestAccessString(t *testing.T) {
	if AccessFull.String() != "full" {
		t.Errorf("AccessFull.String() = %q", AccessFull.String())
	}
	if AccessPreviewOnly.String() != "preview_only" {
		t.Errorf("AccessPreviewOnly.String() = %q", AccessPreviewOnly.String())
	}
}
