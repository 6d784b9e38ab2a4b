// AngelaMos | 2026
// entity_test.go

package user

import (
	"testing"
	"time"
)

func TestStringListValue(t *testing.T) {
	var nilList StringList
	v, err := nilList.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil list value = %v, want []", v)
	}

	list := StringList{"go", "databases"}
	v, err = list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["go","databases"]` {
		t.Errorf("value = %v", v)
	}
}

func TestStringListScan(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["go","databases"]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(list) != 2 || list[0] != "go" {
		t.Errorf("list = %v", list)
	}

	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if list != nil {
		t.Errorf("list after nil scan = %v", list)
	}

	if err := list.Scan(42); err == nil {
		t.Error("scanning an int should fail")
	}
}

func TestIsDeleted(t *testing.T) {
	u := &User{}
	if u.IsDeleted() {
		t.Error("fresh user should not be deleted")
	}

	now := time.Now()
	u.DeletedAt = &now
	if !u.IsDeleted() {
		t.Error("user with deleted_at should be deleted")
	}
}
