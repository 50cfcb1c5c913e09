package utils

import (
	"errors"
	"testing"
)

type taggedStruct struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Hidden string `db:"-"`
	NoTag  string
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(taggedStruct{})
	want := []string{"id", "name"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(&taggedStruct{ID: "abc", Name: "n", Hidden: "x", NoTag: "y"})

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(got), got)
	}
	if got["id"] != "abc" || got["name"] != "n" {
		t.Errorf("unexpected map: %v", got)
	}
}

func TestErrorWrapOrNil(t *testing.T) {
	if err := ErrorWrapOrNil(nil, "context"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	base := errors.New("boom")
	err := ErrorWrapOrNil(base, "context")
	if err == nil || !errors.Is(err, base) {
		t.Errorf("wrapped error should unwrap to base, got %v", err)
	}
	if err.Error() != "context: boom" {
		t.Errorf("err.Error() = %q", err.Error())
	}
}

func TestNanoID(t *testing.T) {
	id := NanoID()
	if len(id) != NanoidSize {
		t.Errorf("len(NanoID()) = %d, want %d", len(id), NanoidSize)
	}

	if a, b := NanoID(), NanoID(); a == b {
		t.Errorf("two generated IDs collided: %q", a)
	}

	if got := NanoIDSize(8); len(got) != 8 {
		t.Errorf("len(NanoIDSize(8)) = %d, want 8", len(got))
	}
}
