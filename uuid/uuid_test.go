package uuid_test

import (
	"testing"

	"github.com/freekieb7/basalt/uuid"
)

func TestUUIDConversion(t *testing.T) {
	id := uuid.NewV4()
	idStr := id.String()

	idParsed, err := uuid.Parse(idStr)
	if err != nil {
		t.Fatal(err)
	}

	if id != idParsed {
		t.Error("parse failed")
	}
}

func TestUUIDVersion(t *testing.T) {
	if v := uuid.NewV4().Version(); v != 4 {
		t.Errorf("expected version 4, got %d", v)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"not-a-uuid",
		"00000000000000000000000000000000",
		"00000000-0000-4000-8000-00000000000g",
		"00000000x0000-4000-8000-000000000000",
	} {
		if _, err := uuid.Parse(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func BenchmarkUUIDToString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		id := uuid.NewV4()
		idStr := id.String()
		uuid.Parse(idStr)
	}
}
