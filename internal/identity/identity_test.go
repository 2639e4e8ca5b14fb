package identity

import (
	"os"
	"runtime"
	"testing"
)

func TestCurrent_RepeatedReadsMatch(t *testing.T) {
	first := Current()
	second := Current()

	if first != second {
		t.Errorf("identity changed between reads: %s then %s", first, second)
	}
}

func TestCurrent_MatchesOS(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no uids on windows")
	}

	got := Current()
	if got.Real != uint32(os.Getuid()) {
		t.Errorf("Real = %d, want %d", got.Real, os.Getuid())
	}
	if got.Effective != uint32(os.Geteuid()) {
		t.Errorf("Effective = %d, want %d", got.Effective, os.Geteuid())
	}
}

func TestPair_String(t *testing.T) {
	p := Pair{Real: 1000, Effective: 0}
	if got, want := p.String(), "uid=1000 euid=0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPair_Is(t *testing.T) {
	tests := []struct {
		name string
		pair Pair
		uid  uint32
		want bool
	}{
		{"both match", Pair{Real: 0, Effective: 0}, Superuser, true},
		{"effective only", Pair{Real: 1000, Effective: 0}, Superuser, false},
		{"real only", Pair{Real: 0, Effective: 1000}, Superuser, false},
		{"neither", Pair{Real: 1000, Effective: 1000}, Superuser, false},
		{"non-root target", Pair{Real: 1000, Effective: 1000}, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pair.Is(tt.uid); got != tt.want {
				t.Errorf("%s.Is(%d) = %v, want %v", tt.pair, tt.uid, got, tt.want)
			}
		})
	}
}

func TestPair_Privileged(t *testing.T) {
	if !(Pair{Real: 1000, Effective: 0}).Privileged() {
		t.Error("euid 0 should be privileged")
	}
	if (Pair{Real: 0, Effective: 1000}).Privileged() {
		t.Error("euid 1000 should not be privileged")
	}
}
