package password

import "testing"

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(4)

	hashed, err := h.Hash("initial-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if hashed == "initial-password" {
		t.Fatalf("hash must not equal the plain password")
	}

	if !h.Compare(hashed, "initial-password") {
		t.Errorf("expected matching password to compare true")
	}

	if h.Compare(hashed, "wrong-password") {
		t.Errorf("expected mismatching password to compare false")
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	t.Parallel()

	h := NewHasher(99)

	hashed, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !h.Compare(hashed, "pw") {
		t.Errorf("expected hash produced with fallback cost to verify")
	}
}
