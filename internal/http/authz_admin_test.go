package handlers_test

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"phonelister/internal/config"
)

func TestAdminGuardRequiresFlag(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	resp, body := call(t, ta.app, "GET", "/admin", "", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if got := decodeMap(t, body)["error"]; got != "Admin access required" {
		t.Fatalf("unexpected body %s", body)
	}

	if resp, _ := call(t, ta.app, "GET", "/admin", "", nil, "X-ADMIN", "0"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("X-ADMIN: 0 should be refused, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/admin?admin=1", "", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("query flag: expected 200, got %d", resp.StatusCode)
	}
	resp, body = call(t, ta.app, "GET", "/admin", "", nil, "X-ADMIN", "1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("header flag: expected 200, got %d", resp.StatusCode)
	}
	if n := decodeMap(t, body)["count"]; n != float64(4) {
		t.Fatalf("expected 4 seeded phones, got %v", n)
	}

	// every mutating route is gated
	for _, r := range [][2]string{
		{"POST", "/api/phones"}, {"PUT", "/api/phones/ph-pixel6"}, {"DELETE", "/api/phones/ph-pixel6"},
		{"POST", "/phone/add"}, {"POST", "/list/ph-pixel6/X"}, {"POST", "/bulk_upload"},
		{"GET", "/api/logs"}, {"GET", "/api/logs/export"}, {"POST", "/api/update-prices"},
	} {
		if resp, _ := call(t, ta.app, r[0], r[1], "", nil); resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", r[0], r[1], resp.StatusCode)
		}
	}
}

func TestAdminGuardHashedKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	ta := newTestApp(t, config.Config{AdminKeyHash: string(hash)})

	if resp, _ := call(t, ta.app, "GET", "/admin?admin=1", "", nil); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("query flag must not pass a hashed key, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/admin", "", nil, "X-ADMIN", "1"); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("plain flag must not pass a hashed key, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/admin", "", nil, "X-ADMIN", "s3cret"); resp.StatusCode != http.StatusOK {
		t.Fatalf("matching key: expected 200, got %d", resp.StatusCode)
	}
}
