package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"phonelister/internal/config"
	"phonelister/internal/repos"
)

func TestPhoneSearch(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	resp, body := call(t, ta.app, "GET", "/api/phones?q=PIXEL", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	list := decodeList(t, body)
	if len(list) != 1 || list[0]["id"] != "ph-pixel6" {
		t.Fatalf("unexpected search result %s", body)
	}
	if !strings.HasSuffix(list[0]["created_at"].(string), "IST") {
		t.Fatalf("created_at not in display zone: %v", list[0]["created_at"])
	}
	if tags, _ := list[0]["tags"].([]any); len(tags) != 1 || tags[0] != "unlocked" {
		t.Fatalf("tags should be a list: %v", list[0]["tags"])
	}

	_, body = call(t, ta.app, "GET", "/?condition=usable", "", nil)
	if list = decodeList(t, body); len(list) != 1 || list[0]["id"] != "ph-galaxys9" {
		t.Fatalf("condition filter: %s", body)
	}

	// markup characters are stripped, not matched
	_, body = call(t, ta.app, "GET", "/api/phones?q=%3CNokia%3E", "", nil)
	if list = decodeList(t, body); len(list) != 1 || list[0]["id"] != "ph-nokia3310" {
		t.Fatalf("sanitized search: %s", body)
	}

	if resp, _ := call(t, ta.app, "GET", "/api/phones/ph-nope", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestPhoneCreateUpdateDelete(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	resp, body := call(t, ta.app, "POST", "/api/phones?admin=1", "application/json",
		strings.NewReader(`{"brand":"Apple","condition":"Mint","base_price":0}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create: expected 400, got %d", resp.StatusCode)
	}
	if msg, _ := decodeMap(t, body)["error"].(string); !strings.Contains(msg, "model_name: required") || !strings.Contains(msg, "base_price: gt") {
		t.Fatalf("validation message %s", body)
	}

	resp, body = call(t, ta.app, "POST", "/phone/add?admin=1", "application/json",
		strings.NewReader(`{"brand":"Samsung","model_name":"Galaxy S21","condition":"excellent","storage":"256GB","base_price":380,"stock_quantity":6,"tags":"5g, unlocked"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", resp.StatusCode, body)
	}
	m := decodeMap(t, body)
	phone, _ := m["phone"].(map[string]any)
	id, _ := phone["id"].(string)
	if m["success"] != true || id == "" || phone["condition"] != "Excellent" {
		t.Fatalf("unexpected create body %s", body)
	}

	_, body = call(t, ta.app, "GET", "/admin?admin=1", "", nil)
	phones, _ := decodeMap(t, body)["phones"].([]any)
	if first, _ := phones[0].(map[string]any); first["id"] != id {
		t.Fatalf("admin list should start with the newest phone: %s", body)
	}

	resp, body = call(t, ta.app, "PUT", "/phone/"+id+"/edit?admin=1", "application/json",
		strings.NewReader(`{"stock_quantity":0}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", resp.StatusCode, body)
	}
	phone, _ = decodeMap(t, body)["phone"].(map[string]any)
	if phone["stock_quantity"] != 0.0 || phone["model_name"] != "Galaxy S21" || phone["base_price"] != 380.0 {
		t.Fatalf("partial update: %s", body)
	}

	resp, _ = call(t, ta.app, "PUT", "/api/phones/"+id+"?admin=1", "application/json",
		strings.NewReader(`{"base_price":-1}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid update: expected 400, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "PUT", "/api/phones/ghost?admin=1", "application/json", strings.NewReader(`{}`)); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", resp.StatusCode)
	}

	// the out-of-stock attempt leaves a log row that must go with the phone
	call(t, ta.app, "POST", "/list/"+id+"/X?admin=1", "", nil)
	resp, _ = call(t, ta.app, "DELETE", "/api/phones/"+id+"?admin=1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/api/phones/"+id, "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted phone still served: %d", resp.StatusCode)
	}
	left, err := repos.NewListingLogRepo(ta.db).ByPhone(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Fatalf("logs survived the phone: %d", len(left))
	}
	if resp, _ := call(t, ta.app, "DELETE", "/phone/"+id+"/delete?admin=1", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestAvailability(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	_, body := call(t, ta.app, "GET", "/api/v1/availability?phoneId=ph-iphone12", "", nil)
	if m := decodeMap(t, body); m["status"] != "LOW_STOCK" || m["qty"] != 4.0 {
		t.Fatalf("unexpected availability %s", body)
	}
	_, body = call(t, ta.app, "GET", "/api/v1/availability?phoneId=ph-nokia3310", "", nil)
	if m := decodeMap(t, body); m["status"] != "OUT_OF_STOCK" {
		t.Fatalf("unexpected availability %s", body)
	}
	if resp, _ := call(t, ta.app, "GET", "/api/v1/availability", "", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing id: expected 400, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/api/v1/availability?phoneId=a%20b", "", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", resp.StatusCode)
	}
	if resp, _ := call(t, ta.app, "GET", "/api/v1/availability?phoneId=ghost", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}
}

func TestAvailabilityRateLimit(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	var last int
	for i := 0; i < 16; i++ {
		resp, _ := call(t, ta.app, "GET", "/api/v1/availability?phoneId=ph-pixel6", "", nil)
		last = resp.StatusCode
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("16th request: expected 429, got %d", last)
	}
}

func TestUpdatePrices(t *testing.T) {
	ta := newTestApp(t, config.Config{})

	resp, body := call(t, ta.app, "POST", "/api/update-prices?admin=1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	m := decodeMap(t, body)
	if m["message"] != "Price calculations refreshed for 4 phones" || m["updated_count"] != 4.0 {
		t.Fatalf("unexpected body %s", body)
	}
}
