package pricing

import (
	"errors"
	"testing"

	"phonelister/internal/domain"
)

func TestResolveOverride(t *testing.T) {
	s := Snapshot{BasePrice: 200, Condition: "Good", Tags: []string{"discontinued"}}
	s.Overrides.Set(domain.PlatformZ, 150)

	d, ok, err := ResolveOverride(s, domain.PlatformZ)
	if err != nil || !ok {
		t.Fatalf("expected override, got ok=%v err=%v", ok, err)
	}
	if !d.Success || !d.Override {
		t.Fatalf("override must always succeed: %+v", d)
	}
	if d.FinalPrice != 150 || d.Fee != 24.00 {
		t.Fatalf("expected 150/24.00, got %v/%v", d.FinalPrice, d.Fee)
	}
	if d.Message != "Listed with manual override $150.00 on Z" {
		t.Fatalf("unexpected message %q", d.Message)
	}

	if _, ok, _ := ResolveOverride(s, domain.PlatformX); ok {
		t.Fatal("no override was set for X")
	}
}

func TestResolveOverrideKeepsPriceUnrounded(t *testing.T) {
	s := Snapshot{BasePrice: 3, Condition: "Usable"}
	s.Overrides.Set(domain.PlatformY, 12.345)

	d, err := Evaluate(s, domain.PlatformY)
	if err != nil {
		t.Fatal(err)
	}
	// low price, usable on Y and a thin margin would all reject without the override
	if !d.Success || d.FinalPrice != 12.345 {
		t.Fatalf("expected unrounded override success, got %+v", d)
	}
	if d.Fee != 2.24 {
		t.Fatalf("expected fee from base price 2.24, got %v", d.Fee)
	}
}

func TestEvaluateFallsBackToSimulator(t *testing.T) {
	s := Snapshot{BasePrice: 100, Condition: "New"}
	d, err := Evaluate(s, domain.PlatformX)
	if err != nil {
		t.Fatal(err)
	}
	if d.Override || !d.Success || d.FinalPrice != 90 {
		t.Fatalf("unexpected decision %+v", d)
	}
}

func TestResolveOverrideStillValidatesBasePrice(t *testing.T) {
	s := Snapshot{BasePrice: 0, Condition: "Good"}
	s.Overrides.Set(domain.PlatformX, 50)
	if _, err := Evaluate(s, domain.PlatformX); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestParseOverride(t *testing.T) {
	if _, ok, err := ParseOverride("  "); ok || err != nil {
		t.Fatalf("blank should mean no override, got ok=%v err=%v", ok, err)
	}
	if v, ok, err := ParseOverride("149.5"); !ok || err != nil || v != 149.5 {
		t.Fatalf("expected 149.5, got %v %v %v", v, ok, err)
	}
	for _, bad := range []string{"abc", "12,50", "NaN", "-4", "0"} {
		if _, _, err := ParseOverride(bad); !errors.Is(err, ErrMalformedOverride) {
			t.Fatalf("%q: want ErrMalformedOverride, got %v", bad, err)
		}
	}
}
