package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownPlatform is returned for identifiers outside X, Y and Z.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is one of the fixed resale marketplaces. The zero value is not a
// platform.
type Platform uint8

const (
	PlatformX Platform = iota + 1
	PlatformY
	PlatformZ
)

const platformCount = 3

var platformNames = [platformCount]string{"X", "Y", "Z"}

func Platforms() []Platform { return []Platform{PlatformX, PlatformY, PlatformZ} }

func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	for i, name := range platformNames {
		if s == name {
			return Platform(i + 1), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

func (p Platform) Valid() bool { return p >= PlatformX && p <= PlatformZ }

func (p Platform) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Platform(%d)", uint8(p))
	}
	return platformNames[p-1]
}

func (p Platform) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return []byte(`""`), nil
	}
	return json.Marshal(p.String())
}

func (p *Platform) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*p = 0
		return nil
	default:
		return fmt.Errorf("platform: cannot scan %T", src)
	}
	parsed, err := ParsePlatform(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Platform) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlatform, uint8(p))
	}
	return p.String(), nil
}

// Overrides holds at most one manual listing price per platform.
type Overrides struct {
	prices [platformCount]float64
	set    [platformCount]bool
}

// Get returns the override for p, if any.
func (o Overrides) Get(p Platform) (float64, bool) {
	if !p.Valid() || !o.set[p-1] {
		return 0, false
	}
	return o.prices[p-1], true
}

func (o *Overrides) Set(p Platform, price float64) {
	if !p.Valid() {
		return
	}
	o.prices[p-1] = price
	o.set[p-1] = true
}

func (o *Overrides) Clear(p Platform) {
	if !p.Valid() {
		return
	}
	o.prices[p-1] = 0
	o.set[p-1] = false
}

// Map renders the overrides keyed by platform name.
func (o Overrides) Map() map[string]float64 {
	out := map[string]float64{}
	for _, p := range Platforms() {
		if v, ok := o.Get(p); ok {
			out[p.String()] = v
		}
	}
	return out
}

func (o Overrides) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

// UnmarshalJSON ignores unknown platform keys and non-positive prices; a zero
// price has always meant "no override".
func (o *Overrides) UnmarshalJSON(b []byte) error {
	*o = Overrides{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		p, err := ParsePlatform(k)
		if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		o.Set(p, v)
	}
	return nil
}

func (o *Overrides) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = Overrides{}
		return nil
	case string:
		return o.UnmarshalJSON([]byte(v))
	case []byte:
		return o.UnmarshalJSON(v)
	default:
		return fmt.Errorf("overrides: cannot scan %T", src)
	}
}

func (o Overrides) Value() (driver.Value, error) {
	b, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
