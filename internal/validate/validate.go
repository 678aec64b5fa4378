package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"phonelister/internal/domain"
)

var (
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reUnsafe   = regexp.MustCompile(`[<>"';\\]`)
	structRule = newValidator()
)

const maxSanitized = 100

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("condition", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseCondition(fl.Field().String())
		return ok
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ID validates a simple resource identifier (phone/log ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Sanitize strips markup and quoting characters and caps the length. Used on
// free-text search input and imported CSV cells.
func Sanitize(s string) string {
	s = reUnsafe.ReplaceAllString(s, "")
	if r := []rune(s); len(r) > maxSanitized {
		s = string(r[:maxSanitized])
	}
	return s
}

// Condition validates the grade and returns its canonical spelling.
func Condition(s string) (domain.Condition, bool) {
	return domain.ParseCondition(s)
}

// PhoneInput is the editable shape of a phone.
type PhoneInput struct {
	Brand         string  `json:"brand" form:"brand" validate:"required,max=100"`
	ModelName     string  `json:"model_name" form:"model_name" validate:"required,max=200"`
	Condition     string  `json:"condition" form:"condition" validate:"required,condition"`
	Storage       string  `json:"storage" form:"storage" validate:"max=50"`
	Color         string  `json:"color" form:"color" validate:"max=50"`
	BasePrice     float64 `json:"base_price" form:"base_price" validate:"gt=0"`
	StockQuantity int     `json:"stock_quantity" form:"stock_quantity" validate:"gte=0"`
	Discontinued  bool    `json:"discontinued" form:"discontinued"`
	Tags          string  `json:"tags" form:"tags" validate:"max=300"`
}

// Normalize trims every text field and canonicalizes the condition.
func (in *PhoneInput) Normalize() {
	in.Brand = strings.TrimSpace(in.Brand)
	in.ModelName = strings.TrimSpace(in.ModelName)
	in.Storage = strings.TrimSpace(in.Storage)
	in.Color = strings.TrimSpace(in.Color)
	in.Tags = strings.TrimSpace(in.Tags)
	if c, ok := domain.ParseCondition(in.Condition); ok {
		in.Condition = string(c)
	}
}

// Phone runs the struct rules and flattens failures into one error listing
// "field: rule" pairs.
func Phone(in PhoneInput) error {
	err := structRule.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	sort.Strings(msgs)
	return &Error{Fields: msgs}
}

// Error lists the rules an input broke.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid phone data: " + strings.Join(e.Fields, ", ")
}
