package services

import (
	"strings"

	"phonelister/internal/domain"
	"phonelister/internal/repos"
	"phonelister/internal/validate"
)

type PhoneService struct {
	Phones *repos.PhoneRepo
}

func NewPhoneService(phones *repos.PhoneRepo) *PhoneService {
	return &PhoneService{Phones: phones}
}

// Search trims and sanitizes the query before filtering.
func (s *PhoneService) Search(q, condition string) ([]domain.Phone, error) {
	q = strings.TrimSpace(validate.Sanitize(q))
	condition = strings.TrimSpace(validate.Sanitize(condition))
	if c, ok := validate.Condition(condition); ok {
		condition = string(c)
	}
	return s.Phones.Search(q, condition)
}

func (s *PhoneService) ListNewest() ([]domain.Phone, error) {
	return s.Phones.ListNewest()
}

func (s *PhoneService) Get(id string) (domain.Phone, error) {
	return s.Phones.Get(id)
}

func (s *PhoneService) Create(in validate.PhoneInput) (domain.Phone, error) {
	in.Normalize()
	if err := validate.Phone(in); err != nil {
		return domain.Phone{}, err
	}
	p := phoneFromInput(domain.Phone{}, in)
	if err := s.Phones.Create(&p); err != nil {
		return domain.Phone{}, err
	}
	return s.Phones.Get(p.ID)
}

// PhonePatch carries the fields an update supplied; nil means unchanged.
type PhonePatch struct {
	Brand         *string  `json:"brand" form:"brand"`
	ModelName     *string  `json:"model_name" form:"model_name"`
	Condition     *string  `json:"condition" form:"condition"`
	Storage       *string  `json:"storage" form:"storage"`
	Color         *string  `json:"color" form:"color"`
	BasePrice     *float64 `json:"base_price" form:"base_price"`
	StockQuantity *int     `json:"stock_quantity" form:"stock_quantity"`
	Discontinued  *bool    `json:"discontinued" form:"discontinued"`
	Tags          *string  `json:"tags" form:"tags"`
}

// Update applies patch to the stored phone and validates the result as a
// whole before saving.
func (s *PhoneService) Update(id string, patch PhonePatch) (domain.Phone, error) {
	cur, err := s.Phones.Get(id)
	if err != nil {
		return domain.Phone{}, err
	}
	in := inputFromPhone(cur)
	setIf(&in.Brand, patch.Brand)
	setIf(&in.ModelName, patch.ModelName)
	setIf(&in.Condition, patch.Condition)
	setIf(&in.Storage, patch.Storage)
	setIf(&in.Color, patch.Color)
	setIf(&in.BasePrice, patch.BasePrice)
	setIf(&in.StockQuantity, patch.StockQuantity)
	setIf(&in.Discontinued, patch.Discontinued)
	setIf(&in.Tags, patch.Tags)

	in.Normalize()
	if err := validate.Phone(in); err != nil {
		return domain.Phone{}, err
	}
	if err := s.Phones.Update(phoneFromInput(cur, in)); err != nil {
		return domain.Phone{}, err
	}
	return s.Phones.Get(id)
}

func (s *PhoneService) Delete(id string) error {
	return s.Phones.Delete(id)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func inputFromPhone(p domain.Phone) validate.PhoneInput {
	return validate.PhoneInput{
		Brand: p.Brand, ModelName: p.ModelName, Condition: string(p.Condition),
		Storage: p.Storage, Color: p.Color, BasePrice: p.BasePrice,
		StockQuantity: p.StockQuantity, Discontinued: p.Discontinued, Tags: p.Tags,
	}
}

func phoneFromInput(p domain.Phone, in validate.PhoneInput) domain.Phone {
	p.Brand = in.Brand
	p.ModelName = in.ModelName
	p.Condition = domain.Condition(in.Condition)
	p.Storage = in.Storage
	p.Color = in.Color
	p.BasePrice = in.BasePrice
	p.StockQuantity = in.StockQuantity
	p.Discontinued = in.Discontinued
	p.Tags = domain.JoinTags(domain.SplitTags(in.Tags))
	return p
}
