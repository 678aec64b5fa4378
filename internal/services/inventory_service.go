package services

import (
	"phonelister/internal/domain"
	"phonelister/internal/repos"
)

type InventoryService struct {
	Phones *repos.PhoneRepo
}

func NewInventoryService(phones *repos.PhoneRepo) *InventoryService {
	return &InventoryService{Phones: phones}
}

// CheckAvailability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(phoneID string) (domain.Availability, error) {
	p, err := s.Phones.Get(phoneID)
	if err != nil {
		return domain.Availability{}, err
	}
	return availabilityOf(p.StockQuantity), nil
}

func availabilityOf(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}
