package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Shipping описывает адрес приёма устройств. Читается заново при каждом одобрении заявки.
type Shipping struct {
	RecipientName string `env:"SHIP_TO_RECIPIENT_NAME"`
	Phone         string `env:"SHIP_TO_PHONE"`
	PostalCode    string `env:"SHIP_TO_POSTAL_CODE"`
	Address1      string `env:"SHIP_TO_ADDRESS1"`
	Address2      string `env:"SHIP_TO_ADDRESS2"`
	Note          string `env:"SHIP_TO_NOTE"`
}

func LoadShipping() (Shipping, error) {
	var s Shipping

	if err := env.Parse(&s); err != nil {
		return Shipping{}, fmt.Errorf("env.Parse: %w", err)
	}

	s.RecipientName = strings.TrimSpace(s.RecipientName)
	s.Phone = strings.TrimSpace(s.Phone)
	s.PostalCode = strings.TrimSpace(s.PostalCode)
	s.Address1 = strings.TrimSpace(s.Address1)
	s.Address2 = strings.TrimSpace(s.Address2)
	s.Note = strings.TrimSpace(s.Note)

	return s, nil
}
