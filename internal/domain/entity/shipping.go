package entity

// ShippingInfo хранит адрес, на который клиент отправляет устройство.
type ShippingInfo struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	PostalCode    string `json:"postalCode,omitempty"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	Note          string `json:"note,omitempty"`
}

// IsComplete reports whether the required address fields are present.
func (s ShippingInfo) IsComplete() bool {
	return s.RecipientName != "" && s.Phone != "" && s.Address1 != ""
}
