package server

import (
	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/internal/domain/service/catalog"
	"buyback/internal/domain/value"
	"buyback/pkg/lox"
	"buyback/pkg/rest"
)

func newRESTBuyRequest(r entity.BuyRequest) rest.BuyRequest {
	photoURLs := r.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}

	return rest.BuyRequest{
		ID:                   r.ID,
		CustomerName:         r.CustomerName,
		CustomerPhone:        r.CustomerPhone,
		CustomerEmail:        r.CustomerEmail,
		ModelPriceID:         r.ModelPriceID,
		DeviceCategory:       r.DeviceCategory.String(),
		ModelCode:            r.ModelCode,
		ModelName:            r.ModelName,
		StorageGB:            r.StorageGB,
		Color:                r.Color,
		BuyPrice:             r.BuyPrice,
		Currency:             r.Currency,
		Status:               r.Status.String(),
		StatusHistory:        lox.Map(r.StatusHistory, newRESTStatusHistoryEntry),
		Notes:                r.Notes,
		AdminNotes:           r.AdminNotes,
		FinalPrice:           r.FinalPrice,
		ImeiSerial:           r.ImeiSerial,
		HasReceipt:           r.HasReceipt,
		PhotoURLs:            photoURLs,
		BankName:             r.BankName,
		BankAccount:          r.BankAccount,
		BankHolder:           r.BankHolder,
		ShippingMethod:       r.ShippingMethod,
		ShippingTrackingCode: r.ShippingTrackingCode,
		ShippingTrackingURL:  r.ShippingTrackingURL,
		ShippingSubmittedAt:  r.ShippingSubmittedAt,
		ShippingInfo:         newRESTShippingInfo(r.ShippingInfo),
		ApprovedAt:           r.ApprovedAt,
		ApprovedBy:           r.ApprovedBy,
		PaidAt:               r.PaidAt,
		CancelledAt:          r.CancelledAt,
		CancelledBy:          r.CancelledBy,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func newRESTStatusHistoryEntry(e entity.StatusHistoryEntry) rest.StatusHistoryEntry {
	return rest.StatusHistoryEntry{
		Status:    e.Status.String(),
		ChangedAt: e.ChangedAt,
		ChangedBy: optional(e.ChangedBy),
	}
}

func newRESTShippingInfo(s *entity.ShippingInfo) *rest.ShippingInfo {
	if s == nil {
		return nil
	}

	return &rest.ShippingInfo{
		RecipientName: s.RecipientName,
		Phone:         s.Phone,
		PostalCode:    optional(s.PostalCode),
		Address1:      s.Address1,
		Address2:      optional(s.Address2),
		Note:          optional(s.Note),
	}
}

func newRESTBuyRequestPage(p entity.Page[entity.BuyRequest]) rest.BuyRequestPage {
	return rest.BuyRequestPage{
		Items:      lox.Map(p.Items, newRESTBuyRequest),
		TotalCount: p.TotalCount,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func newRESTModelPrice(mp entity.ModelPrice) rest.ModelPrice {
	return rest.ModelPrice{
		ID:        mp.ID,
		Category:  mp.Category.String(),
		ModelCode: mp.ModelCode,
		ModelName: mp.ModelName,
		StorageGB: mp.StorageGB,
		Color:     mp.Color,
		BuyPrice:  mp.BuyPrice,
		Currency:  mp.Currency,
		IsActive:  mp.IsActive,
		CreatedAt: mp.CreatedAt,
		UpdatedAt: mp.UpdatedAt,
	}
}

func newCreateInput(in rest.CreateBuyRequest) buyrequest.CreateInput {
	return buyrequest.CreateInput{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		ModelPriceID:  in.ModelPriceID,
		ImeiSerial:    in.ImeiSerial,
		HasReceipt:    in.HasReceipt,
		PhotoURLs:     in.PhotoURLs,
		Notes:         in.Notes,
	}
}

func newAdminUpdateInput(in rest.AdminUpdateBuyRequest) buyrequest.AdminUpdateInput {
	out := buyrequest.AdminUpdateInput{
		AdminNotes: value.Patch[string](in.AdminNotes),
		FinalPrice: value.Patch[int64](in.FinalPrice),
	}

	// Значение проверяет сервис: неизвестный статус это InvalidInput.
	if in.Status != nil {
		status := entity.BuyRequestStatus(*in.Status)
		out.Status = &status
	}

	return out
}

func newUserUpdateInput(in rest.UserUpdateBuyRequest) buyrequest.UserUpdateInput {
	return buyrequest.UserUpdateInput{
		BankName:             in.BankName,
		BankAccount:          in.BankAccount,
		BankHolder:           in.BankHolder,
		ShippingMethod:       in.ShippingMethod,
		ShippingTrackingCode: in.ShippingTrackingCode,
		ShippingTrackingURL:  in.ShippingTrackingURL,
	}
}

func newCatalogCreateInput(in rest.CreateModelPrice) catalog.CreateInput {
	return catalog.CreateInput{
		Category:  entity.DeviceCategory(in.Category),
		ModelCode: in.ModelCode,
		ModelName: in.ModelName,
		StorageGB: in.StorageGB,
		Color:     in.Color,
		BuyPrice:  in.BuyPrice,
		Currency:  in.Currency,
		IsActive:  in.IsActive,
	}
}

func newCatalogUpdateInput(in rest.UpdateModelPrice) catalog.UpdateInput {
	out := catalog.UpdateInput{
		ModelCode: in.ModelCode,
		ModelName: in.ModelName,
		StorageGB: value.Patch[int](in.StorageGB),
		Color:     value.Patch[string](in.Color),
		BuyPrice:  in.BuyPrice,
		Currency:  in.Currency,
		IsActive:  in.IsActive,
	}

	if in.Category != nil {
		category := entity.DeviceCategory(*in.Category)
		out.Category = &category
	}

	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
