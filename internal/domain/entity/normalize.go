package entity

import "slices"

// Normalize возвращает копию r, в которой legacy-статус "completed" заменён на "paid"
// и в текущем статусе, и в истории. Исходная запись не меняется.
func Normalize(r BuyRequest) BuyRequest {
	r.Status = r.Status.Normalized()

	if r.StatusHistory != nil {
		history := slices.Clone(r.StatusHistory)
		for i := range history {
			history[i].Status = history[i].Status.Normalized()
		}
		r.StatusHistory = history
	}

	return r
}

// HasLegacyStatus сообщает, остался ли где-то legacy-алиас.
func HasLegacyStatus(r BuyRequest) bool {
	return r.Status == StatusLegacyCompleted || r.StatusHistory.Contains(StatusLegacyCompleted)
}

// BackfillTimestamps заполняет пустые approvedAt, paidAt, cancelledAt
// по первой подходящей записи истории. "completed" считается оплатой.
func BackfillTimestamps(r *BuyRequest) (approved, paid, cancelled bool) {
	history := Normalize(*r).StatusHistory

	if e, ok := history.First(StatusApproved); ok {
		approved = SetOnce(&r.ApprovedAt, e.ChangedAt)
	}

	if e, ok := history.First(StatusPaid); ok {
		paid = SetOnce(&r.PaidAt, e.ChangedAt)
	}

	if e, ok := history.First(StatusCancelled); ok {
		cancelled = SetOnce(&r.CancelledAt, e.ChangedAt)
	}

	return approved, paid, cancelled
}
