package entity

import (
	"fmt"
	"slices"
	"time"
)

type BuyRequestStatus string

const (
	StatusPending   BuyRequestStatus = "pending"
	StatusApproved  BuyRequestStatus = "approved"
	StatusRejected  BuyRequestStatus = "rejected"
	StatusPaid      BuyRequestStatus = "paid"
	StatusCancelled BuyRequestStatus = "cancelled"

	// StatusLegacyCompleted встречается только в старых записях и означает StatusPaid.
	StatusLegacyCompleted BuyRequestStatus = "completed"
)

//nolint:gochecknoglobals
var statuses = []BuyRequestStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusPaid,
	StatusCancelled,
}

func Statuses() []BuyRequestStatus {
	return slices.Clone(statuses)
}

func ParseStatus(s string) (BuyRequestStatus, error) {
	status := BuyRequestStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q", s)
	}

	return status, nil
}

func (s BuyRequestStatus) String() string {
	return string(s)
}

// IsValid сообщает, можно ли записать статус. Legacy-алиас записывать нельзя.
func (s BuyRequestStatus) IsValid() bool {
	return slices.Contains(statuses, s)
}

// Normalized переводит legacy-алиас в актуальный статус.
func (s BuyRequestStatus) Normalized() BuyRequestStatus {
	if s == StatusLegacyCompleted {
		return StatusPaid
	}
	return s
}

func (s BuyRequestStatus) In(set ...BuyRequestStatus) bool {
	return slices.Contains(set, s)
}

const (
	ActorAdmin = "admin"
	ActorUser  = "user"
)

type StatusHistoryEntry struct {
	Status    BuyRequestStatus `json:"status"`
	ChangedAt time.Time        `json:"changedAt"`
	ChangedBy string           `json:"changedBy,omitempty"`
}

// StatusHistory хранит переходы в порядке их совершения и только дописывается.
type StatusHistory []StatusHistoryEntry

func (h StatusHistory) Contains(status BuyRequestStatus) bool {
	return slices.ContainsFunc(h, func(e StatusHistoryEntry) bool {
		return e.Status == status
	})
}

// First возвращает самую раннюю запись с указанным статусом.
func (h StatusHistory) First(status BuyRequestStatus) (StatusHistoryEntry, bool) {
	idx := slices.IndexFunc(h, func(e StatusHistoryEntry) bool {
		return e.Status == status
	})
	if idx < 0 {
		return StatusHistoryEntry{}, false
	}

	return h[idx], true
}

func (h StatusHistory) Last() (StatusHistoryEntry, bool) {
	if len(h) == 0 {
		return StatusHistoryEntry{}, false
	}

	return h[len(h)-1], true
}
