package order

// Status is the order lifecycle state.
//
//	Draft -> Reserved -> Confirmed -> Billed
//	Draft/Reserved/Confirmed -> Cancelled (explicit) or Expired (idle session)
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReserved  Status = "reserved"
	StatusConfirmed Status = "confirmed"
	StatusBilled    Status = "billed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	switch s {
	case StatusBilled, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsModifiable reports whether cart-building intents are accepted.
func (s Status) IsModifiable() bool {
	return s == StatusDraft || s == StatusReserved
}
