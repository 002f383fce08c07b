package constants

type CounterOfferStatus int

const (
	CounterOfferStatusUnknown CounterOfferStatus = iota
	CounterOfferStatusPending
	CounterOfferStatusAccepted
	CounterOfferStatusRejected
)

func (s CounterOfferStatus) String() string {
	switch s {
	case CounterOfferStatusPending:
		return "pending"
	case CounterOfferStatusAccepted:
		return "accepted"
	case CounterOfferStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

var counterOfferStatusMap = map[string]CounterOfferStatus{
	"pending":  CounterOfferStatusPending,
	"accepted": CounterOfferStatusAccepted,
	"rejected": CounterOfferStatusRejected,
	"unknown":  CounterOfferStatusUnknown,
}

func ParseCounterOfferStatus(s string) CounterOfferStatus {
	if status, ok := counterOfferStatusMap[s]; ok {
		return status
	}
	return CounterOfferStatusUnknown
}

// CounterOfferParty identifies which side of the negotiation raised a counter.
type CounterOfferParty string

const (
	CounterOfferPartyShipper CounterOfferParty = "shipper"
	CounterOfferPartyAdmin   CounterOfferParty = "admin"
)

func (p CounterOfferParty) String() string {
	return string(p)
}

func (p CounterOfferParty) Valid() bool {
	return p == CounterOfferPartyShipper || p == CounterOfferPartyAdmin
}
