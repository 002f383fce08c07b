package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/models"
)

func NewProposeCounterRequest(invoiceID primitive.ObjectID, amount primitive.Decimal128, reason string, proposer *models.User) *ProposeCounterRequest {
	return &ProposeCounterRequest{
		invoiceID:  invoiceID,
		amount:     amount,
		reason:     reason,
		proposer:   proposer,
		proposedBy: constants.CounterOfferPartyShipper,
	}
}

type ProposeCounterRequest struct {
	invoiceID  primitive.ObjectID
	amount     primitive.Decimal128
	reason     string
	proposer   *models.User
	proposedBy constants.CounterOfferParty
}

// WithProposedBy overrides the proposing party, used when an operator records
// a counter negotiated outside the portal.
func (r *ProposeCounterRequest) WithProposedBy(party constants.CounterOfferParty) *ProposeCounterRequest {
	r.proposedBy = party
	return r
}

func (r *ProposeCounterRequest) GetInvoiceID() primitive.ObjectID {
	return r.invoiceID
}

func (r *ProposeCounterRequest) GetAmount() primitive.Decimal128 {
	return r.amount
}

func (r *ProposeCounterRequest) GetReason() string {
	return r.reason
}

func (r *ProposeCounterRequest) GetProposer() *models.User {
	return r.proposer
}

func (r *ProposeCounterRequest) GetProposedBy() constants.CounterOfferParty {
	return r.proposedBy
}

// --- ResolveCounter DTOs ---

func NewResolveCounterRequest(counterOfferID primitive.ObjectID, accept bool, responseNote string, operator *models.User) *ResolveCounterRequest {
	return &ResolveCounterRequest{
		counterOfferID: counterOfferID,
		accept:         accept,
		responseNote:   responseNote,
		operator:       operator,
	}
}

type ResolveCounterRequest struct {
	counterOfferID primitive.ObjectID
	accept         bool
	responseNote   string
	operator       *models.User
}

func (r *ResolveCounterRequest) GetCounterOfferID() primitive.ObjectID {
	return r.counterOfferID
}

func (r *ResolveCounterRequest) GetAccept() bool {
	return r.accept
}

func (r *ResolveCounterRequest) GetResponseNote() string {
	return r.responseNote
}

func (r *ResolveCounterRequest) GetOperator() *models.User {
	return r.operator
}

// CounterOfferOutcome reports the state of an invoice after a counter offer
// was resolved. Total amounts change only on acceptance.
type CounterOfferOutcome struct {
	CounterOffer *models.CounterOffer `json:"counter_offer"`
	Invoice      *models.Invoice      `json:"invoice"`
}
