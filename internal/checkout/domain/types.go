package domain

import (
	"fmt"
	"strings"
)

type Step string

const (
	StepCart    Step = "cart"
	StepAddress Step = "address"
	StepPayment Step = "payment"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// ShippingAddress lives only for the current checkout session.
type ShippingAddress struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
}

// ReadyForPayment is the looser gate between the address and payment steps.
func (a ShippingAddress) ReadyForPayment() bool {
	return filled(a.FullName) && filled(a.Pincode)
}

// Deliverable is the gate applied when the order is actually placed.
func (a ShippingAddress) Deliverable() bool {
	return filled(a.FullName) && filled(a.AddressLine) && filled(a.Pincode)
}

// String flattens the address into the single line stored on an order.
func (a ShippingAddress) String() string {
	return fmt.Sprintf("%s, %s - %s. Recipient: %s (%s)", a.AddressLine, a.City, a.Pincode, a.FullName, a.Phone)
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

type State struct {
	Step    Step            `json:"step"`
	Address ShippingAddress `json:"address"`
	Payment PaymentMethod   `json:"paymentMethod"`
}
