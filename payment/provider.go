package payment

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Details carries the method-specific fields submitted by the payer
type Details struct {
	PhoneNumber string `json:"phoneNumber"`
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// Result is a provider's terminal answer for one payment attempt
type Result struct {
	Success           bool
	TransactionID     string
	ProviderReference string
	Message           string
}

// Provider is a payment rail. The bundled implementations simulate the
// provider call; a real integration would swap these for gateway clients.
type Provider interface {
	Name() string
	Process(details Details, amount float64) Result
}

// simulator drives the mock providers. The success rates and latencies are
// design parameters, not contractual; rand and sleep are injectable so tests
// run deterministic and fast.
type simulator struct {
	name        string
	prefix      string
	successRate float64
	latency     time.Duration
	rand        func() float64
	sleep       func(time.Duration)
}

func (s *simulator) attempt(successMsg, failureMsg string) Result {
	// Simulate gateway latency
	s.sleep(s.latency)

	if s.rand() < s.successRate {
		return Result{
			Success:           true,
			TransactionID:     fmt.Sprintf("%s-%d-%s", s.prefix, time.Now().UnixMilli(), uuid.NewString()[:8]),
			ProviderReference: fmt.Sprintf("%s-REF-%s", s.prefix, uuid.NewString()),
			Message:           successMsg,
		}
	}
	return Result{Success: false, Message: failureMsg}
}

// MTNProvider simulates the MTN Mobile Money rail
type MTNProvider struct {
	sim simulator
}

func NewMTNProvider() *MTNProvider {
	return &MTNProvider{sim: simulator{
		name:        "MTN",
		prefix:      "MTN",
		successRate: 0.90,
		latency:     2 * time.Second,
		rand:        rand.Float64,
		sleep:       time.Sleep,
	}}
}

func (p *MTNProvider) Name() string { return p.sim.name }

func (p *MTNProvider) Process(details Details, amount float64) Result {
	return p.sim.attempt(
		"Payment processed successfully via MTN Mobile Money",
		"Payment failed. Please check your MTN Mobile Money balance and try again.",
	)
}

// OrangeProvider simulates the Orange Money rail
type OrangeProvider struct {
	sim simulator
}

func NewOrangeProvider() *OrangeProvider {
	return &OrangeProvider{sim: simulator{
		name:        "Orange",
		prefix:      "ORG",
		successRate: 0.85,
		latency:     1500 * time.Millisecond,
		rand:        rand.Float64,
		sleep:       time.Sleep,
	}}
}

func (p *OrangeProvider) Name() string { return p.sim.name }

func (p *OrangeProvider) Process(details Details, amount float64) Result {
	return p.sim.attempt(
		"Payment processed successfully via Orange Money",
		"Payment failed. Please check your Orange Money account and try again.",
	)
}

// CreditCardProvider simulates a card gateway. Card numbers are checked for
// 13-19 digits before the probabilistic outcome is drawn.
type CreditCardProvider struct {
	sim simulator
}

func NewCreditCardProvider() *CreditCardProvider {
	return &CreditCardProvider{sim: simulator{
		name:        "Credit Card",
		prefix:      "CC",
		successRate: 0.95,
		latency:     3 * time.Second,
		rand:        rand.Float64,
		sleep:       time.Sleep,
	}}
}

func (p *CreditCardProvider) Name() string { return p.sim.name }

func (p *CreditCardProvider) Process(details Details, amount float64) Result {
	if !validCardNumber(details.CardNumber) {
		return Result{Success: false, Message: "Invalid card number"}
	}
	return p.sim.attempt(
		"Payment processed successfully via Credit Card",
		"Payment failed. Please check your card details and try again.",
	)
}

// validCardNumber checks the structural 13-19 digit requirement
func validCardNumber(cardNumber string) bool {
	digits := 0
	for _, r := range strings.ReplaceAll(strings.ReplaceAll(cardNumber, " ", ""), "-", "") {
		if r < '0' || r > '9' {
			return false
		}
		digits++
	}
	return digits >= 13 && digits <= 19
}
