package rates

import (
	"strconv"
	"sync"

	"github.com/ramvik/taskhub/pkg/errors"
)

// Rate is a single exchange rate shared by every handler that converts
// through it. One mutex serializes reads and writes, so an update is
// visible to the next request that takes the lock.
type Rate struct {
	mu    sync.Mutex
	value float64
}

func NewRate(value float64) *Rate {
	return &Rate{value: value}
}

func (r *Rate) Get() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

func (r *Rate) Set(value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

// GBPSource and EURSource are the capabilities handlers are written
// against. A handler never sees the composite, only the rate it needs.
type GBPSource interface {
	GBPToUSD() *Rate
}

type EURSource interface {
	EURToUSD() *Rate
}

// AllRates is the composite state: it implements every capability the
// union of mounted routes requires.
type AllRates struct {
	gbpToUSD *Rate
	eurToUSD *Rate
}

func NewAllRates(gbpToUSD, eurToUSD float64) *AllRates {
	return &AllRates{
		gbpToUSD: NewRate(gbpToUSD),
		eurToUSD: NewRate(eurToUSD),
	}
}

func (a *AllRates) GBPToUSD() *Rate { return a.gbpToUSD }
func (a *AllRates) EURToUSD() *Rate { return a.eurToUSD }

// Multiply converts an amount string by rate; Divide is the inverse.
// Amounts stay strings on the wire, formatted without a fixed precision.
func Multiply(amount string, rate float64) (string, error) {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "", errors.Errorf("got malformed amount %q", amount)
	}

	return formatAmount(v * rate), nil
}

func Divide(amount string, rate float64) (string, error) {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return "", errors.Errorf("got malformed amount %q", amount)
	}

	return formatAmount(v / rate), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
