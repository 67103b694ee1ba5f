// Package generator produces simulated telemetry for vending machines.
package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ConnectionStates are the states a modem connection can be in.
var ConnectionStates = []string{"Online", "Offline", "Unstable"}

// DeviceStates are the operational messages a device reports.
var DeviceStates = []string{
	"Работает",
	"На обслуживании",
	"Ошибка: нет воды",
	"Ошибка: нет кофе",
	"Ошибка: замятие купюры",
	"Выключен",
}

type Money struct {
	Amount   decimal.Decimal `json:"amount" example:"4821"`  // Money collected by the device
	Currency string          `json:"currency" example:"RUB"` // ISO 4217 currency code
}

type Connection struct {
	Status     string    `json:"status" example:"Online"`                          // State of the modem connection
	LastUpdate time.Time `json:"lastUpdate" example:"2025-04-02T19:28:44.491514Z"` // Time of the measurement
}

type Stock struct {
	Coffee   int `json:"coffee" example:"42"`   // Fill level of coffee in percent
	Sugar    int `json:"sugar" example:"17"`    // Fill level of sugar in percent
	Milk     int `json:"milk" example:"80"`     // Fill level of milk in percent
	Cups     int `json:"cups" example:"64"`     // Fill level of cups in percent
	Lids     int `json:"lids" example:"12"`     // Fill level of lids in percent
	Stirrers int `json:"stirrers" example:"99"` // Fill level of stirrers in percent
}

type Cash struct {
	CashInBox        int `json:"cashInBox" example:"1200"`        // Cash in the cash box
	CashlessPayments int `json:"cashlessPayments" example:"3400"` // Sum of cashless payments
	Total            int `json:"total" example:"4600"`            // Sum of both
}

type Statuses struct {
	Statuses  []string  `json:"statuses" example:"Работает"`                     // Active states of the device
	LastCheck time.Time `json:"lastCheck" example:"2025-04-02T19:28:44.491514Z"` // Time of the check
}

// Generator draws simulated values from its own random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New returns a Generator using src. A fixed source yields a
// reproducible sequence of values.
func New(src rand.Source) *Generator {
	return &Generator{
		rnd: rand.New(src),
		now: time.Now,
	}
}

// NewSeeded returns a Generator seeded from the current time.
func NewSeeded() *Generator {
	seed := uint64(time.Now().UnixNano())
	return New(rand.NewPCG(seed, seed>>1))
}

// intN returns a value in [0, n).
func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rnd.IntN(n)
}

func (g *Generator) Money() Money {
	return Money{
		Amount:   decimal.NewFromInt(int64(g.intN(10000))),
		Currency: currency.RUB.String(),
	}
}

func (g *Generator) Connection() Connection {
	return Connection{
		Status:     ConnectionStates[g.intN(len(ConnectionStates))],
		LastUpdate: g.now().UTC(),
	}
}

func (g *Generator) Stock() Stock {
	return Stock{
		Coffee:   g.intN(100),
		Sugar:    g.intN(100),
		Milk:     g.intN(100),
		Cups:     g.intN(100),
		Lids:     g.intN(100),
		Stirrers: g.intN(100),
	}
}

func (g *Generator) Cash() Cash {
	cash := Cash{
		CashInBox:        g.intN(5000),
		CashlessPayments: g.intN(10000),
	}
	cash.Total = cash.CashInBox + cash.CashlessPayments

	return cash
}

// Statuses picks one or two distinct device states.
func (g *Generator) Statuses() Statuses {
	g.mu.Lock()
	count := g.rnd.IntN(2) + 1
	order := g.rnd.Perm(len(DeviceStates))
	g.mu.Unlock()

	statuses := make([]string, 0, count)
	for _, i := range order[:count] {
		statuses = append(statuses, DeviceStates[i])
	}

	return Statuses{
		Statuses:  statuses,
		LastCheck: g.now().UTC(),
	}
}
