// Package numbering mints the human-readable identifiers stamped on new
// tickets, batches and account workflows. Ticket and request numbers are
// probabilistically unique (timestamp tail + random digits); batch numbers
// are a per-day sequence whose uniqueness is guaranteed by the database
// unique index plus the caller's retry loop.
package numbering

import (
	"fmt"
	"math/rand"
	"time"
)

const upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// BatchDatePrefix formats the date part of a batch number.
func BatchDatePrefix(day time.Time) string {
	return day.Format("20060102")
}

// FormatBatchNumber renders `YYYYMMDD-NNNN` for a given day and sequence.
func FormatBatchNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d", BatchDatePrefix(day), seq)
}

type Generator struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock and WithRand inject deterministic sources for tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) WithRand(r *rand.Rand) *Generator {
	g.rand = r
	return g
}

// TicketNumber: last 6 digits of the unix-millis timestamp followed by a
// 5-digit random suffix.
func (g *Generator) TicketNumber() string {
	return g.timestampTail(6) + fmt.Sprintf("%05d", 10000+g.rand.Intn(90000))
}

// AccountRequestNumber: REQ- + 2 random uppercase letters + 6 timestamp
// digits + 5 random digits.
func (g *Generator) AccountRequestNumber() string {
	return "REQ-" + g.randomLetters(2) + g.timestampTail(6) + fmt.Sprintf("%05d", 10000+g.rand.Intn(90000))
}

// AccountResetNumber: RST- + 3 random uppercase letters + 4 timestamp digits
// + 6 random digits.
func (g *Generator) AccountResetNumber() string {
	return "RST-" + g.randomLetters(3) + g.timestampTail(4) + fmt.Sprintf("%06d", 100000+g.rand.Intn(900000))
}

func (g *Generator) timestampTail(digits int) string {
	ms := fmt.Sprintf("%d", g.now().UnixMilli())
	return ms[len(ms)-digits:]
}

func (g *Generator) randomLetters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = upperLetters[g.rand.Intn(len(upperLetters))]
	}
	return string(b)
}
