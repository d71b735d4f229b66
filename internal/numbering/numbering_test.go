package numbering

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator() *Generator {
	clock := func() time.Time {
		return time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC)
	}
	return NewGenerator().WithClock(clock).WithRand(rand.New(rand.NewSource(1)))
}

func TestTicketNumberFormat(t *testing.T) {
	g := fixedGenerator()
	n := g.TicketNumber()

	require.Regexp(t, regexp.MustCompile(`^\d{11}$`), n)
	// 6-digit timestamp tail first, then the 5-digit random block.
	ms := fmt.Sprintf("%d", time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC).UnixMilli())
	assert.Equal(t, ms[len(ms)-6:], n[:6])
}

func TestAccountRequestNumberFormat(t *testing.T) {
	g := fixedGenerator()
	n := g.AccountRequestNumber()
	assert.Regexp(t, regexp.MustCompile(`^REQ-[A-Z]{2}\d{6}\d{5}$`), n)
}

func TestAccountResetNumberFormat(t *testing.T) {
	g := fixedGenerator()
	n := g.AccountResetNumber()
	assert.Regexp(t, regexp.MustCompile(`^RST-[A-Z]{3}\d{4}\d{6}$`), n)
}

func TestBatchNumberFormat(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20240101-0001", FormatBatchNumber(day, 1))
	assert.Equal(t, "20240101-0042", FormatBatchNumber(day, 42))
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-\d{4}$`), FormatBatchNumber(day, 9999))
	assert.Equal(t, "20240101", BatchDatePrefix(day))
}
