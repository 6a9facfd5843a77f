package membership_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/internal/domain/membership"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestComputeExpiry(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		duration int
		want     time.Time
	}{
		{"mensual normal", day(2024, 3, 15), 30, day(2024, 4, 15)},
		{"mensual fin de enero bisiesto", day(2024, 1, 31), 30, day(2024, 2, 29)},
		{"mensual fin de enero", day(2023, 1, 31), 30, day(2023, 2, 28)},
		{"mensual diciembre", day(2024, 12, 20), 30, day(2025, 1, 20)},
		{"mensual 31 a mes de 30", day(2024, 3, 31), 30, day(2024, 4, 30)},
		{"quincenal", day(2024, 2, 20), 15, day(2024, 3, 6)},
		{"trimestral en días", day(2024, 1, 1), 90, day(2024, 3, 31)},
		{"diario", day(2024, 5, 10), 1, day(2024, 5, 11)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, membership.ComputeExpiry(tt.start, tt.duration))
		})
	}
}

func TestComputeExpiry_IgnoraHora(t *testing.T) {
	caracas := time.FixedZone("VET", -4*3600)
	start := time.Date(2024, 6, 10, 22, 30, 0, 0, caracas)
	assert.Equal(t, day(2024, 7, 10), membership.ComputeExpiry(start, 30))
}

func TestStatusAt(t *testing.T) {
	expiry := day(2024, 6, 20)
	tests := []struct {
		today time.Time
		want  string
	}{
		{day(2024, 6, 1), membership.StatusActive},
		{day(2024, 6, 14), membership.StatusActive},
		{day(2024, 6, 15), membership.StatusExpiring},
		{day(2024, 6, 20), membership.StatusExpiring},
		{day(2024, 6, 21), membership.StatusExpired},
	}
	for _, tt := range tests {
		t.Run(tt.today.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, membership.StatusAt(expiry, tt.today, membership.DefaultExpiringDays))
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	assert.Equal(t, 5, membership.DaysRemaining(day(2024, 6, 20), day(2024, 6, 15)))
	assert.Equal(t, 0, membership.DaysRemaining(day(2024, 6, 20), day(2024, 6, 20)))
	assert.Equal(t, -3, membership.DaysRemaining(day(2024, 6, 20), day(2024, 6, 23)))
	// cruza cambio de mes y año
	assert.Equal(t, 2, membership.DaysRemaining(day(2025, 1, 1), day(2024, 12, 30)))
}

func TestRenewalStart(t *testing.T) {
	today := day(2024, 6, 10)
	assert.Equal(t, day(2024, 6, 15), membership.RenewalStart(day(2024, 6, 15), today), "renovación anticipada acumula")
	assert.Equal(t, today, membership.RenewalStart(day(2024, 5, 1), today), "vencida arranca hoy")
	assert.Equal(t, today, membership.RenewalStart(today, today))
}

func TestExpiryRange_CoincideConStatusAt(t *testing.T) {
	today := day(2024, 6, 10)
	for _, status := range []string{membership.StatusActive, membership.StatusExpiring, membership.StatusExpired} {
		from, to, ok := membership.ExpiryRange(status, today, 5)
		require.True(t, ok)
		for offset := -10; offset <= 20; offset++ {
			exp := today.AddDate(0, 0, offset)
			inRange := (from == nil || !exp.Before(*from)) && (to == nil || !exp.After(*to))
			assert.Equal(t, membership.StatusAt(exp, today, 5) == status, inRange,
				"estado %s, vencimiento %s", status, exp.Format("2006-01-02"))
		}
	}
	_, _, ok := membership.ExpiryRange("otro", today, 5)
	assert.False(t, ok)
}
