package domain_test

import (
	"testing"
	"time"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPeriod(status domain.PeriodStatus) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		Number:    1,
		Name:      "FY2024 Period 1",
		StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func TestAccountingPeriod_CanPost(t *testing.T) {
	tests := []struct {
		status domain.PeriodStatus
		want   bool
	}{
		{domain.PeriodNotStarted, false},
		{domain.PeriodOpen, true},
		{domain.PeriodSoftClosed, true},
		{domain.PeriodHardClosed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, newTestPeriod(tt.status).CanPost())
		})
	}
}

func TestAccountingPeriod_Contains(t *testing.T) {
	period := newTestPeriod(domain.PeriodOpen)

	assert.True(t, period.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC))) // day granularity
	assert.False(t, period.Contains(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAccountingPeriod_Open(t *testing.T) {
	opened, err := newTestPeriod(domain.PeriodNotStarted).Open()
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodOpen, opened.Status)

	// Reopening a soft-closed period clears closing metadata.
	soft, err := newTestPeriod(domain.PeriodOpen).Close("closer", testNow, false)
	require.NoError(t, err)
	reopened, err := soft.Open()
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodOpen, reopened.Status)
	assert.Empty(t, reopened.ClosedBy)
	assert.Nil(t, reopened.ClosedAt)

	_, err = newTestPeriod(domain.PeriodOpen).Open()
	assert.ErrorIs(t, err, domain.ErrPeriodNotOpenable)

	// HardClosed is terminal.
	_, err = newTestPeriod(domain.PeriodHardClosed).Open()
	assert.ErrorIs(t, err, domain.ErrPeriodNotOpenable)
}

func TestAccountingPeriod_Close(t *testing.T) {
	t.Run("open to soft", func(t *testing.T) {
		closed, err := newTestPeriod(domain.PeriodOpen).Close("closer", testNow, false)
		require.NoError(t, err)
		assert.Equal(t, domain.PeriodSoftClosed, closed.Status)
		assert.Equal(t, "closer", closed.ClosedBy)
		require.NotNil(t, closed.ClosedAt)
	})

	t.Run("open to hard", func(t *testing.T) {
		closed, err := newTestPeriod(domain.PeriodOpen).Close("closer", testNow, true)
		require.NoError(t, err)
		assert.Equal(t, domain.PeriodHardClosed, closed.Status)
	})

	t.Run("soft to hard", func(t *testing.T) {
		soft, err := newTestPeriod(domain.PeriodOpen).Close("closer", testNow, false)
		require.NoError(t, err)
		hard, err := soft.Close("closer", testNow, true)
		require.NoError(t, err)
		assert.Equal(t, domain.PeriodHardClosed, hard.Status)
	})

	t.Run("soft to soft fails", func(t *testing.T) {
		soft, err := newTestPeriod(domain.PeriodOpen).Close("closer", testNow, false)
		require.NoError(t, err)
		_, err = soft.Close("closer", testNow, false)
		assert.ErrorIs(t, err, domain.ErrPeriodNotClosable)
	})

	t.Run("not started cannot close", func(t *testing.T) {
		_, err := newTestPeriod(domain.PeriodNotStarted).Close("closer", testNow, true)
		assert.ErrorIs(t, err, domain.ErrPeriodNotClosable)
	})

	t.Run("hard closed is terminal", func(t *testing.T) {
		_, err := newTestPeriod(domain.PeriodHardClosed).Close("closer", testNow, true)
		assert.ErrorIs(t, err, domain.ErrPeriodNotClosable)
	})
}
