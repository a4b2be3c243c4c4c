package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/whatsapp"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeReporter struct {
	mu    sync.Mutex
	days  []time.Time
	err   error
	calls chan struct{}
}

func (f *fakeReporter) GenerateDailyReport(_ context.Context, day time.Time) (models.DailyReport, error) {
	f.mu.Lock()
	f.days = append(f.days, day)
	f.mu.Unlock()
	if f.calls != nil {
		select {
		case f.calls <- struct{}{}:
		default:
		}
	}
	return models.DailyReport{Date: day, SalesCount: 3}, f.err
}

func (f *fakeReporter) FormatDailyReport(r models.DailyReport) string {
	return "ventas 3"
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMessenger) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	return f.NotifyManager(context.Background(), req.Message)
}

func (f *fakeMessenger) NotifyManager(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

var testConfig = config.ReportingConfig{CronSchedule: "0 21 * * *", Timezone: "UTC"}

func TestRunDailyReport(t *testing.T) {
	reporter := &fakeReporter{}
	messenger := &fakeMessenger{}
	s, err := NewScheduler(testConfig, reporter, messenger, nil)
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.RunDailyReport(context.Background()))
	assert.Equal(t, []time.Time{now}, reporter.days)
	assert.Equal(t, []string{"ventas 3"}, messenger.sent)
}

func TestRunDailyReport_Errors(t *testing.T) {
	boom := errors.New("boom")

	s, err := NewScheduler(testConfig, &fakeReporter{err: boom}, &fakeMessenger{}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.RunDailyReport(context.Background()), boom)

	s, err = NewScheduler(testConfig, &fakeReporter{}, &fakeMessenger{err: boom}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.RunDailyReport(context.Background()), boom)

	s, err = NewScheduler(testConfig, &fakeReporter{}, &fakeMessenger{err: whatsapp.ErrNoRecipient}, nil)
	require.NoError(t, err)
	assert.NoError(t, s.RunDailyReport(context.Background()))
}

func TestRunDailyReport_WithoutMessenger(t *testing.T) {
	reporter := &fakeReporter{}
	s, err := NewScheduler(testConfig, reporter, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.RunDailyReport(context.Background()))
	assert.Len(t, reporter.days, 1)
}

func TestStartStop(t *testing.T) {
	reporter := &fakeReporter{calls: make(chan struct{}, 1)}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "@every 1s", Timezone: "UTC"}, reporter, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	select {
	case <-reporter.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("daily report job did not run")
	}
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every day", Timezone: "UTC"}, &fakeReporter{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestNewScheduler_InvalidTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 21 * * *", Timezone: "Nowhere/Land"}, &fakeReporter{}, nil, nil)
	assert.Error(t, err)
}
