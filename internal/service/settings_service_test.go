package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/testutil"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsServiceWithMocks() (*SettingsService, *testutil.MockSettingsRepository, *testutil.MockEventPublisher, *testutil.MockRecorder) {
	repo := testutil.NewMockSettingsRepository()
	publisher := testutil.NewMockEventPublisher()
	recorder := testutil.NewMockRecorder()

	svc := NewSettingsService(repo)
	svc.SetEventPublisher(publisher)
	svc.SetRecorder(recorder)
	return svc, repo, publisher, recorder
}

func TestSettingsService_LoadEmptyStore(t *testing.T) {
	svc, _, _, _ := newSettingsServiceWithMocks()

	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Get()
	assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
}

func TestSettingsService_LoadExisting(t *testing.T) {
	svc, repo, _, _ := newSettingsServiceWithMocks()
	repo.Settings = testutil.SampleSettings()

	require.NoError(t, svc.Load(context.Background()))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 300, settings.TermMonths())
}

func TestSettingsService_LoadFailure(t *testing.T) {
	svc, repo, _, _ := newSettingsServiceWithMocks()
	repo.LoadFn = func(ctx context.Context) (*domain.MortgageSettings, error) {
		return nil, errors.New("connection refused")
	}

	err := svc.Load(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestSettingsService_SavePublishesCreatedThenUpdated(t *testing.T) {
	svc, repo, publisher, recorder := newSettingsServiceWithMocks()
	ctx := context.Background()

	first := testutil.SampleSettings()
	saved, err := svc.Save(ctx, first)
	require.NoError(t, err)
	assert.True(t, saved.Balance.Equal(first.Balance))

	second := testutil.SampleSettings()
	second.Overpay = decimal.NewFromInt(300)
	_, err = svc.Save(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, []string{"settings.created", "settings.updated"}, publisher.EventTypes())
	assert.Equal(t, 2, repo.SaveCount)
	assert.Equal(t, []error{nil, nil}, recorder.Saves)

	current, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "300", current.Overpay.String())
}

func TestSettingsService_SaveRejectsInvalid(t *testing.T) {
	svc, repo, publisher, recorder := newSettingsServiceWithMocks()

	settings := testutil.SampleSettings()
	settings.Rate = decimal.NewFromInt(120)
	settings.Months = 12

	_, err := svc.Save(context.Background(), settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"rate", "months"}, fields)

	assert.Zero(t, repo.SaveCount)
	assert.Empty(t, publisher.Events)
	require.Len(t, recorder.Saves, 1)
	assert.Error(t, recorder.Saves[0])
}

func TestSettingsService_SaveNil(t *testing.T) {
	svc, _, _, _ := newSettingsServiceWithMocks()

	_, err := svc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SaveFailureKeepsCache(t *testing.T) {
	svc, repo, publisher, _ := newSettingsServiceWithMocks()
	ctx := context.Background()

	_, err := svc.Save(ctx, testutil.SampleSettings())
	require.NoError(t, err)

	repo.SaveFn = func(ctx context.Context, settings *domain.MortgageSettings) error {
		return errors.New("disk full")
	}
	changed := testutil.SampleSettings()
	changed.Years = 10
	_, err = svc.Save(ctx, changed)
	assert.ErrorContains(t, err, "disk full")

	current, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 25, current.Years)
	assert.Len(t, publisher.Events, 1)
}

func TestSettingsService_GetReturnsCopy(t *testing.T) {
	svc, _, _, _ := newSettingsServiceWithMocks()
	_, err := svc.Save(context.Background(), testutil.SampleSettings())
	require.NoError(t, err)

	got, err := svc.Get()
	require.NoError(t, err)
	got.Years = 1

	again, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 25, again.Years)
}

// gatedPublisher holds the first Publish until release is closed
type gatedPublisher struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once

	mu     sync.Mutex
	events []websocket.Event
}

func (p *gatedPublisher) Publish(event websocket.Event) {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.release
	}
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

func TestSettingsService_ConcurrentSavesPublishInStoreOrder(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	publisher := &gatedPublisher{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewSettingsService(repo)
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	first := testutil.SampleSettings()
	first.Balance = decimal.NewFromInt(111)
	second := testutil.SampleSettings()
	second.Balance = decimal.NewFromInt(222)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Save(ctx, first)
		assert.NoError(t, err)
	}()
	<-publisher.entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_, err := svc.Save(ctx, second)
		assert.NoError(t, err)
	}()

	select {
	case <-secondDone:
		t.Fatal("second save finished while the first was still publishing")
	case <-time.After(50 * time.Millisecond):
	}

	close(publisher.release)
	wg.Wait()
	<-secondDone

	require.Len(t, publisher.events, 2)
	assert.Equal(t, "settings.created", publisher.events[0].Type)
	assert.Equal(t, "111", publisher.events[0].Settings.Balance.String())
	assert.Equal(t, "settings.updated", publisher.events[1].Type)
	assert.Equal(t, "222", publisher.events[1].Settings.Balance.String())

	current, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "222", current.Balance.String())
	assert.Equal(t, "222", repo.Settings.Balance.String())
}
