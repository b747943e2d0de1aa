package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/infrastructure/persistence/memory"
	apperrors "yt-script-ai-api/pkg/errors"
)

func newTestSessionService(fake *fakeStructuredGenerator) *SessionService {
	return NewSessionService(
		memory.NewSessionRepository(time.Hour),
		memory.NewSubmissionLock(),
		newTestGenerator(fake),
		time.Minute,
	)
}

func waitStatus(t *testing.T, svc *SessionService, id string, want entity.SessionStatus) *entity.Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Wait(ctx))

	s, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, want, s.Status)
	return s
}

func TestSessionService_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(&fakeStructuredGenerator{text: validScriptJSON})

	s, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusIdle, s.Status)

	submitted, err := svc.Submit(ctx, s.ID, coffeeRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusSubmitting, submitted.Status)

	done := waitStatus(t, svc, s.ID, entity.SessionStatusSucceeded)
	assert.Nil(t, done.Error)
	require.NotNil(t, done.Result)
	assert.Equal(t, sampleScript(), done.Result)

	result, err := svc.Result(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Você já se perguntou?", result.Hook)
}

func TestSessionService_ValidationKeepsState(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStructuredGenerator{text: validScriptJSON}
	svc := newTestSessionService(fake)

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	req := coffeeRequest()
	req.Title = ""
	_, err = svc.Submit(ctx, s.ID, req)
	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusIdle, got.Status)
	assert.Equal(t, 0, fake.calls())
}

func TestSessionService_RejectsWhileInFlight(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStructuredGenerator{text: validScriptJSON, block: make(chan struct{})}
	svc := newTestSessionService(fake)

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, s.ID, coffeeRequest())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, s.ID, coffeeRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSubmissionInFlight))

	_, err = svc.Result(ctx, s.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeScriptNotReady))

	close(fake.block)
	waitStatus(t, svc, s.ID, entity.SessionStatusSucceeded)
	assert.Equal(t, 1, fake.calls())

	// 完成后锁已释放，可以再次提交
	_, err = svc.Submit(ctx, s.ID, coffeeRequest())
	require.NoError(t, err)
	waitStatus(t, svc, s.ID, entity.SessionStatusSucceeded)
}

func TestSessionService_FailureThenRetryClearsError(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStructuredGenerator{text: "{invalid json"}
	svc := newTestSessionService(fake)

	s, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, s.ID, coffeeRequest())
	require.NoError(t, err)
	failed := waitStatus(t, svc, s.ID, entity.SessionStatusFailed)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "parse", failed.Error.Kind)
	assert.Contains(t, failed.Error.Message, "Falha ao gerar o roteiro: ")
	assert.Nil(t, failed.Result)

	fake.mu.Lock()
	fake.text = validScriptJSON
	fake.mu.Unlock()

	_, err = svc.Submit(ctx, s.ID, coffeeRequest())
	require.NoError(t, err)
	ok := waitStatus(t, svc, s.ID, entity.SessionStatusSucceeded)
	assert.Nil(t, ok.Error)
	assert.Equal(t, 2, ok.Attempts)
}

func TestSessionService_SubmitSurvivesClientCancel(t *testing.T) {
	fake := &fakeStructuredGenerator{text: validScriptJSON, block: make(chan struct{})}
	svc := newTestSessionService(fake)

	s, err := svc.Create(context.Background())
	require.NoError(t, err)

	reqCtx, cancel := context.WithCancel(context.Background())
	_, err = svc.Submit(reqCtx, s.ID, coffeeRequest())
	require.NoError(t, err)
	cancel()

	close(fake.block)
	waitStatus(t, svc, s.ID, entity.SessionStatusSucceeded)
}

func TestSessionService_UnknownSession(t *testing.T) {
	svc := newTestSessionService(&fakeStructuredGenerator{text: validScriptJSON})

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSessionNotFound))

	_, err = svc.Submit(context.Background(), "missing", coffeeRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSessionNotFound))
}
