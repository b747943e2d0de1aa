package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"yt-script-ai-api/internal/domain/entity"
	"yt-script-ai-api/internal/domain/repository"
	"yt-script-ai-api/internal/workflow/port"
	apperrors "yt-script-ai-api/pkg/errors"
	"yt-script-ai-api/pkg/logger"
	"yt-script-ai-api/pkg/metrics"
)

// ScriptGenerator 会话服务依赖的生成能力
type ScriptGenerator interface {
	Generate(ctx context.Context, req entity.ScriptRequest) (*GenerateOutput, error)
}

// SessionService 管理生成会话：idle -> submitting -> success/failed
type SessionService struct {
	repo      repository.SessionRepository
	lock      repository.SubmissionLock
	generator ScriptGenerator
	lockTTL   time.Duration

	now   func() time.Time
	newID func() string

	inflight sync.WaitGroup
}

// NewSessionService 创建会话服务
func NewSessionService(repo repository.SessionRepository, lock repository.SubmissionLock, generator ScriptGenerator, lockTTL time.Duration) *SessionService {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	return &SessionService{
		repo:      repo,
		lock:      lock,
		generator: generator,
		lockTTL:   lockTTL,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Create 创建空闲会话
func (s *SessionService) Create(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(s.newID(), s.now())
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session")
	}
	logger.Info(logger.WithContext(ctx, logger.SessionIDKey, session.ID), "session created")
	return session, nil
}

// Get 获取会话
func (s *SessionService) Get(ctx context.Context, id string) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load session")
	}
	return session, nil
}

// Result 返回成功会话的脚本，其他状态返回 ErrScriptNotReady
func (s *SessionService) Result(ctx context.Context, id string) (*entity.GeneratedScript, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.SessionStatusSucceeded || session.Result == nil {
		return nil, apperrors.ErrScriptNotReady.WithDetail(string(session.Status))
	}
	return session.Result, nil
}

// Submit 校验请求并在后台启动生成
// 校验失败时会话保持原状态；已有进行中的提交时返回 ErrSubmissionInFlight
// 生成与 HTTP 请求生命周期解耦，客户端断开不会中断生成
func (s *SessionService) Submit(ctx context.Context, id string, req entity.ScriptRequest) (*entity.Session, error) {
	ctx = logger.WithContext(ctx, logger.SessionIDKey, id)

	if err := req.Validate(); err != nil {
		metrics.SessionSubmitRejected.WithLabelValues("validation").Inc()
		return nil, err
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	token, ok, err := s.lock.Acquire(ctx, id, s.lockTTL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to acquire submission lock")
	}
	if !ok {
		metrics.SessionSubmitRejected.WithLabelValues("in_flight").Inc()
		return nil, apperrors.ErrSubmissionInFlight
	}

	// 拿到锁后重新读取，避免使用加锁前的旧状态
	session, err = s.Get(ctx, id)
	if err != nil {
		s.release(ctx, id, token)
		return nil, err
	}
	if session.IsSubmitting() {
		// 锁已过期但状态仍为 submitting，说明上一次生成所在进程已退出
		logger.Warn(ctx, "recovering session stuck in submitting state")
		_ = session.Fail(string(port.KindUnknown), entity.MsgUnknownError, s.now())
	}

	if err := session.BeginSubmit(req, s.now()); err != nil {
		s.release(ctx, id, token)
		return nil, apperrors.Wrap(err, apperrors.CodeConflict, "session cannot be submitted")
	}
	if err := s.repo.Save(ctx, session); err != nil {
		s.release(ctx, id, token)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to save session")
	}

	snapshot := *session
	bgCtx := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	metrics.SessionSubmissionsInFlight.Inc()
	go func() {
		defer s.inflight.Done()
		defer metrics.SessionSubmissionsInFlight.Dec()
		defer s.release(bgCtx, id, token)
		s.run(bgCtx, session, req)
	}()

	logger.Info(ctx, "session submitted", "attempt", snapshot.Attempts)
	return &snapshot, nil
}

// run 执行生成并写回结果，所有路径都会落到 success 或 failed
func (s *SessionService) run(ctx context.Context, session *entity.Session, req entity.ScriptRequest) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "session generation panicked", fmt.Errorf("%v", r))
			_ = session.Fail(string(port.KindUnknown), entity.MsgUnknownError, s.now())
			s.save(ctx, session)
		}
	}()

	out, err := s.generator.Generate(ctx, req)
	if err != nil {
		kind := port.KindUnknown
		msg := entity.GenerationFailureMessage(err.Error())
		if ge, ok := AsGenerationError(err); ok {
			kind = ge.Kind
			msg = userMessage(ge)
		}
		_ = session.Fail(string(kind), msg, s.now())
	} else {
		_ = session.Succeed(out.Script, s.now())
	}
	s.save(ctx, session)
}

func (s *SessionService) save(ctx context.Context, session *entity.Session) {
	if err := s.repo.Save(ctx, session); err != nil {
		logger.Error(ctx, "failed to save session result", err, "status", string(session.Status))
	}
}

func (s *SessionService) release(ctx context.Context, id, token string) {
	if err := s.lock.Release(ctx, id, token); err != nil {
		logger.Error(ctx, "failed to release submission lock", err)
	}
}

// Wait 等待后台生成结束，用于优雅停机
func (s *SessionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
