package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/payroll"
)

const (
	JobMonthlyPayroll = "monthly_payroll"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	maxRuns = 50
)

// SystemSession is the actor recorded on scheduled work.
var SystemSession = auth.Session{EmployeeID: "system", Role: auth.RoleAdmin}

type PayrollRunner interface {
	Run(ctx context.Context, session auth.Session, req payroll.RunRequest) (payroll.RunResult, error)
}

type Run struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Details     any        `json:"details,omitempty"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

type Service struct {
	payroll  PayrollRunner
	schedule string
	logger   *zap.Logger
	queue    chan job
	cron     *cron.Cron
	now      func() time.Time

	mu   sync.Mutex
	runs []Run
}

func New(runner PayrollRunner, schedule string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		payroll:  runner,
		schedule: schedule,
		logger:   logger.Named("jobs"),
		queue:    make(chan job, 128),
		cron:     cron.New(cron.WithLocation(time.UTC)),
		now:      time.Now,
	}
}

// Start runs the worker and, when a schedule is configured, the monthly
// payroll trigger. Both stop when ctx is done.
func (s *Service) Start(ctx context.Context) error {
	go s.worker(ctx)
	if s.schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.EnqueuePayroll(s.now()) }); err != nil {
		return fmt.Errorf("schedule monthly payroll: %w", err)
	}
	s.cron.Start()
	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
	s.logger.Info("monthly payroll scheduled", zap.String("schedule", s.schedule))
	return nil
}

// EnqueuePayroll queues a run for the month before at.
func (s *Service) EnqueuePayroll(at time.Time) {
	period := payroll.PeriodOf(at).Previous()
	s.Enqueue(JobMonthlyPayroll, func(ctx context.Context) (any, error) {
		return s.payroll.Run(ctx, SystemSession, payroll.RunRequest{Period: period})
	})
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		s.logger.Warn("job queue full", zap.String("job_type", jobType))
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Runs returns the most recent runs, newest first.
func (s *Service) Runs() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Run, len(s.runs))
	for i, r := range s.runs {
		out[len(s.runs)-1-i] = r
	}
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", zap.String("job_type", j.Type), zap.Error(err))
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	id := s.record(Run{ID: uuid.NewString(), Type: j.Type, Status: StatusRunning, StartedAt: s.now().UTC()})

	details, err := j.Run(ctx)

	completed := s.now().UTC()
	s.update(id, func(r *Run) {
		r.Status = StatusCompleted
		r.Details = details
		r.CompletedAt = &completed
		if err != nil {
			r.Status = StatusFailed
			r.Error = err.Error()
		}
	})
	s.logger.Info("job finished", zap.String("job_type", j.Type), zap.String("run_id", id), zap.Bool("failed", err != nil))
	return details, err
}

func (s *Service) record(r Run) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, r)
	if len(s.runs) > maxRuns {
		s.runs = s.runs[len(s.runs)-maxRuns:]
	}
	return r.ID
}

func (s *Service) update(id string, apply func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == id {
			apply(&s.runs[i])
			return
		}
	}
}
