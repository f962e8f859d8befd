package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"
)

type dueDispatcher interface {
	DispatchDue(ctx context.Context) (int, error)
}

// Sweeper periodically publishes reminders whose instant has come.
type Sweeper struct {
	dispatcher dueDispatcher
	spec       string
	parser     cron.Parser
}

// NewSweeper creates a sweeper running on the given cron spec. Descriptors
// such as "@every 15s" and specs with an optional seconds field are accepted.
func NewSweeper(d dueDispatcher, spec string) *Sweeper {
	return &Sweeper{
		dispatcher: d,
		spec:       spec,
		parser: cron.NewParser(
			cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		),
	}
}

// Run sweeps once right away, then on every tick of the spec until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	schedule, err := s.parser.Parse(s.spec)
	if err != nil {
		return fmt.Errorf("parse sweep spec %q: %w", s.spec, err)
	}

	c := cron.New(
		cron.WithParser(s.parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(schedule, cron.FuncJob(func() { s.sweep(ctx) }))

	s.sweep(ctx)
	c.Start()
	zlog.Logger.Info().Str("spec", s.spec).Msg("due reminder sweeper started")

	<-ctx.Done()
	<-c.Stop().Done()
	zlog.Logger.Info().Msg("due reminder sweeper stopped")

	return nil
}

func (s *Sweeper) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n, err := s.dispatcher.DispatchDue(ctx)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to dispatch due reminders")
		return
	}

	if n > 0 {
		zlog.Logger.Info().Int("queued", n).Msg("due reminders published")
	}
}
