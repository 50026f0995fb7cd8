package backpressure

import (
	"context"
	"fmt"
	"time"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/interfaces"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/stream"
	"reactive-dashboard/src/utils"
)

// Mode names one of the demonstration streams.
const (
	ModeOverflow = "overflow"
	ModeDrop     = "drop"
	ModeBuffer   = "buffer"
)

// Modes lists the supported modes in route order
var Modes = []string{ModeOverflow, ModeDrop, ModeBuffer}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

// Service builds one fast stream per subscription and applies the mode's policy to it.
type Service struct {
	Logger *logger.Logger
	stats  interfaces.IStatsSink

	period         time.Duration
	consumerDelay  time.Duration
	bufferCapacity int
}

type Option func(*Service)

// WithTimings overrides the production period and consumer delay
func WithTimings(period, consumerDelay time.Duration) Option {
	return func(s *Service) {
		s.period = period
		s.consumerDelay = consumerDelay
	}
}

// WithBufferCapacity overrides the bounded buffer size
func WithBufferCapacity(capacity int) Option {
	return func(s *Service) { s.bufferCapacity = capacity }
}

func NewService(stats interfaces.IStatsSink, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		Logger:         log,
		stats:          stats,
		period:         utils.BackpressurePeriod,
		consumerDelay:  utils.ConsumerDelay,
		bufferCapacity: utils.BufferCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// -----------------------------------------------------------------------------

func (s *Service) emitter(mode string) *stream.Emitter[string] {
	return stream.NewEmitter(mode, s.period, func(tick int64) (string, error) {
		return fmt.Sprintf("Event %d (%s)", tick, mode), nil
	})
}

// -----------------------------------------------------------------------------

// Open subscribes to mode. The returned delay is the simulated per-value
// processing time the consumer must apply on its own goroutine.
func (s *Service) Open(ctx context.Context, mode string) (*stream.Stream[string], time.Duration, error) {
	switch mode {
	case ModeOverflow:
		return s.Overflow(ctx), 0, nil
	case ModeDrop:
		return s.Drop(ctx), s.consumerDelay, nil
	case ModeBuffer:
		return s.Buffer(ctx), s.consumerDelay, nil
	default:
		return nil, 0, helpers.NewValidationError(fmt.Sprintf("unknown backpressure mode %q", mode))
	}
}

// -----------------------------------------------------------------------------

// Overflow queues every value for the consumer
func (s *Service) Overflow(ctx context.Context) *stream.Stream[string] {
	log := s.Logger.Named(ModeOverflow)
	return s.emitter(ModeOverflow).Subscribe(ctx, stream.UnboundedPolicy(), stream.Hooks{
		OnProduce: func(int64) {
			if total := s.stats.IncOverflow(); total%utils.OverflowLogEvery == 0 {
				log.Info("Produced event #%d (overflow endpoint)", total)
			}
		},
		OnCancel: func() {
			log.Info("Overflow stream cancelled")
		},
		OnError: func(err error) {
			log.Error("Error in overflow stream: %v", err)
		},
	})
}

// -----------------------------------------------------------------------------

// Drop discards values the consumer is not ready for
func (s *Service) Drop(ctx context.Context) *stream.Stream[string] {
	log := s.Logger.Named(ModeDrop)
	return s.emitter(ModeDrop).Subscribe(ctx, stream.DropPolicy(), stream.Hooks{
		OnDrop: func(int64) {
			if total := s.stats.IncDropped(); total%utils.DropLogEvery == 0 {
				log.Warning("Dropped %d events so far", total)
			}
		},
		OnCancel: func() {
			log.Info("Drop stream cancelled. Total dropped: %d", s.stats.Snapshot().Dropped)
		},
		OnError: func(err error) {
			log.Error("Error in drop stream: %v", err)
		},
	})
}

// -----------------------------------------------------------------------------

// Buffer queues up to the buffer capacity and fails the stream once it is full
func (s *Service) Buffer(ctx context.Context) *stream.Stream[string] {
	log := s.Logger.Named(ModeBuffer)
	return s.emitter(ModeBuffer).Subscribe(ctx, stream.BufferPolicy(s.bufferCapacity), stream.Hooks{
		OnOverflow: func(int) {
			log.Info("Buffer overflow: %d items buffered", s.stats.IncBufferOverflow())
		},
		OnError: func(err error) {
			log.Error("Buffer overflow error: %v", err)
			log.Error("Total buffered before error: %d", s.stats.Snapshot().BufferOverflows)
		},
		OnCancel: func() {
			log.Info("Buffer stream cancelled")
		},
	})
}
