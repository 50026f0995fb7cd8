package dashboard

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/interfaces"
	"reactive-dashboard/src/logger"
	"reactive-dashboard/src/models"
	"reactive-dashboard/src/stream"
	"reactive-dashboard/src/utils"
)

// -----------------------------------------------------------------------------
// lockedRand makes a math/rand source safe for the two generator goroutines
// -----------------------------------------------------------------------------

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

// Service produces synthetic price and sentiment streams and their combined view.
type Service struct {
	Logger *logger.Logger
	rnd    interfaces.IRandom

	pricePeriod     time.Duration
	sentimentPeriod time.Duration
	now             func() time.Time
}

type Option func(*Service)

// WithRandom replaces the random source, e.g. with a seeded one in tests
func WithRandom(r interfaces.IRandom) Option {
	return func(s *Service) { s.rnd = r }
}

// WithPeriods overrides the price and sentiment tick periods
func WithPeriods(price, sentiment time.Duration) Option {
	return func(s *Service) {
		s.pricePeriod = price
		s.sentimentPeriod = sentiment
	}
}

// WithClock replaces time.Now for timestamps and market sessions
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		Logger:          log,
		rnd:             newLockedRand(),
		pricePeriod:     utils.PricePeriod,
		sentimentPeriod: utils.SentimentPeriod,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// -----------------------------------------------------------------------------

// NextPrice draws a price uniformly from [100, 200) rounded to cents
func (s *Service) NextPrice() float64 {
	price := utils.PriceMin + s.rnd.Float64()*utils.PriceSpan
	return math.Round(price*100) / 100
}

// NextSentiment picks one of the sentiments uniformly
func (s *Service) NextSentiment() models.Sentiment {
	return models.Sentiments[s.rnd.Intn(len(models.Sentiments))]
}

// -----------------------------------------------------------------------------

// PriceStream ticks a new price every price period
func (s *Service) PriceStream(ctx context.Context) *stream.Stream[float64] {
	log := s.Logger.Named("price")
	e := stream.NewEmitter("price", s.pricePeriod, func(int64) (float64, error) {
		price := s.NextPrice()
		log.Info("Price tick: %.2f", price)
		return price, nil
	})
	return e.Subscribe(ctx, stream.UnboundedPolicy(), stream.Hooks{
		OnError:  func(err error) { log.Error("Error in price stream: %v", err) },
		OnCancel: func() { log.Info("Price stream was cancelled") },
	})
}

// -----------------------------------------------------------------------------

// SentimentStream ticks a new sentiment every sentiment period
func (s *Service) SentimentStream(ctx context.Context) *stream.Stream[models.Sentiment] {
	log := s.Logger.Named("sentiment")
	e := stream.NewEmitter("sentiment", s.sentimentPeriod, func(int64) (models.Sentiment, error) {
		sentiment := s.NextSentiment()
		log.Info("Sentiment tick: %s", sentiment)
		return sentiment, nil
	})
	return e.Subscribe(ctx, stream.UnboundedPolicy(), stream.Hooks{
		OnError:  func(err error) { log.Error("Error in sentiment stream: %v", err) },
		OnCancel: func() { log.Info("Sentiment stream was cancelled") },
	})
}

// -----------------------------------------------------------------------------

// DashboardStream combines the latest price and sentiment for symbol.
// Nothing is emitted until both sources have ticked once.
func (s *Service) DashboardStream(ctx context.Context, symbol string) (*stream.Stream[models.MStockInfo], error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, helpers.NewValidationError("Symbol cannot be blank")
	}

	log := s.Logger.Named("dashboard")
	merged := stream.CombineLatest(ctx, "dashboard:"+symbol,
		s.PriceStream(ctx),
		s.SentimentStream(ctx),
		func(price float64, sentiment models.Sentiment) (models.MStockInfo, error) {
			info, err := models.NewStockInfo(symbol, price, sentiment, s.now())
			if err != nil {
				return info, err
			}
			log.Info("Combined: %s $%.2f [%s]", info.Symbol, info.Price, info.Sentiment)
			return info, nil
		})

	go func() {
		<-merged.Done()
		err := merged.Err()
		if !helpers.IsCancellation(err) {
			log.Error("Error in dashboard stream: %v", err)
		}
		log.Info("Dashboard stream completed with signal: %s", signalName(err))
	}()

	return merged, nil
}

// -----------------------------------------------------------------------------

// MarketSession reports the exchange session for symbol at the current time
func (s *Service) MarketSession(symbol string) utils.MarketSession {
	return utils.GetCalendar(symbol).Session(s.now())
}

// -----------------------------------------------------------------------------

func signalName(err error) string {
	switch {
	case err == nil:
		return "complete"
	case helpers.IsCancellation(err):
		return "cancel"
	default:
		return "error"
	}
}
