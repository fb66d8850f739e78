package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/gbell030587-alt/Gbell3587/engine"
	"github.com/gbell030587-alt/Gbell3587/internal/advice"
	"github.com/gbell030587-alt/Gbell3587/internal/config"
	"github.com/gbell030587-alt/Gbell3587/internal/jobs"
	"github.com/gbell030587-alt/Gbell3587/internal/prompt"
	"github.com/gbell030587-alt/Gbell3587/internal/store"
)

// adviceRecord is what gets persisted after a successful coaching call.
type adviceRecord struct {
	Date  string `json:"date"`
	Scope string `json:"scope"` // daily or weekly
	advice.Advice
}

type worker struct {
	store  store.Store
	coach  *advice.Client
	logger zerolog.Logger
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if !cfg.HasAdvice() {
		logger.Warn().Msg("advice service not configured; analysis degrades to no advice available")
	}

	st, closeStore, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer closeStore()

	w := &worker{
		store: st,
		coach: advice.New(cfg.Advice.URL, cfg.Advice.APIKey, advice.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Advice.TimeoutSeconds) * time.Second,
		})),
		logger: logger,
	}

	// Weekly review enqueue, Monday mornings
	sched := cron.New()
	if _, err := sched.AddFunc("0 6 * * MON", func() { w.enqueueWeeklyReviews(cfg.RedisAddr) }); err != nil {
		logger.Fatal().Err(err).Msg("schedule weekly review")
	}
	sched.Start()
	defer sched.Stop()

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"advice":  10,
			"default": 5,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TaskDailyAdvice, w.handleDailyAdvice)
	mux.HandleFunc(jobs.TaskWeeklyReview, w.handleWeeklyReview)

	logger.Info().Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}

func (w *worker) enqueueWeeklyReviews(redisAddr string) {
	ctx := context.Background()
	users, err := w.store.Users(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("list users for weekly review")
		return
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer func() {
		if err := client.Close(); err != nil {
			w.logger.Error().Err(err).Msg("close asynq client")
		}
	}()

	today := engine.FormatDay(time.Now().UTC())
	for _, userID := range users {
		b, err := json.Marshal(jobs.WeeklyReviewPayload{UserID: userID, Date: today})
		if err != nil {
			continue
		}
		if _, err := client.Enqueue(asynq.NewTask(jobs.TaskWeeklyReview, b), asynq.Queue("advice")); err != nil {
			w.logger.Error().Err(err).Str("user", userID).Msg("enqueue weekly review")
		}
	}
	w.logger.Info().Int("users", len(users)).Msg("weekly reviews enqueued")
}

// loadState pulls the records a coaching call needs. A missing profile or
// targets means the user never finished onboarding; that drops the job.
func (w *worker) loadState(ctx context.Context, userID string) (engine.Profile, engine.Targets, engine.WeightLog, engine.CheckInLog, bool, error) {
	var p engine.Profile
	var t engine.Targets
	ok, err := store.LoadInto(ctx, w.store, userID, store.RecordProfile, &p)
	if err != nil {
		return p, t, nil, nil, false, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return p, t, nil, nil, false, nil
	}
	ok, err = store.LoadInto(ctx, w.store, userID, store.RecordTargets, &t)
	if err != nil {
		return p, t, nil, nil, false, fmt.Errorf("load targets: %w", err)
	}
	if !ok {
		return p, t, nil, nil, false, nil
	}

	weights := engine.WeightLog{}
	if _, err := store.LoadInto(ctx, w.store, userID, store.RecordWeights, &weights); err != nil {
		return p, t, nil, nil, false, fmt.Errorf("load weights: %w", err)
	}
	checkins := engine.CheckInLog{}
	if _, err := store.LoadInto(ctx, w.store, userID, store.RecordCheckIns, &checkins); err != nil {
		return p, t, nil, nil, false, fmt.Errorf("load checkins: %w", err)
	}
	return p, t, weights, checkins, true, nil
}

func (w *worker) handleDailyAdvice(ctx context.Context, t *asynq.Task) error {
	var p jobs.DailyAdvicePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.logger.Error().Err(err).Msg("bad daily advice payload")
		return nil // malformed payloads are not retryable
	}

	profile, targets, weights, checkins, ok, err := w.loadState(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !ok {
		w.logger.Warn().Str("user", p.UserID).Msg("daily advice: user not onboarded, dropping")
		return nil
	}
	c, ok := checkins[p.Date]
	if !ok {
		w.logger.Warn().Str("user", p.UserID).Str("date", p.Date).Msg("daily advice: no checkin for date, dropping")
		return nil
	}

	summary := engine.BuildDailySummary(profile, targets, weights, checkins, c, p.Date)
	result, ok := w.coach.Request(ctx, prompt.Daily(summary))
	if !ok {
		// absence, not an error: scores and records are already durable
		w.logger.Info().Str("user", p.UserID).Str("date", p.Date).Msg("no advice available")
		return nil
	}

	if err := w.store.Save(ctx, p.UserID, store.RecordAdvice, adviceRecord{Date: p.Date, Scope: "daily", Advice: result}); err != nil {
		w.logger.Error().Err(err).Str("user", p.UserID).Msg("save advice failed")
	}
	w.logger.Info().Str("user", p.UserID).Str("date", p.Date).Msg("daily advice stored")
	return nil
}

func (w *worker) handleWeeklyReview(ctx context.Context, t *asynq.Task) error {
	var p jobs.WeeklyReviewPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.logger.Error().Err(err).Msg("bad weekly review payload")
		return nil
	}

	profile, targets, weights, checkins, ok, err := w.loadState(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !ok {
		w.logger.Warn().Str("user", p.UserID).Msg("weekly review: user not onboarded, dropping")
		return nil
	}

	review := engine.BuildWeeklyReview(profile, targets, weights, checkins, p.Date)
	result, ok := w.coach.Request(ctx, prompt.Weekly(review))
	if !ok {
		w.logger.Info().Str("user", p.UserID).Msg("no advice available for weekly review")
		return nil
	}

	if err := w.store.Save(ctx, p.UserID, store.RecordAdvice, adviceRecord{Date: p.Date, Scope: "weekly", Advice: result}); err != nil {
		w.logger.Error().Err(err).Str("user", p.UserID).Msg("save advice failed")
	}
	w.logger.Info().Str("user", p.UserID).Bool("plateau", review.Plateau).Msg("weekly review stored")
	return nil
}
