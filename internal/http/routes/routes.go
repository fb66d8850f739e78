package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/gbell030587-alt/Gbell3587/engine"
	appmw "github.com/gbell030587-alt/Gbell3587/internal/http/middleware"
	"github.com/gbell030587-alt/Gbell3587/internal/jobs"
	"github.com/gbell030587-alt/Gbell3587/internal/store"
)

type Server struct {
	Router    *chi.Mux
	Sess      *scs.SessionManager
	Store     store.Store
	Log       zerolog.Logger
	RedisAddr string // empty disables background enqueue
}

type ServerOptions struct {
	Sess      *scs.SessionManager
	Store     store.Store
	Log       zerolog.Logger
	RedisAddr string
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Sess: opts.Sess, Store: opts.Store, Log: opts.Log, RedisAddr: opts.RedisAddr}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/onboard", s.handleOnboard)

	r.Group(func(pr chi.Router) {
		pr.Use(s.sessionToContext)
		pr.Use(appmw.RequireUser)
		pr.Post("/checkins", s.handleCheckIn)
		pr.Get("/summary", s.handleSummary)
		pr.Post("/weights", s.handleWeight)
		pr.Get("/trend", s.handleTrend)
		pr.Get("/program", s.handleProgram)
		pr.Post("/workouts", s.handleWorkout)
		pr.Post("/review", s.handleReview)
		pr.Post("/recalibrate", s.handleRecalibrate)
		pr.Get("/advice", s.handleAdvice)
	})

	return s
}

func (s *Server) sessionToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := s.Sess.GetString(r.Context(), "user_id"); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), appmw.UserIDKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) userID(r *http.Request) string {
	id, _ := r.Context().Value(appmw.UserIDKey).(string)
	return id
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error().Err(err).Msg("encode response failed")
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close() //nolint:errcheck
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// save logs and swallows store failures: the computed response is already
// valid and the in-memory state stays authoritative for the session.
func (s *Server) save(ctx context.Context, userID, name string, record any) {
	if err := s.Store.Save(ctx, userID, name, record); err != nil {
		s.Log.Error().Err(err).Str("record", name).Msg("save failed")
	}
}

// enqueue issues a background task after the triggering state is persisted.
// A failed enqueue never affects the response.
func (s *Server) enqueue(task string, payload any) {
	if s.RedisAddr == "" {
		return
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: s.RedisAddr})
	defer func() {
		if err := client.Close(); err != nil {
			s.Log.Error().Err(err).Msg("close asynq client failed")
		}
	}()

	b, err := json.Marshal(payload)
	if err != nil {
		s.Log.Error().Err(err).Str("task", task).Msg("marshal task payload failed")
		return
	}
	info, err := client.Enqueue(asynq.NewTask(task, b),
		asynq.Queue("advice"),
		asynq.MaxRetry(0),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		s.Log.Error().Err(err).Str("task", task).Msg("enqueue failed")
		return
	}
	s.Log.Info().Str("task", task).Str("id", info.ID).Msg("task enqueued")
}

func validDay(s string) bool {
	_, err := engine.ParseDay(s)
	return err == nil
}

func plausibleWeight(w float64) bool {
	return w >= 50 && w <= 500
}

// ---- onboarding

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var p engine.Profile
	if err := readJSON(r, &p); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid profile json")
		return
	}

	switch {
	case p.Sex != engine.Male && p.Sex != engine.Female:
		s.fail(w, http.StatusBadRequest, "sex must be male or female")
		return
	case p.Age <= 0 || p.Age > 120:
		s.fail(w, http.StatusBadRequest, "age out of range")
		return
	case p.HeightCm <= 0:
		s.fail(w, http.StatusBadRequest, "height required")
		return
	case !plausibleWeight(p.StartWeightLb) || !plausibleWeight(p.GoalWeightLb):
		s.fail(w, http.StatusBadRequest, "weight must be between 50 and 500 lbs")
		return
	case p.GoalWeeks < 1:
		s.fail(w, http.StatusBadRequest, "goal duration required")
		return
	case p.TrainingDays < 2 || p.TrainingDays > 6:
		s.fail(w, http.StatusBadRequest, "training frequency must be 2-6 days")
		return
	}
	if p.Created == "" {
		p.Created = engine.FormatDay(time.Now().UTC())
	} else if !validDay(p.Created) {
		s.fail(w, http.StatusBadRequest, "created must be YYYY-MM-DD")
		return
	}

	userID := uuid.NewString()
	targets := engine.DeriveTargets(p)
	program := engine.GenerateProgram(p.TrainingDays, p.Experience, p.Equipment)

	weights := engine.WeightLog{}
	weights.Put(p.Created, p.StartWeightLb)

	ctx := r.Context()
	s.save(ctx, userID, store.RecordProfile, p)
	s.save(ctx, userID, store.RecordTargets, targets)
	s.save(ctx, userID, store.RecordProgram, program)
	s.save(ctx, userID, store.RecordWeights, weights)
	s.save(ctx, userID, store.RecordCheckIns, engine.CheckInLog{})

	s.Sess.Put(ctx, "user_id", userID)

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"user_id":           userID,
		"targets":           targets,
		"program":           program,
		"macros_degenerate": engine.MacrosDegenerate(targets),
	})
}

// ---- daily flow

func (s *Server) loadCore(ctx context.Context, userID string) (engine.Profile, engine.Targets, bool) {
	var p engine.Profile
	var t engine.Targets
	ok, err := store.LoadInto(ctx, s.Store, userID, store.RecordProfile, &p)
	if err != nil || !ok {
		if err != nil {
			s.Log.Error().Err(err).Msg("load profile failed")
		}
		return p, t, false
	}
	ok, err = store.LoadInto(ctx, s.Store, userID, store.RecordTargets, &t)
	if err != nil || !ok {
		if err != nil {
			s.Log.Error().Err(err).Msg("load targets failed")
		}
		return p, t, false
	}
	return p, t, true
}

func (s *Server) loadWeights(ctx context.Context, userID string) engine.WeightLog {
	weights := engine.WeightLog{}
	if _, err := store.LoadInto(ctx, s.Store, userID, store.RecordWeights, &weights); err != nil {
		s.Log.Error().Err(err).Msg("load weights failed")
	}
	return weights
}

func (s *Server) loadCheckIns(ctx context.Context, userID string) engine.CheckInLog {
	checkins := engine.CheckInLog{}
	if _, err := store.LoadInto(ctx, s.Store, userID, store.RecordCheckIns, &checkins); err != nil {
		s.Log.Error().Err(err).Msg("load checkins failed")
	}
	return checkins
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var c engine.CheckIn
	if err := readJSON(r, &c); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid checkin json")
		return
	}

	switch {
	case !validDay(c.Date):
		s.fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	case c.Calories < 0 || c.Protein < 0 || c.Carbs < 0 || c.Fat < 0 || c.Fiber < 0:
		s.fail(w, http.StatusBadRequest, "macros must be non-negative")
		return
	case c.Steps < 0 || c.SleepHours < 0:
		s.fail(w, http.StatusBadRequest, "steps and sleep must be non-negative")
		return
	case c.Stress < 0 || c.Stress > 10 || c.Energy < 0 || c.Energy > 10:
		s.fail(w, http.StatusBadRequest, "stress and energy must be 1-10")
		return
	case c.WeightLb != 0 && !plausibleWeight(c.WeightLb):
		s.fail(w, http.StatusBadRequest, "weight must be between 50 and 500 lbs")
		return
	}

	ctx := r.Context()
	userID := s.userID(r)
	profile, targets, ok := s.loadCore(ctx, userID)
	if !ok {
		s.fail(w, http.StatusNotFound, "profile not found")
		return
	}

	checkins := s.loadCheckIns(ctx, userID)
	weights := s.loadWeights(ctx, userID)

	checkins.Put(c)
	if c.WeightLb > 0 {
		weights.Put(c.Date, c.WeightLb)
	}

	// persist first; the advice request must never gate scoring or saves
	s.save(ctx, userID, store.RecordCheckIns, checkins)
	if c.WeightLb > 0 {
		s.save(ctx, userID, store.RecordWeights, weights)
	}

	summary := engine.BuildDailySummary(profile, targets, weights, checkins, c, c.Date)
	s.enqueue(jobs.TaskDailyAdvice, jobs.DailyAdvicePayload{UserID: userID, Date: c.Date})

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !validDay(date) {
		s.fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	userID := s.userID(r)
	profile, targets, ok := s.loadCore(ctx, userID)
	if !ok {
		s.fail(w, http.StatusNotFound, "profile not found")
		return
	}

	checkins := s.loadCheckIns(ctx, userID)
	c, ok := checkins[date]
	if !ok {
		s.fail(w, http.StatusNotFound, "no checkin for date")
		return
	}

	weights := s.loadWeights(ctx, userID)
	s.writeJSON(w, http.StatusOK, engine.BuildDailySummary(profile, targets, weights, checkins, c, date))
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	var in engine.WeightEntry
	if err := readJSON(r, &in); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid weight json")
		return
	}
	if !validDay(in.Date) {
		s.fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if !plausibleWeight(in.Weight) {
		s.fail(w, http.StatusBadRequest, "weight must be between 50 and 500 lbs")
		return
	}

	ctx := r.Context()
	userID := s.userID(r)
	weights := s.loadWeights(ctx, userID)
	weights.Put(in.Date, in.Weight)
	s.save(ctx, userID, store.RecordWeights, weights)

	entries := weights.Entries()
	rate, rateOK := engine.WeeklyLossRate(entries)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"points":         engine.RollingAverage(entries, engine.DefaultTrendWindow),
		"weekly_rate":    rate,
		"weekly_rate_ok": rateOK,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := s.userID(r)
	profile, targets, ok := s.loadCore(ctx, userID)
	if !ok {
		s.fail(w, http.StatusNotFound, "profile not found")
		return
	}

	weights := s.loadWeights(ctx, userID)
	checkins := s.loadCheckIns(ctx, userID)
	entries := weights.Entries()

	recent := checkins.Entries()
	if len(recent) > 14 {
		recent = recent[len(recent)-14:]
	}
	adherence := engine.AverageAdherence(recent, targets, profile)

	rate, rateOK := engine.WeeklyLossRate(entries)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"points":         engine.RollingAverage(entries, engine.DefaultTrendWindow),
		"weekly_rate":    rate,
		"weekly_rate_ok": rateOK,
		"plateau":        engine.DetectPlateau(entries, adherence),
	})
}

// ---- training

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	var program engine.Program
	ok, err := store.LoadInto(r.Context(), s.Store, s.userID(r), store.RecordProgram, &program)
	if err != nil {
		s.Log.Error().Err(err).Msg("load program failed")
	}
	if !ok {
		s.fail(w, http.StatusNotFound, "program not found")
		return
	}
	s.writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleWorkout(w http.ResponseWriter, r *http.Request) {
	var log engine.WorkoutLog
	if err := readJSON(r, &log); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid workout json")
		return
	}
	if !validDay(log.Date) {
		s.fail(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	userID := s.userID(r)

	var program engine.Program
	ok, err := store.LoadInto(ctx, s.Store, userID, store.RecordProgram, &program)
	if err != nil {
		s.Log.Error().Err(err).Msg("load program failed")
	}
	if !ok {
		s.fail(w, http.StatusNotFound, "program not found")
		return
	}
	if log.Session < 0 || log.Session >= len(program.Sessions) {
		s.fail(w, http.StatusBadRequest, "session index out of range")
		return
	}

	var history []engine.WorkoutLog
	if _, err := store.LoadInto(ctx, s.Store, userID, store.RecordWorkouts, &history); err != nil {
		s.Log.Error().Err(err).Msg("load workouts failed")
	}
	history = append(history, log) // append-only

	program = engine.ApplyWorkout(program, log)
	s.save(ctx, userID, store.RecordWorkouts, history)
	s.save(ctx, userID, store.RecordProgram, program)

	s.writeJSON(w, http.StatusOK, program)
}

// ---- recalibration

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := s.userID(r)
	profile, targets, ok := s.loadCore(ctx, userID)
	if !ok {
		s.fail(w, http.StatusNotFound, "profile not found")
		return
	}

	weights := s.loadWeights(ctx, userID)
	checkins := s.loadCheckIns(ctx, userID)
	today := engine.FormatDay(time.Now().UTC())

	review := engine.BuildWeeklyReview(profile, targets, weights, checkins, today)
	s.enqueue(jobs.TaskWeeklyReview, jobs.WeeklyReviewPayload{UserID: userID, Date: today})

	s.writeJSON(w, http.StatusOK, review)
}

type recalibrateRequest struct {
	Action     engine.AdjustAction `json:"action"`
	AmountKcal int                 `json:"amount_kcal"`
}

func (s *Server) handleRecalibrate(w http.ResponseWriter, r *http.Request) {
	var req recalibrateRequest
	if err := readJSON(r, &req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid recalibrate json")
		return
	}
	switch req.Action {
	case engine.AdjustIncrease, engine.AdjustDecrease, engine.AdjustMaintain:
	default:
		s.fail(w, http.StatusBadRequest, "action must be increase, decrease or maintain")
		return
	}
	if req.AmountKcal < 0 {
		s.fail(w, http.StatusBadRequest, "amount must be non-negative")
		return
	}

	ctx := r.Context()
	userID := s.userID(r)

	var targets engine.Targets
	ok, err := store.LoadInto(ctx, s.Store, userID, store.RecordTargets, &targets)
	if err != nil {
		s.Log.Error().Err(err).Msg("load targets failed")
	}
	if !ok {
		s.fail(w, http.StatusNotFound, "targets not found")
		return
	}

	updated := engine.ApplyCalorieAdjustment(targets, req.Action, req.AmountKcal)
	if updated != targets {
		s.save(ctx, userID, store.RecordTargets, updated)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"targets":           updated,
		"macros_degenerate": engine.MacrosDegenerate(updated),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	raw, ok, err := s.Store.Load(r.Context(), s.userID(r), store.RecordAdvice)
	if err != nil {
		s.Log.Error().Err(err).Msg("load advice failed")
	}
	if !ok {
		s.fail(w, http.StatusNotFound, "no advice available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}
