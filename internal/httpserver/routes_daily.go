// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - GET  /daily/today → the day's puzzle and the caller's guesses so far
//   - POST /daily/guess → submit a guess (country code or name)
//   - GET  /daily/share → plain-text share summary
//
// Every request names a day (default: today, UTC) and a mode ("country" or
// "county"). Targets are resolved through the memoizing resolver; guesses are
// persisted per owner/day/mode. The answer is only revealed once finished.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geodle/internal/countries"
	"github.com/robalobadob/geodle/internal/daily"
	"github.com/robalobadob/geodle/internal/game"
	"github.com/robalobadob/geodle/internal/geo"
	"github.com/robalobadob/geodle/internal/scorer"
	"github.com/robalobadob/geodle/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv *Server
	mu  sync.Mutex // serializes load-apply-append of guesses
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s}
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", dd.handleToday)
		r.Post("/guess", dd.handleGuess)
		r.Get("/share", dd.handleShare)
	})
}

// puzzleRef is the day and mode a request is about.
type puzzleRef struct {
	Day  string
	Mode game.Mode
}

// parseRef validates date/mode. An empty date means today. Days more than
// one day ahead of the server clock are refused.
func (d *dailyServer) parseRef(date, mode string) (puzzleRef, string) {
	m, err := game.ParseMode(mode)
	if err != nil {
		return puzzleRef{}, "invalid_mode"
	}
	now := d.srv.now()
	if date == "" {
		return puzzleRef{Day: daily.DateKey(now), Mode: m}, ""
	}
	t, err := daily.Parse(date)
	if err != nil {
		return puzzleRef{}, "invalid_date"
	}
	if daily.DaysBetween(daily.MustParse(daily.DateKey(now)), t) > 1 {
		return puzzleRef{}, "future_date"
	}
	return puzzleRef{Day: date, Mode: m}, ""
}

// session resolves ref's target and rebuilds the owner's session.
func (d *dailyServer) session(ctx context.Context, owner string, ref puzzleRef) (*game.Session, error) {
	target, err := d.srv.targets.Resolve(ref.Day, ref.Mode)
	if err != nil {
		return nil, err
	}
	prior, err := d.srv.guesses.Load(ctx, storeKey(owner, ref))
	if err != nil {
		return nil, err
	}
	return game.NewSession(ref.Day, ref.Mode, target, prior), nil
}

func storeKey(owner string, ref puzzleRef) store.Key {
	return store.Key{Owner: owner, Day: ref.Day, Mode: string(ref.Mode)}
}

// writeSessionError maps session errors to responses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, daily.ErrInvalidDayKey):
		writeError(w, http.StatusBadRequest, "invalid_date")
	default:
		log.Error().Err(err).Msg("daily session")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// -----------------------------------------------------------------------------
// views

type guessView struct {
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Distance  float64       `json:"distance"`
	Percent   int           `json:"percent"`
	Direction geo.Direction `json:"direction,omitempty"`
	Arrow     string        `json:"arrow,omitempty"`
}

func newGuessView(g scorer.Guess) guessView {
	return guessView{
		Code:      g.Code,
		Name:      g.Name,
		Distance:  g.Distance,
		Percent:   g.Percent(),
		Direction: g.Direction,
		Arrow:     scorer.DirectionGlyph(g.Direction),
	}
}

type answerView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type rotationView struct {
	Angle float64 `json:"angle"`
	Scale float64 `json:"scale"`
}

// todayRes is returned by /daily/today.
type todayRes struct {
	Day        string       `json:"day"`
	Mode       game.Mode    `json:"mode"`
	DayIndex   int          `json:"dayIndex"`
	Rotation   rotationView `json:"rotation"`
	Guesses    []guessView  `json:"guesses"`
	State      game.State   `json:"state"`
	Remaining  int          `json:"remaining"`
	MaxGuesses int          `json:"maxGuesses"`
	Answer     *answerView  `json:"answer,omitempty"`
}

func answerOf(sess *game.Session) *answerView {
	if !sess.Finished() {
		return nil
	}
	return &answerView{Code: sess.Target.Code, Name: sess.Target.Name}
}

// -----------------------------------------------------------------------------
// /daily/today

func (d *dailyServer) handleToday(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, bad := d.parseRef(q.Get("date"), q.Get("mode"))
	if bad != "" {
		writeError(w, http.StatusBadRequest, bad)
		return
	}
	owner := d.srv.ownerID(w, r)
	sess, err := d.session(r.Context(), owner, ref)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	dayIndex, _ := daily.DayIndex(daily.MustParse(scorer.SummaryEpoch), ref.Day)
	angle, scale := daily.Rotation(ref.Day)
	views := make([]guessView, 0, len(sess.Guesses))
	for _, g := range sess.Guesses {
		views = append(views, newGuessView(g))
	}
	writeJSON(w, http.StatusOK, todayRes{
		Day:        ref.Day,
		Mode:       ref.Mode,
		DayIndex:   dayIndex,
		Rotation:   rotationView{Angle: angle, Scale: scale},
		Guesses:    views,
		State:      sess.State(),
		Remaining:  sess.Remaining(),
		MaxGuesses: sess.MaxGuesses,
		Answer:     answerOf(sess),
	})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	Date string `json:"date"`
	Mode string `json:"mode"`
	Code string `json:"code"` // country code or name
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Guess     guessView   `json:"guess"`
	State     game.State  `json:"state"`
	Guesses   int         `json:"guesses"`
	Remaining int         `json:"remaining"`
	Answer    *answerView `json:"answer,omitempty"`
}

// handleGuess validates, scores and stores a guess.
//   - Unknown country → 400 unknown_country.
//   - Finished puzzle or repeated country → 409.
//   - The guess that finishes the puzzle records a daily result and, for
//     logged-in users, bumps their stats.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ref, bad := d.parseRef(p.Date, p.Mode)
	if bad != "" {
		writeError(w, http.StatusBadRequest, bad)
		return
	}
	c, err := d.srv.countries.Find(p.Code)
	if errors.Is(err, countries.ErrUnknownCountry) {
		writeError(w, http.StatusBadRequest, "unknown_country")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	owner := d.srv.ownerID(w, r)

	d.mu.Lock()
	sess, err := d.session(r.Context(), owner, ref)
	if err != nil {
		d.mu.Unlock()
		writeSessionError(w, err)
		return
	}
	g, state, err := sess.ApplyGuess(c)
	if err == nil {
		err = d.srv.guesses.Append(r.Context(), storeKey(owner, ref), g)
		if err != nil {
			log.Error().Err(err).Str("owner", owner).Msg("append guess")
			d.mu.Unlock()
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	d.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
		return
	case errors.Is(err, game.ErrDuplicateGuess):
		writeError(w, http.StatusConflict, "duplicate_guess")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d.srv.metrics.Guesses.WithLabelValues(string(ref.Mode), string(state)).Inc()
	if state != game.StatePlaying {
		d.finish(r.Context(), owner, currentUser(r), sess)
	}

	writeJSON(w, http.StatusOK, dailyGuessRes{
		Guess:     newGuessView(g),
		State:     state,
		Guesses:   len(sess.Guesses),
		Remaining: sess.Remaining(),
		Answer:    answerOf(sess),
	})
}

// finish records the result of a finished session (best effort).
func (d *dailyServer) finish(ctx context.Context, owner string, me *authUser, sess *game.Session) {
	won, _ := scorer.Outcome(sess.Guesses)
	best, _ := scorer.BestPercent(sess.Guesses)
	added, err := d.srv.results.RecordResult(ctx, store.Result{
		OwnerID: owner,
		Day:     sess.Day,
		Mode:    string(sess.Mode),
		Code:    sess.Target.Code,
		Won:     won,
		Guesses: len(sess.Guesses),
		Best:    best,
	})
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("record result")
		return
	}
	if !added || me == nil {
		return
	}

	tx, err := d.srv.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin stats tx")
		return
	}
	defer func() { _ = tx.Rollback() }()
	if err := bumpStats(ctx, tx, me.ID, won); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("commit stats")
	}
}

// -----------------------------------------------------------------------------
// /daily/share

// handleShare renders the share text for the caller's guesses.
// Query: date, mode, theme=light|dark, hideImage, rotation.
func (d *dailyServer) handleShare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, bad := d.parseRef(q.Get("date"), q.Get("mode"))
	if bad != "" {
		writeError(w, http.StatusBadRequest, bad)
		return
	}
	opts := scorer.DefaultOptions()
	switch theme := scorer.Theme(q.Get("theme")); theme {
	case "":
	case scorer.ThemeLight, scorer.ThemeDark:
		opts.Theme = theme
	default:
		writeError(w, http.StatusBadRequest, "invalid_theme")
		return
	}
	opts.HideImage, _ = strconv.ParseBool(q.Get("hideImage"))
	opts.Rotation, _ = strconv.ParseBool(q.Get("rotation"))
	opts.County = ref.Mode == game.ModeCounty
	if d.srv.cfg.ShareURL != "" {
		opts.URL = d.srv.cfg.ShareURL
	}

	owner := d.srv.ownerID(w, r)
	guesses, err := d.srv.guesses.Load(r.Context(), storeKey(owner, ref))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	text, err := scorer.Summarize(ref.Day, guesses, opts)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	d.srv.metrics.Shares.WithLabelValues(string(ref.Mode)).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
