package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pefman/aos-duel/internal/api"
	"github.com/pefman/aos-duel/internal/config"
	"github.com/pefman/aos-duel/internal/game"
	"github.com/pefman/aos-duel/internal/roster"
	"github.com/pefman/aos-duel/internal/sim"
	"github.com/pefman/aos-duel/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

var (
	store    *roster.Store
	upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
)

func main() {
	configDir := flag.String("config", ".", "directory containing aos-duel.cfg.json")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	level, err := zerolog.ParseLevel(config.GetString("logLevel"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	store, err = roster.Load(config.GetString("rosterPath"))
	if err != nil {
		log.Fatal().Err(err).Msg("load roster")
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/units", handleUnits).Methods(http.MethodGet)
	r.HandleFunc("/api/units/{name}", handleUnit).Methods(http.MethodGet)
	r.HandleFunc("/api/simulate", handleSimulate).Methods(http.MethodPost)
	r.HandleFunc("/api/runs", handleRuns).Methods(http.MethodGet)
	r.HandleFunc("/api/runs/daily-best", handleDailyBest).Methods(http.MethodGet)
	r.HandleFunc("/ws/simulate", handleSimulateWS)

	addr := config.GetString("listenAddr")
	log.Info().Str("addr", addr).Str("version", buildVersion).Int("units", len(store.Names())).Msg("aos-duel api starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{
		"status":     "ok",
		"version":    buildVersion,
		"build_time": buildTime,
	})
}

func handleUnits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, store.Records())
}

func handleUnit(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rec, ok := store.Record(name)
	if !ok {
		writeError(w, 404, "unknown unit "+name)
		return
	}
	writeJSON(w, 200, rec)
}

// resolveRequest turns a simulate request into two validated templates,
// clamping the trial count against the configured bounds.
func resolveRequest(req *api.SimRequest) (attacker, defender *game.Unit, err error) {
	pick := func(name string, def *roster.UnitRecord) (*game.Unit, error) {
		if def != nil {
			return def.Unit()
		}
		u, ok := store.Unit(name)
		if !ok {
			return nil, fmt.Errorf("unknown unit %q", name)
		}
		return u, nil
	}
	if attacker, err = pick(req.Attacker, req.AttackerDef); err != nil {
		return nil, nil, err
	}
	if defender, err = pick(req.Defender, req.DefenderDef); err != nil {
		return nil, nil, err
	}
	if req.Params.Trials <= 0 {
		req.Params.Trials = config.GetInt("sim.defaultTrials")
	}
	if max := config.GetInt("sim.maxTrials"); max > 0 && req.Params.Trials > max {
		req.Params.Trials = max
	}
	return attacker, defender, nil
}

func runAndRecord(attacker, defender *game.Unit, p sim.Params) (api.SimResponse, error) {
	result, err := sim.Simulate(attacker, defender, p)
	if err != nil {
		return api.SimResponse{}, err
	}
	run := stats.SaveRun(stats.RunSummary{
		Attacker:           attacker.Name,
		Defender:           defender.Name,
		Trials:             result.Trials,
		InvertedFights:     result.InvertedFights,
		AttackerMeanWounds: result.AttackerMeanWounds,
		DefenderMeanWounds: result.DefenderMeanWounds,
		MeanDamageDealt:    float64(defender.TotalWounds) - result.DefenderMeanWounds,
	})
	log.Info().
		Str("run", run.ID).
		Str("attacker", run.Attacker).
		Str("defender", run.Defender).
		Int("trials", run.Trials).
		Float64("mean_damage", run.MeanDamageDealt).
		Msg("simulation complete")
	return api.SimResponse{Run: run, Result: result}, nil
}

func handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req api.SimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "bad request: "+err.Error())
		return
	}
	attacker, defender, err := resolveRequest(&req)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	resp, err := runAndRecord(attacker, defender, req.Params)
	if err != nil {
		log.Error().Err(err).Msg("simulate failed")
		writeError(w, 400, err.Error())
		return
	}
	writeJSON(w, 200, resp)
}

func handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, 200, stats.RecentRuns(limit))
}

func handleDailyBest(w http.ResponseWriter, r *http.Request) {
	best, ok := stats.DailyBest()
	if !ok {
		writeError(w, 404, "no runs recorded today")
		return
	}
	writeJSON(w, 200, best)
}

// WsMsg is the websocket envelope for streamed simulations.
type WsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type wsProgress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// handleSimulateWS accepts one simulate request over a websocket and
// streams progress frames while the trials run, then the final result.
func handleSimulateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	var req api.SimRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(WsMsg{Type: "error", Data: "bad request: " + err.Error()})
		return
	}
	attacker, defender, err := resolveRequest(&req)
	if err != nil {
		conn.WriteJSON(WsMsg{Type: "error", Data: err.Error()})
		return
	}

	req.Params.ProgressEvery = config.GetInt("sim.progressEvery")
	req.Params.OnProgress = func(done, total int) {
		conn.WriteJSON(WsMsg{Type: "progress", Data: wsProgress{Done: done, Total: total}})
	}

	resp, err := runAndRecord(attacker, defender, req.Params)
	if err != nil {
		conn.WriteJSON(WsMsg{Type: "error", Data: err.Error()})
		return
	}
	conn.WriteJSON(WsMsg{Type: "result", Data: resp})
}
