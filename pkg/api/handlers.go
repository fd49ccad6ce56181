package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/thermolab/carnot/pkg/carnot"
	"github.com/thermolab/carnot/pkg/cycle"
	"github.com/thermolab/carnot/pkg/preset"
	"github.com/thermolab/carnot/pkg/util"
)

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// outcome maps a core error to its metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, carnot.ErrInvalidTemperature):
		return "invalid_temperature"
	case errors.Is(err, carnot.ErrInvalidOrdering):
		return "invalid_ordering"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("parameter " + key + " must be a number")
	}
	return v, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("parameter " + key + " must be an integer")
	}
	return v, nil
}

// analyzeFromQuery parses t_hot, t_cold, unit and energy and runs the core.
func (s *Server) analyzeFromQuery(r *http.Request) (carnot.Result, error) {
	th, err := queryFloat(r, "t_hot", 0)
	if err != nil {
		return carnot.Result{}, err
	}
	tc, err := queryFloat(r, "t_cold", 0)
	if err != nil {
		return carnot.Result{}, err
	}
	energy, err := queryFloat(r, "energy", 0)
	if err != nil {
		return carnot.Result{}, err
	}

	unit := carnot.Kelvin
	switch r.URL.Query().Get("unit") {
	case "", "K", "k":
	case "C", "c":
		unit = carnot.Celsius
	default:
		return carnot.Result{}, errors.New("parameter unit must be K or C")
	}

	res, err := carnot.Analyze(carnot.Input{THot: th, TCold: tc, Unit: unit, TotalEnergy: energy})
	s.metrics.ObserveCompute(outcome(err))
	return res, err
}

func (s *Server) efficiencyHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.analyzeFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) sweepHandler(w http.ResponseWriter, r *http.Request) {
	th, err := queryFloat(r, "t_hot", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	coldMin, err := queryFloat(r, "cold_min", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	coldMax, err := queryFloat(r, "cold_max", th)
	if err != nil {
		writeError(w, err)
		return
	}
	steps, err := queryInt(r, "steps", 50)
	if err != nil {
		writeError(w, err)
		return
	}

	pts, err := carnot.Sweep(th, coldMin, coldMax, steps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"t_hot_k": th, "points": pts})
}

func (s *Server) cycleHandler(w http.ResponseWriter, r *http.Request) {
	th, err := queryFloat(r, "t_hot", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	tc, err := queryFloat(r, "t_cold", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	p := cycle.DefaultParams(th, tc)
	if p.Gamma, err = queryFloat(r, "gamma", p.Gamma); err != nil {
		writeError(w, err)
		return
	}
	if p.Moles, err = queryFloat(r, "moles", p.Moles); err != nil {
		writeError(w, err)
		return
	}
	if p.ExpansionRatio, err = queryFloat(r, "ratio", p.ExpansionRatio); err != nil {
		writeError(w, err)
		return
	}
	if p.PointsPerStroke, err = queryInt(r, "points", p.PointsPerStroke); err != nil {
		writeError(w, err)
		return
	}

	c, err := cycle.Generate(p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) presetsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, preset.CompareAll(s.Presets()))
}

// exportHandler streams the computation as a field,value CSV record, one
// metric per line, as a download.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.analyzeFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="carnot_report.csv"`)

	cw := csv.NewWriter(w)
	records := [][]string{
		{"report_id", uuid.NewString()},
		{"t_hot_k", util.FmtFloat(res.THotK)},
		{"t_cold_k", util.FmtFloat(res.TColdK)},
		{"efficiency", util.FmtFloat(res.Efficiency)},
		{"efficiency_pct", util.FmtFloat(res.Percent)},
		{"ratio", util.FmtFloat(res.Ratio)},
	}
	if res.TotalEnergy > 0 {
		records = append(records,
			[]string{"total_energy_j", util.FmtFloat(res.TotalEnergy)},
			[]string{"work_output_j", util.FmtFloat(res.Work)},
			[]string{"waste_heat_j", util.FmtFloat(res.Waste)},
		)
	}
	_ = cw.WriteAll(records)
}
