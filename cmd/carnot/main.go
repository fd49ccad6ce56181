package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/thermolab/carnot/pkg/api"
	"github.com/thermolab/carnot/pkg/carnot"
	"github.com/thermolab/carnot/pkg/cycle"
	"github.com/thermolab/carnot/pkg/preset"
	"github.com/thermolab/carnot/pkg/types"
	"github.com/thermolab/carnot/pkg/util"
)

var pretty bool

type opts struct {
	// inputs
	tHot   float64
	tCold  float64
	unit   string
	energy float64

	// derived data
	sweepSteps  int
	cyclePoints int
	gamma       float64
	moles       float64
	expRatio    float64

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string

	presetPath string
}

type serveOpts struct {
	addr       string
	presetPath string
}

// report is the full exportable artifact for one computation.
type report struct {
	ID      string              `json:"report_id"`
	At      time.Time           `json:"time"`
	Result  carnot.Result       `json:"result"`
	Sweep   []carnot.SweepPoint `json:"sweep,omitempty"`
	Cycle   *cycle.Cycle        `json:"cycle,omitempty"`
	Engines []preset.Comparison `json:"engines,omitempty"`
}

func main() {
	var o opts
	var so serveOpts

	root := &cobra.Command{
		Use:   "carnot",
		Short: "Carnot efficiency calculator",
		Long: `The carnot tool computes the theoretical maximum efficiency of a heat
engine operating between a hot and a cold reservoir (η = 1 - Tc/Th),
derives the work/waste-heat split for a given heat input, and generates
the idealized pressure-volume cycle geometry for plotting.

Examples:
  carnot --t-hot 873 --t-cold 298
  carnot --t-hot 600 --t-cold 25 --unit C --energy 1000
  carnot --t-hot 873 --t-cold 298 --csv report.csv --html report.html
  carnot serve --addr :8080 --presets engines.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(o)
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "format output as a table instead of CSV-like lines")
	root.Flags().Float64Var(&o.tHot, "t-hot", 873, "hot reservoir temperature")
	root.Flags().Float64Var(&o.tCold, "t-cold", 298, "cold reservoir temperature")
	root.Flags().StringVarP(&o.unit, "unit", "u", "K", "temperature unit for --t-hot/--t-cold (K or C)")
	root.Flags().Float64VarP(&o.energy, "energy", "e", 0, "total heat input in Joules for the work/waste split (0 = skip)")

	root.Flags().IntVar(&o.sweepSteps, "sweep", 0, "sample the efficiency curve at N cold temperatures (0 = skip)")
	root.Flags().IntVar(&o.cyclePoints, "cycle-points", 0, "sample the P-V cycle with N points per stroke (0 = skip)")
	root.Flags().Float64Var(&o.gamma, "gamma", 1.4, "heat capacity ratio of the working gas")
	root.Flags().Float64Var(&o.moles, "moles", 1, "amount of working gas in mol")
	root.Flags().Float64Var(&o.expRatio, "expansion-ratio", 2, "isothermal expansion ratio V2/V1")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write the report as field,value CSV")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write the full report as JSON")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write the report as an HTML page")
	root.Flags().StringVar(&o.presetPath, "presets", "", "YAML file overriding the built-in engine presets")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as an HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), so)
		},
	}
	serve.Flags().StringVar(&so.addr, "addr", ":8080", "listen address")
	serve.Flags().StringVar(&so.presetPath, "presets", "", "YAML engine preset file, hot-reloaded on change")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(o opts) error {
	unit := carnot.Kelvin
	switch o.unit {
	case "K", "k":
	case "C", "c":
		unit = carnot.Celsius
	default:
		return fmt.Errorf("unit must be K or C, got %q", o.unit)
	}
	if o.energy < 0 {
		return fmt.Errorf("energy must be >= 0")
	}

	res, err := carnot.Analyze(carnot.Input{
		THot: o.tHot, TCold: o.tCold, Unit: unit, TotalEnergy: o.energy,
	})
	if err != nil {
		return err
	}

	rep := report{ID: uuid.NewString(), At: time.Now(), Result: res}

	if o.sweepSteps > 0 {
		rep.Sweep, err = carnot.Sweep(res.THotK, 0, res.THotK, o.sweepSteps)
		if err != nil {
			return fmt.Errorf("sweep: %w", err)
		}
	}
	if o.cyclePoints > 0 {
		p := cycle.DefaultParams(res.THotK, res.TColdK)
		p.PointsPerStroke = o.cyclePoints
		p.Gamma = o.gamma
		p.Moles = o.moles
		p.ExpansionRatio = o.expRatio
		c, err := cycle.Generate(p)
		if err != nil {
			return fmt.Errorf("cycle: %w", err)
		}
		rep.Cycle = &c
	}

	presets, err := preset.Load(o.presetPath)
	if err != nil {
		return err
	}
	rep.Engines = preset.CompareAll(presets)

	if pretty {
		printTable(rep)
	} else {
		printCsvLike(rep)
	}

	if o.csvPath != "" {
		if err := writeCSVReport(o.csvPath, rep); err != nil {
			return fmt.Errorf("csv report: %w", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSONReport(o.jsonPath, rep); err != nil {
			return fmt.Errorf("json report: %w", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeHTMLReport(o.htmlPath, rep); err != nil {
			return fmt.Errorf("html report: %w", err)
		}
	}
	return nil
}

func runServe(ctx context.Context, so serveOpts) error {
	presets, err := preset.Load(so.presetPath)
	if err != nil {
		return err
	}

	srv := api.NewServer(presets)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if so.presetPath != "" {
		go func() {
			if err := preset.Watch(ctx, so.presetPath, srv.SetPresets); err != nil {
				slog.Error("preset watcher stopped", "err", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:    so.addr,
		Handler: handlers.LoggingHandler(os.Stdout, srv.Router()),
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()
	slog.Info("carnot API listening", "addr", so.addr)

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func printTable(rep report) {
	res := rep.Result
	fmt.Printf(_console, time.Now().Format("2006-01-02 15:04:05"))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintln(tw, "------\t-----")
	fmt.Fprintf(tw, "T_hot\t%.2f K (%.2f °C)\n", res.THotK, carnot.KelvinToCelsius(res.THotK))
	fmt.Fprintf(tw, "T_cold\t%.2f K (%.2f °C)\n", res.TColdK, carnot.KelvinToCelsius(res.TColdK))
	fmt.Fprintf(tw, "Carnot efficiency\t%.2f%%\n", res.Percent)
	fmt.Fprintf(tw, "T_cold/T_hot\t%.4f\n", res.Ratio)
	if res.TotalEnergy > 0 {
		fmt.Fprintf(tw, "Heat input\t%s\n", types.Energy(res.TotalEnergy).Humanized())
		fmt.Fprintf(tw, "Work output\t%s\n", types.Energy(res.Work).Humanized())
		fmt.Fprintf(tw, "Waste heat\t%s\n", types.Energy(res.Waste).Humanized())
	}
	if rep.Cycle != nil {
		fmt.Fprintf(tw, "Cycle net work\t%s\n", types.Energy(rep.Cycle.NetWork()).Humanized())
		fmt.Fprintf(tw, "Cycle heat in\t%s\n", types.Energy(rep.Cycle.HeatIn()).Humanized())
	}
	tw.Flush()

	if len(rep.Engines) > 0 {
		fmt.Println()
		fmt.Println("Real-world engines:")
		etw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(etw, "ENGINE\tCARNOT\tACTUAL\tGAP")
		for _, e := range rep.Engines {
			fmt.Fprintf(etw, "%s\t%.1f%%\t%.1f%%\t%.1f%%\n",
				e.Name, e.CarnotEfficiency*100, e.ActualEfficiency*100, e.Gap*100)
		}
		etw.Flush()
	}
}

func printCsvLike(rep report) {
	res := rep.Result
	fmt.Println("# t_hot_k, t_cold_k, efficiency, efficiency_pct, ratio, work_j, waste_j")
	fmt.Printf("%.4f, %.4f, %.6f, %.4f, %.6f, %.4f, %.4f\n",
		res.THotK, res.TColdK, res.Efficiency, res.Percent, res.Ratio, res.Work, res.Waste)
}

// writeCSVReport emits the field,value record, one metric per line.
func writeCSVReport(path string, rep report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res := rep.Result
	cw := csv.NewWriter(f)
	records := [][]string{
		{"report_id", rep.ID},
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
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeJSONReport(path string, rep report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func writeHTMLReport(path string, rep report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	view := struct {
		report
		GaugePct float64
	}{report: rep, GaugePct: util.Clamp01(rep.Result.Efficiency) * 100}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"mulpct": func(v float64) float64 { return v * 100 },
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Carnot Efficiency Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.gauge{background:#eee;border-radius:6px;height:18px;width:100%;max-width:480px}
.gauge>div{background:#4a90d9;border-radius:6px;height:18px}
</style>

<h1>Carnot Efficiency Report</h1>

<p class="small">
Report {{.ID}} &nbsp;|&nbsp; {{.At.Format "2006-01-02 15:04:05"}}
</p>

<h2>Summary</h2>
<ul>
<li>Hot reservoir: {{printf "%.2f" .Result.THotK}} K</li>
<li>Cold reservoir: {{printf "%.2f" .Result.TColdK}} K</li>
<li>Carnot efficiency: {{printf "%.2f" .Result.Percent}}%</li>
<li>T_cold/T_hot: {{printf "%.4f" .Result.Ratio}}</li>
{{if gt .Result.TotalEnergy 0.0}}
<li>Work output: {{printf "%.2f" .Result.Work}} J</li>
<li>Waste heat: {{printf "%.2f" .Result.Waste}} J</li>
{{end}}
</ul>

<div class="gauge"><div style="width:{{printf "%.1f" .GaugePct}}%"></div></div>

{{if .Engines}}
<h2>Real-world engines</h2>
<table>
<thead><tr><th>engine</th><th>Carnot</th><th>actual</th><th>gap</th></tr></thead>
<tbody>
{{range .Engines}}
<tr>
<td style="text-align:left">{{.Name}}</td>
<td>{{printf "%.1f" (mulpct .CarnotEfficiency)}}%</td>
<td>{{printf "%.1f" (mulpct .ActualEfficiency)}}%</td>
<td>{{printf "%.1f" (mulpct .Gap)}}%</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}

{{if .Sweep}}
<h2>Efficiency curve</h2>
<table>
<thead><tr><th>T_cold (K)</th><th>efficiency</th></tr></thead>
<tbody>
{{range .Sweep}}
<tr><td style="text-align:left">{{printf "%.2f" .TColdK}}</td><td>{{printf "%.4f" .Efficiency}}</td></tr>
{{end}}
</tbody>
</table>
{{end}}
</html>`))

const _console = `Carnot - Heat Engine Efficiency Calculator

Report as of %s:

`
