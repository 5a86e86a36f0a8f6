package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ChristopherRabotin/spiral"
	kitlog "github.com/go-kit/kit/log"
	"github.com/joho/godotenv"
)

// This code reads the scenario, propagates the transfer and writes the summary and the exports.

var (
	scenario string
	thruster string
	outDir   string
	withTime bool
	cosmo    bool
	verbose  bool
	list     bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", "", "scenario TOML file (defaults to the Earth to Mars transfer)")
	flag.StringVar(&thruster, "thruster", "", "thruster preset overriding the scenario (pps1350, hermes, nstar, nexis, vasimr)")
	flag.StringVar(&outDir, "out", "", "output directory overriding the scenario")
	flag.BoolVar(&withTime, "time", false, "prepend the elapsed time to each CSV row (t,x,y)")
	flag.BoolVar(&cosmo, "cosmo", false, "also export Cosmographia interpolated states")
	flag.BoolVar(&verbose, "verbose", false, "log the propagation status")
	flag.BoolVar(&list, "list", false, "list the thruster presets and exit")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if list {
		for _, name := range []string{"pps1350", "hermes", "nstar", "nexis", "vasimr"} {
			th, _ := spiral.ThrusterFromString(name)
			thrust, isp := th.Thrust()
			fmt.Printf("%-8s T=%g kN\tIsp=%g s\n", name, thrust, isp)
		}
		return
	}

	// A .env file may hold SPIRAL_* overrides.
	if err := godotenv.Load(); err == nil && verbose {
		logger.Log("level", "info", "subsys", "conf", "message", "loaded .env")
	}

	v := spiral.NewViper()
	if scenario != "" {
		scenario = scenarioPath(scenario)
		v.SetConfigFile(scenario)
		if err := v.ReadInConfig(); err != nil {
			logger.Log("level", "critical", "subsys", "conf", "scenario", scenario, "err", err)
			os.Exit(1)
		}
	}
	if thruster != "" {
		v.Set("spacecraft.thruster", thruster)
		v.Set("spacecraft.thrust", 0)
		v.Set("spacecraft.isp", 0)
	}
	if outDir != "" {
		v.Set("export.outputDir", outDir)
	}
	if withTime {
		v.Set("export.time", true)
	}
	if cosmo {
		v.Set("export.cosmo", true)
	}

	scn, err := spiral.ScenarioFromViper(v)
	if err != nil {
		logger.Log("level", "critical", "subsys", "conf", "err", err)
		os.Exit(1)
	}
	if verbose {
		logger.Log("level", "info", "subsys", "conf", "vehicle", scn.Vehicle, "body", scn.Body, "r0(km)", scn.Transfer.InitialRadius, "rf(km)", scn.Transfer.TargetRadius, "step", scn.Transfer.Step, "scheme", scn.Transfer.Scheme)
	}

	var propLogger kitlog.Logger
	if verbose {
		propLogger = logger
	}
	transfer, err := scn.NewTransfer(propLogger)
	if err != nil {
		logger.Log("level", "critical", "subsys", "conf", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rslt, perr := transfer.Propagate(ctx)
	if rslt != nil {
		writeSummary(logger, os.Stdout, rslt, scn.Target)
	}
	if perr != nil {
		logger.Log("level", "critical", "subsys", "astro", "err", perr)
		stop()
		os.Exit(1)
	}
}

// scenarioPath defaults to a TOML scenario when no extension is given; any other format viper reads is kept.
func scenarioPath(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".toml"
	}
	return name
}

func writeSummary(logger kitlog.Logger, w io.Writer, rslt *spiral.Result, target string) {
	if err := rslt.WriteSummary(w, target); err != nil {
		logger.Log("level", "error", "subsys", "export", "summary", "failed", "err", err)
	}
}
