package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/iqfit/catalog"
	"github.com/domino14/iqfit/config"
	"github.com/domino14/iqfit/results"
	"github.com/domino14/iqfit/runner"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	log.Info().Interface("config", cfg.SanitizedSettings()).Msg("loaded config")

	if cp := cfg.GetString("cpu-profile"); cp != "" {
		f, err := os.Create(cp)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	cat, err := catalog.New()
	if err != nil {
		log.Error().Err(err).Msg("placement compilation failed")
		return 1
	}

	workers := cfg.GetInt("workers")
	r, err := runner.New(cat, workers)
	if err != nil {
		log.Error().Err(err).Msg("bad worker configuration")
		return 1
	}

	if path := cfg.GetString("worker-log"); path != "" {
		wl, err := os.Create(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("could not create worker log")
			return 1
		}
		defer wl.Close()
		r.SetLogStream(wl)
	}

	report, err := r.Run()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		return 1
	}
	elapsed := time.Since(start)

	fmt.Printf("Total solutions: %d\n", report.TotalSolutions)
	fmt.Printf("Elapsed: %v\n", elapsed)

	// An unwritable artifact is a failed run, even though the count is
	// already known and printed.
	exit := 0
	if err := results.WriteFile(cfg.GetString("output"), report.Solutions); err != nil {
		log.Error().Err(err).Msg("could not write solutions file")
		exit = 1
	}

	if path := cfg.GetString("archive"); path != "" {
		store, err := results.OpenStore(path)
		if err != nil {
			log.Error().Err(err).Msg("could not open archive")
			exit = 1
		} else {
			runID, err := store.SaveRun(context.Background(), start, workers,
				report.Solutions, elapsed, report.Digest)
			if err != nil {
				log.Error().Err(err).Msg("could not archive run")
				exit = 1
			} else {
				log.Info().Int64("run-id", runID).Str("path", path).Msg("archived run")
			}
			store.Close()
		}
	}
	return exit
}
