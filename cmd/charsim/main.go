package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/charsim/event"
	"github.com/oomph-ac/charsim/recording"
	"github.com/oomph-ac/charsim/scenario"
	"github.com/oomph-ac/charsim/settings"
	"github.com/oomph-ac/charsim/world"
	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

var (
	settingsPath = flag.String("settings", "settings.toml", "path of the settings file, created with defaults if missing")
	scenarioName = flag.String("scenario", "arena", "name of the scenario to run")
	scenarioFile = flag.String("scenario-file", "", "path of a scenario file, overrides -scenario")
	ticks        = flag.Int("ticks", 0, "number of ticks to run, 0 runs the scenario's own length")
	recordPath   = flag.String("record", "", "write the run's recording to this path")
	verifyPath   = flag.String("verify", "", "compare the run against the recording at this path")
	realtime     = flag.Bool("realtime", false, "pace ticks at the configured tick rate")
	list         = flag.Bool("list", false, "list the embedded scenarios and exit")
)

// This program runs a scenario headless and reports what every character did.
func main() {
	flag.Parse()
	if *list {
		fmt.Println(strings.Join(scenario.Names(), "\n"))
		return
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	conf, err := settings.Load(*settingsPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	level, _ := logrus.ParseLevel(conf.Simulation.LogLevel)
	log.SetLevel(level)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, TracesSampleRate: 1.0}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, log, conf); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, log *logrus.Logger, conf settings.Settings) error {
	var (
		sc  *scenario.Scenario
		err error
	)
	if *scenarioFile != "" {
		sc, err = scenario.LoadFile(*scenarioFile)
	} else {
		sc, err = scenario.Load(*scenarioName)
	}
	if err != nil {
		return err
	}
	if *ticks > 0 {
		sc.Ticks = *ticks
	}

	runner, err := sc.Build(world.Options{
		Log:        log,
		Workers:    conf.Simulation.Workers,
		GroundSnap: conf.Simulation.GroundSnap,
	}, scenario.Configs{
		Player:   conf.PlayerConfig(),
		Enemy:    conf.EnemyConfig(),
		AI:       conf.AIConfig(),
		Debugger: conf.Debugger(log),
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	w := runner.World()
	stats := newSummary()
	w.Bus().Subscribe(stats)
	rec := recording.NewRecorder(w, sc.Name, sc.Ticks)
	defer rec.Stop()

	watcher, err := settings.Watch(*settingsPath)
	if err != nil {
		log.Warnf("settings will not be reloaded: %v", err)
	} else {
		defer watcher.Close()
	}

	tx := sentry.StartTransaction(ctx, "scenario "+sc.Name)
	defer tx.Finish()

	tickRate := conf.Simulation.TickRate
	dt := float32(1) / float32(tickRate)
	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Second / time.Duration(tickRate))
		defer ticker.Stop()
	}

	log.WithFields(logrus.Fields{
		"scenario":   sc.Name,
		"ticks":      sc.Ticks,
		"characters": len(sc.Characters()),
		"tick_rate":  tickRate,
	}).Info("starting scenario")
	start := time.Now()

	err = runner.Run(ctx, dt, func(tick uint64) error {
		if watcher != nil {
			reload(log, w, watcher)
		}
		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"ticks":    w.Tick(),
		"duration": time.Since(start),
	}).Info("scenario finished")
	out := rec.Recording()
	stats.report(log, w, out)

	if *recordPath != "" {
		if err := out.WriteFile(*recordPath); err != nil {
			return err
		}
		log.Infof("recording of %d frames written to %s", len(out.Frames), *recordPath)
	}
	if *verifyPath != "" {
		expected, err := recording.ReadFile(*verifyPath)
		if err != nil {
			return err
		}
		if err := expected.Verify(out); err != nil {
			return err
		}
		log.Infof("run matches %s", *verifyPath)
	}
	return nil
}

// reload applies settings changes that arrived since the last tick. Only character tuning is hot
// swapped; simulation settings take effect on the next run.
func reload(log *logrus.Logger, w *world.World, watcher *settings.Watcher) {
	for {
		select {
		case s, ok := <-watcher.Updates:
			if !ok {
				return
			}
			w.Reconfigure(s.PlayerConfig(), s.EnemyConfig())
			if level, err := logrus.ParseLevel(s.Simulation.LogLevel); err == nil {
				log.SetLevel(level)
			}
			log.WithField("tick", w.Tick()).Info("settings reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("ignoring settings change: %v", err)
		default:
			return
		}
	}
}

// summary counts the notable events of a run per character.
type summary struct {
	jumps, wallJumps, landings, slides, attacks, deaths map[string]int
}

func newSummary() *summary {
	return &summary{
		jumps:     map[string]int{},
		wallJumps: map[string]int{},
		landings:  map[string]int{},
		slides:    map[string]int{},
		attacks:   map[string]int{},
		deaths:    map[string]int{},
	}
}

func (s *summary) HandleEvent(ev event.Event) {
	id := ev.Character()
	switch ev := ev.(type) {
	case event.JumpEvent:
		if ev.Wall {
			s.wallJumps[id]++
		} else {
			s.jumps[id]++
		}
	case event.LandEvent:
		s.landings[id]++
	case event.SlideEvent:
		if ev.Sliding {
			s.slides[id]++
		}
	case event.AttackEvent:
		if ev.Attacking {
			s.attacks[id]++
		}
	case event.DeathEvent:
		s.deaths[id]++
	}
}

func (s *summary) report(log *logrus.Logger, w *world.World, rec *recording.Recording) {
	for _, ch := range w.Characters() {
		id := ch.ID()
		motion := rec.Stats(id)
		fields := logrus.Fields{
			"archetype":  ch.Controller().Archetype(),
			"position":   ch.Position(),
			"state":      ch.Controller().State(),
			"jumps":      s.jumps[id],
			"wall_jumps": s.wallJumps[id],
			"landings":   s.landings[id],
			"slides":     s.slides[id],
			"distance":   motion.Distance,
			"mean_speed": motion.MeanSpeed,
			"max_speed":  motion.MaxSpeed,
			"airborne":   motion.Airborne,
		}
		if brain := ch.Brain(); brain != nil {
			fields["ai"] = brain.State()
			fields["health"] = brain.Status().Health()
			fields["attacks"] = s.attacks[id]
			fields["deaths"] = s.deaths[id]
		}
		log.WithFields(fields).Info(id)
	}
}
