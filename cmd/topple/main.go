package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/topple/config"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/game"
	"github.com/lixenwraith/topple/input"
	"github.com/lixenwraith/topple/level"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/progress"
	"github.com/lixenwraith/topple/render"
	"github.com/lixenwraith/topple/render/renderers"
)

func main() {
	cfg, err := config.Load("topple", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "topple: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "topple: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger, logCloser, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := game.Options{Level: cfg.Level}
	if cfg.ProgressDB != "" {
		store, err := progress.Open(ctx, cfg.ProgressDB)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Progress = store

		if done, err := store.CompletedLevels(ctx); err != nil {
			logger.Warn("read completed levels failed", "err", err)
		} else {
			logger.Info("progress loaded", "completed", len(done), "levels", len(level.Catalog()))
		}

		if opts.Level == "" {
			if name, ok, err := store.CurrentLevel(ctx); err != nil {
				logger.Warn("read current level failed", "err", err)
			} else if _, lookupErr := level.ByName(name); ok && lookupErr == nil {
				opts.Level = name
			} else if ok {
				logger.Warn("stored level unknown, starting from first", "level", name)
			}
		}
	}

	res := engine.NewResource()
	res.Log = logger
	world := engine.NewWorld(res)

	session, err := game.NewSession(world, opts)
	if err != nil {
		return err
	}
	logger.Info("session ready", "level", session.Level().Name, "tick_rate", cfg.TickRate, "headless", cfg.Headless)

	if cfg.Headless {
		return runHeadless(cfg, session, os.Stdout)
	}
	return runTerminal(ctx, cancel, cfg, session, logger)
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, cfg config.Config, session *game.Session, logger *log.Logger) error {
	keys := input.DefaultKeyTable()
	if cfg.Keymap != "" {
		override, err := input.ParseKeymap(cfg.Keymap)
		if err != nil {
			return err
		}
		keys.Merge(override)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nTOPPLE CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	world := session.World()
	orchestrator := render.NewRenderOrchestrator(screen)
	renderers.RegisterDefaults(orchestrator, world)

	machine := input.NewMachine(keys)
	router := input.NewRouter(session, func() core.Entity {
		var player core.Entity
		session.View(func(*engine.World) { player = session.Player() })
		return player
	})

	clock := engine.NewSimClock(engine.NewMonotonicTimeProvider(), cfg.TimeScale)
	stepper := engine.NewFixedStepper(cfg.Step(), parameter.MaxCatchUpSteps)
	scheduler, updateDone := engine.NewClockScheduler(clock, stepper, session, cfg.Step()/2, world.Resources.Status)

	suspended := world.Resources.Status.Bools.Get("engine.suspended")

	schedErr := make(chan error, 1)
	go func() {
		schedErr <- scheduler.Run(ctx)
	}()

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses a raw goroutine as it blocks on the terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	orchestrator.RenderFrame(world, session.Camera())
	for {
		select {
		case ev := <-eventChan:
			if applyFocus(ev, clock, suspended, logger) {
				continue
			}
			intent := machine.Process(ev, time.Now())
			if intent.Type == input.IntentResize {
				orchestrator.Resize()
				continue
			}
			if !router.Apply(intent) {
				var phase string
				session.View(func(*engine.World) { phase = session.PhaseName() })
				logger.Info("quit requested", "phase", phase)
				cancel()
				return <-schedErr
			}

		case <-updateDone:
			// Frames are paced by the ticker; this only drains the signal

		case <-frameTicker.C:
			if intent, ok := machine.Expire(time.Now()); ok {
				router.Apply(intent)
			}
			orchestrator.RenderFrame(world, session.Camera())

		case err := <-schedErr:
			if err != nil {
				logger.Error("scheduler stopped", "err", err)
			}
			return err
		}
	}
}
