package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/pyreframe/engine/internal/config"
	"github.com/pyreframe/engine/internal/core/ecs"
	"github.com/pyreframe/engine/internal/core/engine"
	"github.com/pyreframe/engine/internal/core/event"
	"github.com/pyreframe/engine/internal/input"
	"github.com/pyreframe/engine/internal/persist"
	"github.com/pyreframe/engine/internal/scene"
	"github.com/pyreframe/engine/internal/scripting"
	"github.com/pyreframe/engine/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("PYREFRAME_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.Profile.Enabled {
		defer profile.Start(profileMode(cfg.Profile.Mode), profile.ProfilePath(cfg.Profile.Dir), profile.Quiet).Stop()
	}

	// 3. Optional frame journal
	var journal *system.JournalSystem
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log.Named("persist"))
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		runID := persist.NewRunID(time.Now())
		if prev, found, err := persist.LastRun(ctx, db, runID); err != nil {
			log.Warn("previous run lookup failed", zap.Error(err))
		} else if found {
			log.Info("previous run",
				zap.String("run", prev.RunID),
				zap.Uint64("last_frame", prev.LastFrame),
				zap.Int("frames", prev.Frames))
		}
		journal = system.NewJournalSystem(persist.NewJournalRepo(db, runID), log.Named("journal"), cfg.Database.FlushEvery)
		log.Info("frame journal enabled", zap.String("run", runID))
	}

	// 4. Engine, world content, schedule
	eng := engine.New(engine.WithLogger(log.Named("engine")))
	w := eng.World()
	ecs.InsertResource(w, engine.Time{})

	if cfg.Scene.Path != "" {
		sc, err := scene.Load(cfg.Scene.Path)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
		spawned, err := sc.Spawn(w)
		if err != nil {
			return fmt.Errorf("spawn scene: %w", err)
		}
		log.Info("scene loaded", zap.String("path", cfg.Scene.Path), zap.Int("entities", len(spawned)))
	}

	eng.AddSystem(event.SwapSystem())
	eng.AddSystem(system.NewTimeSystem())
	if cfg.Scripting.Enabled {
		lua, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		for _, fn := range cfg.Scripting.Systems {
			sys, err := lua.System(fn)
			if err != nil {
				return fmt.Errorf("scripting: %w", err)
			}
			eng.AddSystem(sys)
		}
	}
	eng.AddSystem(system.NewMovementSystem())
	eng.AddSystem(system.NewRenderSystem())
	eng.AddSystem(system.NewCleanupSystem(log.Named("cleanup")))
	if journal != nil {
		eng.AddSystem(journal)
		defer journal.Flush()
	}
	log.Info("schedule ready", zap.Strings("systems", eng.Schedule().Names()))

	// 5. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	log.Info("frame loop started",
		zap.String("name", cfg.Engine.Name),
		zap.Duration("tick", cfg.Engine.TickRate),
		zap.Uint64("max_frames", cfg.Engine.MaxFrames))

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			out := eng.Tick(input.Snapshot{}, dt)
			log.Debug("frame", zap.Uint64("frame", eng.Frames()), zap.Int("commands", len(out.Commands)))
			if cfg.Engine.MaxFrames > 0 && eng.Frames() >= cfg.Engine.MaxFrames {
				log.Info("frame limit reached", zap.Uint64("frames", eng.Frames()), zap.Int("alive", w.AliveCount()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()), zap.Uint64("frames", eng.Frames()))
			return nil
		}
	}
}

func profileMode(mode string) func(*profile.Profile) {
	switch mode {
	case "mem":
		return profile.MemProfile
	case "trace":
		return profile.TraceProfile
	default:
		return profile.CPUProfile
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
