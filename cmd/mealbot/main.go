// MealBot is a conversational meal-suggestion bot.
//
// Usage:
//
//	mealbot [-console] [-verbose] [-quiet] [-log-file path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/hammamikhairi/mealbot/internal/config"
	"github.com/hammamikhairi/mealbot/internal/console"
	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/engine"
	"github.com/hammamikhairi/mealbot/internal/gpt"
	"github.com/hammamikhairi/mealbot/internal/logger"
	"github.com/hammamikhairi/mealbot/internal/recipe"
	"github.com/hammamikhairi/mealbot/internal/storage"
	"github.com/hammamikhairi/mealbot/internal/telegram"
	"github.com/hammamikhairi/mealbot/internal/video"
)

func main() {
	consoleMode := flag.Bool("console", false, "chat in the terminal instead of running the Telegram bot")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (default stderr; console mode defaults to .mealbot-logs/mealbot.log)")
	flag.Parse()

	cfg, cfgErr := config.Load()

	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Console mode owns the terminal, so logs go to a file there.
	path := *logFile
	if path == "" && *consoleMode {
		path = ".mealbot-logs/mealbot.log"
	}
	var logOut io.Writer = os.Stderr
	if path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libraries log through the standard package.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	if cfgErr != nil {
		log.Warn("%v (using defaults for the affected settings)", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *consoleMode, log); err != nil {
		log.Error("%v", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, consoleMode bool, log *logger.Logger) error {
	backend, err := openBackend(ctx, cfg, log.Named("storage"))
	if err != nil {
		return err
	}
	store := storage.NewStore(backend, log.Named("store"), storage.WithTTL(cfg.SessionTTL))
	defer store.Close()

	sweeper := storage.NewSweeper(store, log.Named("sweeper"))
	sweeper.Start(ctx)
	defer sweeper.Stop()

	youtube := video.NewYouTube(cfg.YouTubeKey, log.Named("youtube"))
	if youtube.Available() {
		if err := youtube.Check(ctx); err != nil {
			log.Warn("YouTube key check failed, video links may be missing: %v", err)
		} else {
			log.Info("YouTube search enabled")
		}
	} else {
		log.Info("video links disabled: set YOUTUBE_API_KEY to enable")
	}

	gen := recipe.NewGenerator(completer(cfg, log), log.Named("recipe"), recipe.WithTimeout(cfg.RecipeTimeout))
	recipes := recipe.NewService(gen, video.NewEnricher(youtube, log.Named("enrich")), log.Named("recipe"))
	eng := engine.New(store, recipes, log.Named("engine"))

	if consoleMode {
		ui := console.NewUI(func() string {
			return store.Get(ctx, consoleUser).Step.String()
		})
		return console.NewApp(eng, ui, consoleUser, log.Named("console")).Run(ctx)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	var opts []telegram.Option
	if cfg.Webhook() {
		opts = append(opts, telegram.WithWebhook(cfg.WebhookURL, ":"+strconv.Itoa(cfg.Port)))
	}
	bot, err := telegram.New(cfg.TelegramToken, eng, log.Named("telegram"), opts...)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}

const consoleUser = "console"

func openBackend(ctx context.Context, cfg config.Config, log *logger.Logger) (domain.SessionBackend, error) {
	switch {
	case cfg.RedisURL != "":
		b, err := storage.OpenRedis(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		log.Info("sessions in Redis")
		return b, nil
	case cfg.SessionDB != "":
		driver, dsn, err := storage.ParseDSN(cfg.SessionDB)
		if err != nil {
			return nil, err
		}
		b, err := storage.OpenSQL(ctx, driver, dsn, log)
		if err != nil {
			return nil, err
		}
		log.Info("sessions in %s", driver)
		return b, nil
	default:
		log.Info("sessions in memory")
		return storage.NewMemoryBackend(log), nil
	}
}

func completer(cfg config.Config, log *logger.Logger) domain.Completer {
	switch cfg.ModelProvider {
	case config.ProviderGemini:
		var opts []gpt.GeminiOption
		if cfg.GeminiModel != "" {
			opts = append(opts, gpt.WithGeminiModel(cfg.GeminiModel))
		}
		log.Info("recipes from Gemini")
		return gpt.NewGeminiClient(cfg.GeminiKey, log.Named("gemini"), opts...)
	case config.ProviderOpenAI:
		var opts []gpt.ClientOption
		if cfg.GPTModel != "" {
			opts = append(opts, gpt.WithModel(cfg.GPTModel))
		}
		log.Info("recipes from %s", cfg.GPTEndpoint)
		return gpt.NewClient(cfg.GPTEndpoint, cfg.GPTKey, log.Named("gpt"), opts...)
	default:
		log.Warn("no model configured: every request gets the fallback recipes")
		return gpt.NewClient("", "", log.Named("gpt"))
	}
}
