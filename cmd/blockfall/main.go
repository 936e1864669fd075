// Command blockfall plays a one or two player falling-block game in an
// ebiten window.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugserver"
)

func main() {
	var (
		configPath = flag.String("config", "blockfall.toml", "TOML config file; missing files use the defaults")
		players    = flag.Int("players", 0, "number of players, 1 or 2 (overrides the config)")
		debug      = flag.Bool("debug", false, "show the imgui match inspector")
		httpAddr   = flag.String("http", "", "serve the JSON match inspector on this address")
		mute       = flag.Bool("mute", false, "start with audio muted")
		dumpConfig = flag.Bool("dump-config", false, "print the effective config and exit")
	)
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("blockfall: %v", err)
	}
	if *players != 0 {
		cfg.Game.Players = *players
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if *httpAddr != "" {
		cfg.Debug.HTTP = *httpAddr
	}
	if *mute {
		cfg.Audio.Muted = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("blockfall: %v", err)
	}

	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatalf("blockfall: %v", err)
		}
		return
	}

	keymap, err := buildKeymap(cfg)
	if err != nil {
		log.Fatalf("blockfall: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := newGame(ctx, cfg, keymap)
	if err != nil {
		log.Fatalf("blockfall: %v", err)
	}

	if cfg.Debug.HTTP != "" {
		pub := debugserver.NewPublisher()
		game.match.Scheduler().RegisterNamed("publish", pub.System(game.match, uint64(max(cfg.Timing.TickRate/10, 1))))
		router := debugserver.NewRouter(debugserver.NewHandler(pub))
		go func() {
			if err := debugserver.ListenAndServe(ctx, cfg.Debug.HTTP, router); err != nil {
				log.Printf("debug server: %v", err)
			}
		}()
	}

	log.Printf("blockfall: %d player(s), %d keys bound", cfg.Game.Players, keymap.Len())
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("blockfall: %v", err)
	}

	if game.match.Done() {
		r := game.match.Result()
		log.Printf("blockfall: %s scores=%v lines=%v elapsed=%dms", r.Outcome, r.Scores, r.Lines, r.Elapsed)
	}
}
