package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/ItsNotGoodName/xtagwm/internal/api"
	"github.com/ItsNotGoodName/xtagwm/internal/build"
	"github.com/ItsNotGoodName/xtagwm/internal/bus"
	"github.com/ItsNotGoodName/xtagwm/internal/config"
	"github.com/ItsNotGoodName/xtagwm/internal/core"
	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/ItsNotGoodName/xtagwm/internal/xdraw"
	"github.com/ItsNotGoodName/xtagwm/internal/xwm"
	"github.com/ItsNotGoodName/xtagwm/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Config string `doc:"config file, defaults to $XDG_CONFIG_HOME/xtagwm/xtagwm.yaml"`
	Host   string `doc:"host for the control API" default:"127.0.0.1"`
	Port   int    `doc:"port for the control API, 0 disables it" default:"0"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return run(ctx, options)
		})
	})

	cli.Root().Use = "xtagwm"
	cli.Root().Short = "Tiling window manager for X"
	cli.Root().Version = build.Current.String()

	cli.Root().AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the config",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			cfg, err := loadConfig(options.Config)
			if err != nil {
				log.Fatal(err)
			}
			pp.Println(cfg)
		}),
	})

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}

func loadConfig(filePath string) (config.Config, error) {
	if filePath == "" {
		filePath = config.DefaultPath()
	}

	driver, err := config.NewDriver(filePath)
	if err != nil {
		return config.Config{}, err
	}

	store, err := config.NewStore(driver)
	if err != nil {
		return config.Config{}, err
	}

	return store.GetConfig()
}

func run(ctx context.Context, options *Options) error {
	cfg, err := loadConfig(options.Config)
	if err != nil {
		return err
	}

	settings, err := config.Settings(cfg)
	if err != nil {
		return err
	}
	if settings.StatusText == "" {
		settings.StatusText = build.Current.Name()
	}

	conn, err := xwm.Open()
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	if err := conn.CheckOtherWM(); err != nil {
		return err
	}

	surface, err := xdraw.New(conn.X, conn.Screen, int(conn.Screen.WidthInPixels), cfg.Fonts)
	if err != nil {
		return err
	}
	if err := surface.LoadSchemes(cfg.Colors.Norm, cfg.Colors.Sel); err != nil {
		return err
	}

	if err := conn.Setup(settings.Tags, surface); err != nil {
		return err
	}

	screen := conn.ScreenInfo()

	m := wm.New(conn, surface, wm.ExecSpawner{}, settings, screen)
	conn.Grab(settings, screen.NumlockMask)
	if err := conn.Scan(m); err != nil {
		return err
	}
	m.Start()
	defer conn.Cleanup(m)

	for _, line := range cfg.Autostart {
		argv, err := shlex.Split(line)
		if err != nil || len(argv) == 0 {
			slog.Error("Invalid autostart command", "command", line, "error", err)
			continue
		}
		m.Spawn(argv)
	}

	hub := bus.NewHub[wm.Snapshot]()
	requestC := make(chan wm.Request)

	var runErr error
	super := sutureext.New("root")
	sutureext.Add(super, sutureext.NewServiceFunc("xwm.Run", func(ctx context.Context) error {
		runErr = xwm.Run(ctx, conn, m, requestC, hub.Broadcast)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return suture.ErrTerminateSupervisorTree
	}))
	if options.Port > 0 {
		sutureext.Add(super, api.New(core.Address(options.Host, options.Port), hub, requestC))
	}

	err = super.Serve(ctx)
	if runErr != nil {
		return runErr
	}
	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		return nil
	}
	return err
}
