package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/config/credentials"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/dependency"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/platform"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	err := newApp(mainLogger).RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func newApp(mainLogger applogger.Logger) *cli.App {
	withContainer := func(c *cli.Context) error {
		container, err := newContainer(c, mainLogger)
		if err != nil {
			return err
		}
		c.Context = dependency.ContainerToContext(c.Context, container)
		return nil
	}
	pathFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:     "path",
			Usage:    "filesystem path to resolve",
			Required: true,
		}
	}
	return &cli.App{
		Name:  "pipelineresolver",
		Usage: "resolve a filesystem path to its pipeline configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "credentials",
				Usage:   "credentials file (json or yaml), defaults to key.json next to the executable",
				EnvVars: []string{"PIPELINE_RESOLVER_CREDENTIALS"},
			},
			&cli.StringFlag{
				Name:  "platform",
				Usage: "platform path field to use: linux, windows or mac (detected when empty)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
			},
			&cli.StringFlag{
				Name:  "python",
				Value: "python",
				Usage: "interpreter used to load the toolkit",
			},
		},
		Commands: cli.Commands{
			&cli.Command{
				Name:  "resolve",
				Usage: "list pipeline configurations owning the path",
				Flags: []cli.Flag{pathFlag()},
				Before: withContainer,
				Action: func(c *cli.Context) error {
					return resolve(c.Context, c.App.Writer, c.String("path"))
				},
			},
			&cli.Command{
				Name:  "primary",
				Usage: "print the path of the Primary pipeline configuration",
				Flags: []cli.Flag{pathFlag()},
				Before: withContainer,
				Action: func(c *cli.Context) error {
					return lookup(c.Context, c.App.Writer, c.String("path"), model.PrimaryCode)
				},
			},
			&cli.Command{
				Name:  "lookup",
				Usage: "print the path of the pipeline configuration with the given code",
				Flags: []cli.Flag{
					pathFlag(),
					&cli.StringFlag{
						Name:     "code",
						Required: true,
					},
				},
				Before: withContainer,
				Action: func(c *cli.Context) error {
					return lookup(c.Context, c.App.Writer, c.String("path"), c.String("code"))
				},
			},
			&cli.Command{
				Name:  "toolkit",
				Usage: "load the toolkit of the pipeline configuration owning the path",
				Flags: []cli.Flag{
					pathFlag(),
					&cli.StringFlag{
						Name:  "code",
						Value: model.PrimaryCode,
					},
				},
				Before: withContainer,
				Action: func(c *cli.Context) error {
					return loadToolkit(c.Context, c.String("path"), c.String("code"))
				},
			},
		},
	}
}

func newContainer(c *cli.Context, mainLogger applogger.Logger) (dependency.Container, error) {
	resolverPlatform, err := platformFromFlag(c.String("platform"))
	if err != nil {
		return nil, err
	}
	credentialsPath := c.String("credentials")
	if credentialsPath == "" {
		credentialsPath, err = credentials.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	// No fallback source: main treats this error as fatal.
	creds, err := credentials.Load(credentialsPath)
	if err != nil {
		return nil, err
	}
	return dependency.NewDependencyContainer(mainLogger, creds, dependency.Options{
		Platform:    resolverPlatform,
		Timeout:     c.Duration("timeout"),
		Interpreter: c.String("python"),
	}), nil
}

func platformFromFlag(value string) (model.Platform, error) {
	if value == "" {
		return platform.Detect()
	}
	return model.ParsePlatform(value)
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
