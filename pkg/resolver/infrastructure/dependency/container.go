package dependency

import (
	"context"
	"errors"
	"time"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/service"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/command"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/provider"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/toolkit"
)

type dependencyContainerKey struct{}

type Options struct {
	Platform    model.Platform
	Timeout     time.Duration
	Interpreter string
}

type Container interface {
	PathResolver() service.PathResolver
	RecordProvider() service.RecordProvider
}

func NewDependencyContainer(
	logger applogger.Logger,
	credentials model.Credentials,
	options Options,
) Container {
	runner := command.NewCommandRunner(logger)
	recordProvider := provider.NewTrackingProvider(credentials, provider.Options{Timeout: options.Timeout}, logger)
	toolkitLoader := toolkit.NewCommandLoader(runner, options.Interpreter)
	pathResolver := service.NewPathResolver(options.Platform, logger, recordProvider, toolkitLoader)

	return &container{
		pathResolver:   pathResolver,
		recordProvider: recordProvider,
	}
}

type container struct {
	pathResolver   service.PathResolver
	recordProvider service.RecordProvider
}

func (c *container) RecordProvider() service.RecordProvider {
	return c.recordProvider
}

func (c *container) PathResolver() service.PathResolver {
	return c.pathResolver
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainerKey{})
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainerKey{}, c)
}
