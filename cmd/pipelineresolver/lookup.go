package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/dependency"
)

func lookup(ctx context.Context, out io.Writer, path, code string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	resolver := dependencyContainer.PathResolver()
	config, err := resolver.SelectByCode(ctx, path, code)
	if err != nil {
		return err
	}
	pipelinePath := resolver.PlatformPath(config)
	if pipelinePath == "" {
		return fmt.Errorf("pipeline configuration %v (%v) has no path for this platform", config.ID, config.Code)
	}
	_, err = fmt.Fprintln(out, pipelinePath)
	return err
}
