package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/dependency"
)

func resolve(ctx context.Context, out io.Writer, path string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	resolver := dependencyContainer.PathResolver()
	configs, err := resolver.Resolve(ctx, path)
	if err != nil {
		return err
	}
	for _, config := range configs {
		_, err = fmt.Fprintf(out, "%v\t%v\t%v\t%v\n", config.ID, config.Code, config.TankName, resolver.PlatformPath(config))
		if err != nil {
			return err
		}
	}
	return nil
}
