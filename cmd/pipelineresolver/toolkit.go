package main

import (
	"context"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/dependency"
)

func loadToolkit(ctx context.Context, path, code string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.PathResolver().LoadToolkit(ctx, path, code)
}
