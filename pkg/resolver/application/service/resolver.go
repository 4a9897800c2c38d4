package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
)

var ErrPipelineConfigNotFound = errors.New("pipeline configuration not found")

type RecordProvider interface {
	StorageRoots(ctx context.Context) ([]model.StorageRoot, error)
	// PipelineConfigs returns only configurations whose project has a tank name.
	PipelineConfigs(ctx context.Context) ([]model.PipelineConfig, error)
}

type ToolkitLoader interface {
	Load(ctx context.Context, pipelinePath, path string) error
}

type PathResolver interface {
	Resolve(ctx context.Context, path string) ([]model.PipelineConfig, error)
	SelectByCode(ctx context.Context, path, code string) (model.PipelineConfig, error)
	Primary(ctx context.Context, path string) (model.PipelineConfig, error)
	PlatformPath(config model.PipelineConfig) string
	LoadToolkit(ctx context.Context, path, code string) error
}

func NewPathResolver(
	platform model.Platform,
	logger applogger.Logger,
	recordProvider RecordProvider,
	toolkitLoader ToolkitLoader,
) PathResolver {
	return &pathResolver{
		platform:       platform,
		logger:         logger,
		recordProvider: recordProvider,
		toolkitLoader:  toolkitLoader,
	}
}

type pathResolver struct {
	platform model.Platform

	logger         applogger.Logger
	recordProvider RecordProvider
	toolkitLoader  ToolkitLoader
}

func (service pathResolver) Resolve(ctx context.Context, path string) ([]model.PipelineConfig, error) {
	storages, err := service.recordProvider.StorageRoots(ctx)
	if err != nil {
		return nil, err
	}
	configs, err := service.recordProvider.PipelineConfigs(ctx)
	if err != nil {
		return nil, err
	}

	resolution := ResolvePath(service.platform, path, storages, configs)
	if len(resolution.Ambiguous) > 0 {
		service.logger.Info(fmt.Sprintf(
			"path \"%v\" matches several project paths (%v), using \"%v\"",
			path, strings.Join(resolution.Ambiguous, ", "), resolution.ProjectPath,
		))
	}
	if !resolution.Found() {
		service.logger.Debug(fmt.Sprintf("no project path matches \"%v\"", path))
		return nil, nil
	}
	service.logger.Info(fmt.Sprintf(
		"resolved \"%v\" to project path \"%v\" (%v pipeline configurations)",
		path, resolution.ProjectPath, len(resolution.Configs),
	))
	return resolution.Configs, nil
}

func (service pathResolver) SelectByCode(ctx context.Context, path, code string) (model.PipelineConfig, error) {
	configs, err := service.Resolve(ctx, path)
	if err != nil {
		return model.PipelineConfig{}, err
	}
	for _, config := range configs {
		if config.Code == code {
			return config, nil
		}
	}
	return model.PipelineConfig{}, fmt.Errorf("%w: code %q for path %q", ErrPipelineConfigNotFound, code, path)
}

func (service pathResolver) Primary(ctx context.Context, path string) (model.PipelineConfig, error) {
	return service.SelectByCode(ctx, path, model.PrimaryCode)
}

func (service pathResolver) PlatformPath(config model.PipelineConfig) string {
	return config.Paths.For(service.platform)
}

func (service pathResolver) LoadToolkit(ctx context.Context, path, code string) error {
	config, err := service.SelectByCode(ctx, path, code)
	if err != nil {
		return err
	}
	pipelinePath := service.PlatformPath(config)
	if pipelinePath == "" {
		return fmt.Errorf("pipeline configuration %v (%v) has no %v", config.ID, config.Code, service.platform.PathField())
	}
	return service.toolkitLoader.Load(ctx, pipelinePath, path)
}
