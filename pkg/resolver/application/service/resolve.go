package service

import (
	"strings"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
)

type Resolution struct {
	ProjectPath model.ProjectPath
	Configs     []model.PipelineConfig
	// Ambiguous holds every candidate project path matching the input when there is more than one.
	Ambiguous []model.ProjectPath
}

func (r Resolution) Found() bool {
	return r.ProjectPath != ""
}

type projectPaths struct {
	order   []model.ProjectPath
	configs map[model.ProjectPath][]model.PipelineConfig
}

func (p *projectPaths) add(projectPath model.ProjectPath, config model.PipelineConfig) {
	if _, ok := p.configs[projectPath]; !ok {
		p.order = append(p.order, projectPath)
	}
	p.configs[projectPath] = append(p.configs[projectPath], config)
}

// ResolvePath finds the pipeline configurations owning path.
// The longest matching project path wins; on equal length the first one built wins.
func ResolvePath(
	platform model.Platform,
	path string,
	storages []model.StorageRoot,
	configs []model.PipelineConfig,
) Resolution {
	roots := make([]string, 0, len(storages))
	for _, storage := range storages {
		if root := storage.Paths.For(platform); root != "" {
			roots = append(roots, root)
		}
	}

	candidates := projectPaths{configs: make(map[model.ProjectPath][]model.PipelineConfig)}
	for _, config := range configs {
		if config.TankName == "" {
			continue
		}
		for _, root := range roots {
			candidates.add(JoinPath(platform, root, config.TankName), config)
		}
	}

	lowerPath := strings.ToLower(path)
	var matches []model.ProjectPath
	var result Resolution
	for _, projectPath := range candidates.order {
		if !strings.HasPrefix(lowerPath, strings.ToLower(projectPath)) {
			continue
		}
		matches = append(matches, projectPath)
		if len(projectPath) > len(result.ProjectPath) {
			result.ProjectPath = projectPath
			result.Configs = candidates.configs[projectPath]
		}
	}
	if len(matches) > 1 {
		result.Ambiguous = matches
	}
	return result
}

// JoinPath appends name to root using the separator conventions of platform.
func JoinPath(platform model.Platform, root, name string) string {
	if root == "" {
		return name
	}
	separator := "/"
	last := root[len(root)-1]
	if platform == model.PlatformWindows {
		separator = `\`
		if last == '\\' || last == '/' || last == ':' {
			return root + name
		}
		return root + separator + name
	}
	if last == '/' {
		return root + name
	}
	return root + separator + name
}
