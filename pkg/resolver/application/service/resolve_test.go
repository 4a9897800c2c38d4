package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
)

func linuxStorage(id int, path string) model.StorageRoot {
	return model.StorageRoot{ID: id, Code: "primary", Paths: model.PlatformPaths{Linux: path}}
}

func pipelineConfig(id int, code, tankName, linuxPath string) model.PipelineConfig {
	return model.PipelineConfig{
		ID:       id,
		Code:     code,
		TankName: tankName,
		Paths:    model.PlatformPaths{Linux: linuxPath},
	}
}

func TestResolvePath_endToEnd(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/mnt/proj")}
	configs := []model.PipelineConfig{pipelineConfig(10, "Primary", "CM", "/mnt/proj/CM/pipeline")}

	result := ResolvePath(model.PlatformLinux, "/mnt/proj/CM/shots/sq00/light", storages, configs)

	require.True(t, result.Found())
	assert.Equal(t, "/mnt/proj/CM", result.ProjectPath)
	assert.Equal(t, configs, result.Configs)
	assert.Empty(t, result.Ambiguous)
}

func TestResolvePath_caseInsensitivePrefix(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/projects")}
	configs := []model.PipelineConfig{pipelineConfig(10, "Primary", "CM", "/projects/CM/pipeline")}

	result := ResolvePath(model.PlatformLinux, "/PROJECTS/cm/shots/x", storages, configs)

	require.Len(t, result.Configs, 1)
	assert.Equal(t, "/projects/CM", result.ProjectPath, "returned data keeps original case")
	assert.Equal(t, "/projects/CM/pipeline", result.Configs[0].Paths.Linux)
}

func TestResolvePath_noMatch(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/projects")}
	configs := []model.PipelineConfig{pipelineConfig(10, "Primary", "CM", "/projects/CM/pipeline")}

	result := ResolvePath(model.PlatformLinux, "/other/tree", storages, configs)

	assert.False(t, result.Found())
	assert.Empty(t, result.Configs)
}

func TestResolvePath_skipsStorageWithoutPlatformPath(t *testing.T) {
	storages := []model.StorageRoot{
		{ID: 1, Paths: model.PlatformPaths{Windows: `P:\projects`}},
		linuxStorage(2, "/mnt/proj"),
	}
	configs := []model.PipelineConfig{pipelineConfig(10, "Primary", "CM", "")}

	result := ResolvePath(model.PlatformLinux, "/mnt/proj/CM/a", storages, configs)
	assert.Equal(t, "/mnt/proj/CM", result.ProjectPath)

	result = ResolvePath(model.PlatformMac, "/mnt/proj/CM/a", storages, configs)
	assert.False(t, result.Found(), "no storage has a mac path")
}

func TestResolvePath_skipsConfigWithoutTankName(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/mnt/proj")}
	configs := []model.PipelineConfig{pipelineConfig(10, "Primary", "", "/mnt/proj/pipeline")}

	result := ResolvePath(model.PlatformLinux, "/mnt/proj/shots", storages, configs)

	assert.False(t, result.Found())
}

func TestResolvePath_groupsConfigsSharingProjectPath(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/mnt/proj")}
	configs := []model.PipelineConfig{
		pipelineConfig(10, "Primary", "CM", "/mnt/proj/CM/pipeline"),
		pipelineConfig(11, "Dev", "CM", "/mnt/dev/CM/pipeline"),
		pipelineConfig(12, "Primary", "XX", "/mnt/proj/XX/pipeline"),
	}

	result := ResolvePath(model.PlatformLinux, "/mnt/proj/CM/shots", storages, configs)

	require.Len(t, result.Configs, 2)
	assert.Equal(t, 10, result.Configs[0].ID)
	assert.Equal(t, 11, result.Configs[1].ID)
}

func TestResolvePath_longestPrefixWins(t *testing.T) {
	storages := []model.StorageRoot{
		linuxStorage(1, "/mnt"),
		linuxStorage(2, "/mnt/proj"),
	}
	configs := []model.PipelineConfig{
		pipelineConfig(10, "Primary", "proj", "/mnt/proj/pipeline"),
		pipelineConfig(11, "Primary", "CM", "/mnt/proj/CM/pipeline"),
	}

	result := ResolvePath(model.PlatformLinux, "/mnt/proj/CM/shots", storages, configs)

	assert.Equal(t, "/mnt/proj/CM", result.ProjectPath)
	require.Len(t, result.Configs, 1)
	assert.Equal(t, 11, result.Configs[0].ID)
	assert.Equal(t, []string{"/mnt/proj", "/mnt/proj/CM"}, result.Ambiguous)
}

func TestResolvePath_idempotent(t *testing.T) {
	storages := []model.StorageRoot{linuxStorage(1, "/mnt/proj"), linuxStorage(2, "/mnt/other")}
	configs := []model.PipelineConfig{
		pipelineConfig(10, "Primary", "CM", "/mnt/proj/CM/pipeline"),
		pipelineConfig(11, "Dev", "CM", "/mnt/proj/CM/dev"),
	}

	first := ResolvePath(model.PlatformLinux, "/mnt/other/CM/x", storages, configs)
	second := ResolvePath(model.PlatformLinux, "/mnt/other/CM/x", storages, configs)

	assert.Equal(t, first, second)
	assert.Equal(t, "/mnt/other/CM", first.ProjectPath)
}

func TestResolvePath_windows(t *testing.T) {
	storages := []model.StorageRoot{{ID: 1, Paths: model.PlatformPaths{Windows: `P:\projects`}}}
	configs := []model.PipelineConfig{{
		ID:       10,
		Code:     "Primary",
		TankName: "CM",
		Paths:    model.PlatformPaths{Windows: `P:\projects\CM\pipeline`},
	}}

	result := ResolvePath(model.PlatformWindows, `p:\Projects\CM\shots\sq00\sq00_sh0560\light`, storages, configs)

	assert.Equal(t, `P:\projects\CM`, result.ProjectPath)
	require.Len(t, result.Configs, 1)
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name     string
		platform model.Platform
		root     string
		want     string
	}{
		{"linux", model.PlatformLinux, "/mnt/proj", "/mnt/proj/CM"},
		{"linux trailing slash", model.PlatformLinux, "/mnt/proj/", "/mnt/proj/CM"},
		{"mac", model.PlatformMac, "/Volumes/proj", "/Volumes/proj/CM"},
		{"windows", model.PlatformWindows, `P:\projects`, `P:\projects\CM`},
		{"windows trailing separator", model.PlatformWindows, `P:\projects\`, `P:\projects\CM`},
		{"windows drive", model.PlatformWindows, `P:`, `P:CM`},
		{"windows unc", model.PlatformWindows, `\\server\share`, `\\server\share\CM`},
		{"empty root", model.PlatformLinux, "", "CM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.platform, tt.root, "CM"))
		})
	}
}
