package toolkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/service"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/infrastructure/command"
)

const coreRuntime = "python"

// CorePath returns the directory holding the toolkit core for a pipeline configuration.
func CorePath(pipelinePath string) string {
	return filepath.Join(pipelinePath, "install", "core", coreRuntime)
}

func NewCommandLoader(runner command.Runner, interpreter string) service.ToolkitLoader {
	return &commandLoader{
		runner:      runner,
		interpreter: interpreter,
	}
}

type commandLoader struct {
	runner      command.Runner
	interpreter string
}

func (loader commandLoader) Load(ctx context.Context, pipelinePath, path string) error {
	corePath := CorePath(pipelinePath)
	info, err := os.Stat(corePath)
	if err != nil {
		return errors.Wrapf(err, "toolkit core not found in pipeline configuration %v", pipelinePath)
	}
	if !info.IsDir() {
		return fmt.Errorf("toolkit core %v is not a directory", corePath)
	}
	_, err = loader.runner.Execute(ctx, command.Command{
		WorkDir:    pipelinePath,
		Executable: loader.interpreter,
		Args:       []string{"-c", "import sgtk; sgtk.sgtk_from_path(" + strconv.Quote(path) + ")"},
		Env:        []string{"PYTHONPATH=" + pythonPath(corePath)},
	})
	return errors.Wrapf(err, "failed to load toolkit for %v", path)
}

func pythonPath(corePath string) string {
	if current := os.Getenv("PYTHONPATH"); current != "" {
		return corePath + string(os.PathListSeparator) + current
	}
	return corePath
}
