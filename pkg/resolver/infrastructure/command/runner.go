package command

import (
	"context"
	"errors"
	"os"
	"os/exec"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	// Env is appended to the environment of the current process.
	Env []string
}

type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger) Runner {
	return &runner{
		logger: logger,
	}
}

type runner struct {
	logger applogger.Logger
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}
	r.logger.Debug(cmd.String())
	result, err := cmd.Output()
	return string(result), err
}
