package platform

import (
	"runtime"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
)

// Detect returns the platform of the running process.
func Detect() (model.Platform, error) {
	return FromGOOS(runtime.GOOS)
}

func FromGOOS(goos string) (model.Platform, error) {
	return model.ParsePlatform(goos)
}
