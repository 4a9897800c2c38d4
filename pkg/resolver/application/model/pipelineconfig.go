package model

type PipelineConfigID = int

// PrimaryCode is the code of the default pipeline configuration of a project.
const PrimaryCode = "Primary"

type PipelineConfig struct {
	ID          PipelineConfigID
	Code        string
	ProjectID   int
	ProjectName string
	TankName    string
	Paths       PlatformPaths
}

// ProjectPath is a storage root path joined with a project tank name.
type ProjectPath = string
