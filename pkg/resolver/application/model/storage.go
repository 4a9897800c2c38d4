package model

type StorageRootID = int

type StorageRoot struct {
	ID    StorageRootID
	Code  string
	Paths PlatformPaths
}
