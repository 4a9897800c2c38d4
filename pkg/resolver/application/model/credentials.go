package model

type Credentials struct {
	APIKey    string
	APIScript string
	Host      string
}
