package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/model"
	"github.com/tss-calculator/pipelineresolver/pkg/resolver/application/service"
)

const (
	localStorageEntity          = "LocalStorage"
	pipelineConfigurationEntity = "PipelineConfiguration"
	tankNameField               = "project.Project.tank_name"

	searchContentType = "application/vnd+shotgun.api3_array+json"
	defaultPageSize   = 500
	maxResponseBytes  = 16 << 20
)

var (
	localStorageFields = []string{"id", "code", "windows_path", "mac_path", "linux_path"}
	pipelineFields     = []string{"id", "code", "windows_path", "linux_path", "mac_path", "project", tankNameField}
)

type Options struct {
	Timeout  time.Duration
	PageSize int
}

func NewTrackingProvider(
	credentials model.Credentials,
	options Options,
	logger applogger.Logger,
) service.RecordProvider {
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &trackingProvider{
		credentials: credentials,
		pageSize:    pageSize,
		client:      &http.Client{Timeout: options.Timeout},
		logger:      logger,
	}
}

type trackingProvider struct {
	credentials model.Credentials
	pageSize    int
	client      *http.Client
	logger      applogger.Logger

	tokenMu     sync.Mutex
	accessToken string
}

type searchPage struct {
	Number int `json:"number"`
	Size   int `json:"size"`
}

type searchRequest struct {
	Filters [][]interface{} `json:"filters"`
	Fields  []string        `json:"fields"`
	Page    searchPage      `json:"page"`
}

type entityLink struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type relationship struct {
	Data *entityLink `json:"data"`
}

type record struct {
	ID            int                     `json:"id"`
	Attributes    map[string]interface{}  `json:"attributes"`
	Relationships map[string]relationship `json:"relationships"`
}

type searchResponse struct {
	Data []record `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (provider *trackingProvider) StorageRoots(ctx context.Context) ([]model.StorageRoot, error) {
	records, err := provider.find(ctx, localStorageEntity, [][]interface{}{}, localStorageFields)
	if err != nil {
		return nil, err
	}
	storages := make([]model.StorageRoot, 0, len(records))
	for _, r := range records {
		storages = append(storages, model.StorageRoot{
			ID:    r.ID,
			Code:  r.stringAttribute("code"),
			Paths: r.platformPaths(),
		})
	}
	return storages, nil
}

func (provider *trackingProvider) PipelineConfigs(ctx context.Context) ([]model.PipelineConfig, error) {
	filters := [][]interface{}{{tankNameField, "is_not", nil}}
	records, err := provider.find(ctx, pipelineConfigurationEntity, filters, pipelineFields)
	if err != nil {
		return nil, err
	}
	configs := make([]model.PipelineConfig, 0, len(records))
	for _, r := range records {
		config := model.PipelineConfig{
			ID:       r.ID,
			Code:     r.stringAttribute("code"),
			TankName: r.stringAttribute(tankNameField),
			Paths:    r.platformPaths(),
		}
		if project := r.Relationships["project"].Data; project != nil {
			config.ProjectID = project.ID
			config.ProjectName = project.Name
		}
		if config.TankName == "" {
			continue
		}
		configs = append(configs, config)
	}
	return configs, nil
}

func (provider *trackingProvider) find(
	ctx context.Context,
	entity string,
	filters [][]interface{},
	fields []string,
) ([]record, error) {
	var records []record
	for page := 1; ; page++ {
		body, err := json.Marshal(searchRequest{
			Filters: filters,
			Fields:  fields,
			Page:    searchPage{Number: page, Size: provider.pageSize},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %v search", entity)
		}
		var response searchResponse
		err = provider.do(ctx, http.MethodPost, "/api/v1/entity/"+entity+"/_search", searchContentType, bytes.NewReader(body), &response)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to find %v records", entity)
		}
		records = append(records, response.Data...)
		if len(response.Data) < provider.pageSize {
			break
		}
	}
	provider.logger.Debug(fmt.Sprintf("found %v %v records", len(records), entity))
	return records, nil
}

func (provider *trackingProvider) do(
	ctx context.Context,
	method, path, contentType string,
	body io.Reader,
	out interface{},
) error {
	token, err := provider.token(ctx)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, provider.credentials.Host+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return provider.send(req, out)
}

func (provider *trackingProvider) token(ctx context.Context) (string, error) {
	provider.tokenMu.Lock()
	defer provider.tokenMu.Unlock()
	if provider.accessToken != "" {
		return provider.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", provider.credentials.APIScript)
	form.Set("client_secret", provider.credentials.APIKey)
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, provider.credentials.Host+"/api/v1/auth/access_token", strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var response tokenResponse
	if err = provider.send(req, &response); err != nil {
		return "", errors.Wrapf(err, "failed to authenticate script %v", provider.credentials.APIScript)
	}
	if response.AccessToken == "" {
		return "", fmt.Errorf("empty access token for script %v", provider.credentials.APIScript)
	}
	provider.accessToken = response.AccessToken
	return provider.accessToken, nil
}

func (provider *trackingProvider) send(req *http.Request, out interface{}) error {
	provider.logger.Debug(req.Method + " " + req.URL.String())
	resp, err := provider.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return errors.Wrapf(err, "failed to read response of %v", req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}
	return errors.Wrapf(json.Unmarshal(data, out), "failed to decode response of %v", req.URL.Path)
}

func (r record) stringAttribute(name string) string {
	if s, ok := r.Attributes[name].(string); ok {
		return s
	}
	return ""
}

func (r record) platformPaths() model.PlatformPaths {
	return model.PlatformPaths{
		Linux:   r.stringAttribute(model.PlatformLinux.PathField()),
		Windows: r.stringAttribute(model.PlatformWindows.PathField()),
		Mac:     r.stringAttribute(model.PlatformMac.PathField()),
	}
}

func excerpt(data []byte) string {
	const limit = 512
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
