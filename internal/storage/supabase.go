package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portal-server/pkg/errors"
)

// SupabaseAdapter stores objects in a Supabase Storage bucket through its
// REST API. Saves use upsert semantics so the current-document paths can be
// overwritten in place.
type SupabaseAdapter struct {
	client  *http.Client
	baseURL string
	apiKey  string
	bucket  string
	logger  *zap.Logger
}

// NewSupabaseAdapter creates an adapter for the given project URL and bucket.
func NewSupabaseAdapter(baseURL, apiKey, bucket string, logger *zap.Logger) *SupabaseAdapter {
	return &SupabaseAdapter{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		logger:  logger,
	}
}

func (a *SupabaseAdapter) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", a.baseURL, a.bucket, path)
}

func (a *SupabaseAdapter) setHeaders(req *http.Request) {
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
}

func (a *SupabaseAdapter) Save(ctx context.Context, path string, content []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.objectURL(path), bytes.NewReader(content))
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to create upload request", err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("x-upsert", "true")

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "upload request failed for "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		a.logger.Warn("Supabase upload returned non-success status",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", body))
		return errors.NewAppError(errors.ErrStorage,
			fmt.Sprintf("supabase upload failed for %s: status %d", path, resp.StatusCode), nil)
	}
	return nil
}

func (a *SupabaseAdapter) Load(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.objectURL(path), nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to create download request", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "download request failed for "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewAppError(errors.ErrNotFound, "object not found: "+path, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(errors.ErrStorage,
			fmt.Sprintf("supabase download failed for %s: status %d", path, resp.StatusCode), nil)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to read download body for "+path, err)
	}
	return content, nil
}

func (a *SupabaseAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	listURL := fmt.Sprintf("%s/storage/v1/object/list/%s", a.baseURL, a.bucket)
	body, err := json.Marshal(map[string]interface{}{
		"prefix": prefix,
		"limit":  1000,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to marshal list request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, listURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to create list request", err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "list request failed for prefix "+prefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(errors.ErrStorage,
			fmt.Sprintf("supabase list failed for prefix %s: status %d", prefix, resp.StatusCode), nil)
	}

	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to decode list response", err)
	}

	paths := make([]string, 0, len(objects))
	for _, o := range objects {
		paths = append(paths, o.Name)
	}
	return paths, nil
}

func (a *SupabaseAdapter) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, a.objectURL(path), nil)
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to create delete request", err)
	}
	a.setHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrStorage, "delete request failed for "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewAppError(errors.ErrNotFound, "object not found: "+path, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewAppError(errors.ErrStorage,
			fmt.Sprintf("supabase delete failed for %s: status %d", path, resp.StatusCode), nil)
	}
	return nil
}

func (a *SupabaseAdapter) Publish(ctx context.Context, path string, content []byte) error {
	return a.Save(ctx, PublishedPrefix+path, content)
}
