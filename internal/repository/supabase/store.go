package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// Store talks to the Supabase PostgREST API. Each collection is a table with an id
// text primary key and a jsonb data column.
type Store struct {
	httpClient *resty.Client
}

// NewStore builds a PostgREST client authenticated with the project API key.
func NewStore(cfg config.SupabaseConfig) (*Store, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase url and api key are required")
	}
	base := strings.TrimSuffix(cfg.URL, "/")
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Store{httpClient: restyClient}, nil
}

type row struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// apiError is the PostgREST error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (s *Store) Get(ctx context.Context, c repository.Collection, id string) ([]byte, error) {
	var rows []row
	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "id,data", "id": "eq." + id}).
		SetResult(&rows).
		SetError(apiErr).
		Get("/" + string(c))
	if err := check(resp, err, apiErr, "get "+string(c)); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return rows[0].Data, nil
}

func (s *Store) List(ctx context.Context, c repository.Collection) ([][]byte, error) {
	var rows []row
	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "id,data", "order": "id.asc"}).
		SetResult(&rows).
		SetError(apiErr).
		Get("/" + string(c))
	if err := check(resp, err, apiErr, "list "+string(c)); err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Data)
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, c repository.Collection, id string, doc []byte) error {
	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody([]row{{ID: id, Data: doc}}).
		SetError(apiErr).
		Post("/" + string(c))
	return check(resp, err, apiErr, "put "+string(c))
}

func (s *Store) Delete(ctx context.Context, c repository.Collection, id string) error {
	var rows []row
	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetResult(&rows).
		SetError(apiErr).
		Delete("/" + string(c))
	if err := check(resp, err, apiErr, "delete "+string(c)); err != nil {
		return err
	}
	if len(rows) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	var rows []row
	apiErr := new(apiError)
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"select": "id", "limit": "1"}).
		SetResult(&rows).
		SetError(apiErr).
		Get("/" + string(repository.Vendors))
	return check(resp, err, apiErr, "ping")
}

func (s *Store) Close() error { return nil }

func check(resp *resty.Response, err error, apiErr *apiError, op string) error {
	if err != nil {
		return fmt.Errorf("supabase %s: %w", op, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("supabase %s: status=%d, code=%s, message=%s", op, resp.StatusCode(), apiErr.Code, apiErr.Message)
	}
	return nil
}
