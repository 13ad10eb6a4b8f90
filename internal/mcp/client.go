// Package mcp is the HTTP client for the remote recipe and
// shopping-list service. The service is externally authoritative: the
// client holds no cache, every read reflects current server state.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Recipe is one entry of the remote recipe catalog.
type Recipe struct {
	Name        string   `json:"name"`
	MealType    string   `json:"meal_type,omitempty"`
	Diet        string   `json:"diet,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Steps       string   `json:"steps,omitempty"`
}

// SearchFilter selects recipes by diet, meal type and/or name. Empty
// fields are left out of the query entirely.
type SearchFilter struct {
	Diet     string
	MealType string
	Name     string
}

type Client struct {
	baseURL       string
	httpClient    *http.Client
	healthTimeout time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: defaultRequestTimeout},
		healthTimeout: 5 * time.Second,
	}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchRecipes queries /search_recipes with exactly the non-empty
// filters and returns the response re-serialized as indented JSON.
func (c *Client) SearchRecipes(ctx context.Context, filter SearchFilter) (string, error) {
	query := url.Values{}
	if filter.Diet != "" {
		query.Set("diet", filter.Diet)
	}
	if filter.MealType != "" {
		query.Set("meal_type", filter.MealType)
	}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}

	return c.getJSON(ctx, "/search_recipes", query)
}

// SearchRecipeDetails looks up recipes by name and decodes them, for
// callers that need structured data rather than display text.
func (c *Client) SearchRecipeDetails(ctx context.Context, name string) ([]Recipe, error) {
	query := url.Values{}
	query.Set("name", name)

	raw, err := c.getJSON(ctx, "/search_recipes", query)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("mcp: decode recipes: %w", err)
	}

	return payload.Recipes, nil
}

// GetAllRecipes fetches the full catalog from /get_recipes.
func (c *Client) GetAllRecipes(ctx context.Context) (string, error) {
	return c.getJSON(ctx, "/get_recipes", nil)
}

// AddIngredients posts ingredients to the shopping list.
func (c *Client) AddIngredients(ctx context.Context, ingredients []string) (string, error) {
	return c.postJSON(ctx, "/add_ingredients", map[string]any{"ingredients": ingredients})
}

// RemoveIngredients removes the named ingredients from the shopping
// list. The service treats names not on the list as a no-op.
func (c *Client) RemoveIngredients(ctx context.Context, ingredients []string) (string, error) {
	return c.postJSON(ctx, "/remove_ingredients", map[string]any{"ingredients": ingredients})
}

// GetShoppingList fetches the current shopping list contents.
func (c *Client) GetShoppingList(ctx context.Context) (string, error) {
	return c.getJSON(ctx, "/get_shopping_list", nil)
}

// ClearShoppingList removes all items. Idempotent.
func (c *Client) ClearShoppingList(ctx context.Context) (string, error) {
	return c.postJSON(ctx, "/clear_shopping_list", nil)
}

// HealthCheck probes /get_recipes with a short timeout and returns the
// recipe count on success. Timeout, connection failure, bad status and
// unparseable body each produce a distinct error.
func (c *Client) HealthCheck(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_recipes", nil)
	if err != nil {
		return 0, fmt.Errorf("mcp: health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("mcp: health check timed out after %s", c.healthTimeout)
		}
		return 0, fmt.Errorf("mcp: cannot connect to server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("mcp: server responded with status %d", resp.StatusCode)
	}

	var payload struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("mcp: unexpected health check response: %w", err)
	}

	return len(payload.Recipes), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (string, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("mcp: build request %s: %w", path, err)
	}

	return c.do(req, path)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (string, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("mcp: encode request %s: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("mcp: build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mcp: %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mcp: read response %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("mcp: %s %s: unexpected status %d", req.Method, path, resp.StatusCode)
	}

	return prettyJSON(data, path)
}

// prettyJSON re-indents the service response without altering its
// content, so the model always sees readable text.
func prettyJSON(data []byte, path string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("mcp: malformed response from %s: %w", path, err)
	}
	return buf.String(), nil
}
