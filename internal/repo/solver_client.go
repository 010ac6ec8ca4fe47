package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/framestack/envelope-engine/internal/cache"
	"github.com/framestack/envelope-engine/internal/models"
	"github.com/framestack/envelope-engine/pkg/solverapi"
)

// ErrIncompleteForces signals that the solver returned fewer than twelve
// end-force values for an element.
var ErrIncompleteForces = errors.New("incomplete force vector")

// SolverClient wraps the structural-solver sidecar HTTP API. Solve mutates
// the sidecar's shared model, so callers must serialize combinations.
type SolverClient struct {
	baseURL       string
	elementsPath  string
	nodesPath     string
	endpointsPath string
	forcesPath    string
	solvePath     string
	httpClient    *http.Client
	cache         cache.Provider
	geometryTTL   time.Duration
}

// NewSolverClient constructs a client targeting the configured sidecar.
// Geometry responses (element list, endpoints, node coordinates) are cached
// with geometryTTL because geometry does not change across combinations.
func NewSolverClient(baseURL, elementsPath, nodesPath, endpointsPath, forcesPath, solvePath string, timeout time.Duration, cacheProvider cache.Provider, geometryTTL time.Duration) *SolverClient {
	if cacheProvider == nil {
		cacheProvider = cache.NoopProvider{}
	}
	return &SolverClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		elementsPath:  elementsPath,
		nodesPath:     nodesPath,
		endpointsPath: endpointsPath,
		forcesPath:    forcesPath,
		solvePath:     solvePath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:       cacheProvider,
		geometryTTL: geometryTTL,
	}
}

// ListElementIDs returns every element id in the current model.
func (c *SolverClient) ListElementIDs(ctx context.Context) ([]int, error) {
	if c == nil {
		return nil, fmt.Errorf("solver client not initialised")
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("solver base URL not configured")
	}

	cacheKey := "solver:elements"
	if c.geometryTTL > 0 {
		if data, err := c.cache.Get(ctx, cacheKey); err == nil {
			var cached []int
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var response solverapi.ElementsResponse
	if err := c.postJSON(ctx, c.resolvePath(c.elementsPath), struct{}{}, &response); err != nil {
		return nil, fmt.Errorf("solver elements request failed: %w", err)
	}
	if len(response.ElementIDs) == 0 {
		return nil, fmt.Errorf("solver returned no elements")
	}

	if c.geometryTTL > 0 {
		if payload, err := json.Marshal(response.ElementIDs); err == nil {
			_ = c.cache.Set(ctx, cacheKey, payload, c.geometryTTL)
		}
	}
	return response.ElementIDs, nil
}

// NodeCoordinates returns one node's position.
func (c *SolverClient) NodeCoordinates(ctx context.Context, nodeID int) (models.Coord, error) {
	if c == nil {
		return models.Coord{}, fmt.Errorf("solver client not initialised")
	}

	cacheKey := "solver:node:" + strconv.Itoa(nodeID)
	if c.geometryTTL > 0 {
		if data, err := c.cache.Get(ctx, cacheKey); err == nil {
			var cached models.Coord
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var response solverapi.NodeResponse
	payload := solverapi.NodeRequest{NodeID: nodeID}
	if err := c.postJSON(ctx, c.resolvePath(c.nodesPath), payload, &response); err != nil {
		return models.Coord{}, fmt.Errorf("solver node request failed: %w", err)
	}

	coord := models.Coord{X: response.X, Y: response.Y, Z: response.Z}
	if c.geometryTTL > 0 {
		if data, err := json.Marshal(coord); err == nil {
			_ = c.cache.Set(ctx, cacheKey, data, c.geometryTTL)
		}
	}
	return coord, nil
}

// ElementEndpoints returns the end nodes of an element.
func (c *SolverClient) ElementEndpoints(ctx context.Context, elementID int) (int, int, error) {
	if c == nil {
		return 0, 0, fmt.Errorf("solver client not initialised")
	}

	cacheKey := "solver:endpoints:" + strconv.Itoa(elementID)
	if c.geometryTTL > 0 {
		if data, err := c.cache.Get(ctx, cacheKey); err == nil {
			var cached solverapi.EndpointsResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.NodeI, cached.NodeJ, nil
			}
		}
	}

	var response solverapi.EndpointsResponse
	payload := solverapi.ElementRequest{ElementID: elementID}
	if err := c.postJSON(ctx, c.resolvePath(c.endpointsPath), payload, &response); err != nil {
		return 0, 0, fmt.Errorf("solver endpoints request failed: %w", err)
	}

	if c.geometryTTL > 0 {
		if data, err := json.Marshal(response); err == nil {
			_ = c.cache.Set(ctx, cacheKey, data, c.geometryTTL)
		}
	}
	return response.NodeI, response.NodeJ, nil
}

// ElementEndForces returns an element's twelve end forces for the current
// solved state. Forces are never cached: they change with every solve.
func (c *SolverClient) ElementEndForces(ctx context.Context, elementID int) (models.ForceVector12, error) {
	if c == nil {
		return models.ForceVector12{}, fmt.Errorf("solver client not initialised")
	}

	var response solverapi.ForcesResponse
	payload := solverapi.ElementRequest{ElementID: elementID}
	if err := c.postJSON(ctx, c.resolvePath(c.forcesPath), payload, &response); err != nil {
		return models.ForceVector12{}, fmt.Errorf("solver forces request failed: %w", err)
	}

	forces, ok := models.NewForceVector(response.Forces)
	if !ok {
		return models.ForceVector12{}, fmt.Errorf("%w: element %d returned %d values", ErrIncompleteForces, elementID, len(response.Forces))
	}
	return forces, nil
}

// Solve applies the factored loads and runs the static analysis. The
// returned boolean is the solver's own success/failure signal.
func (c *SolverClient) Solve(ctx context.Context, applied models.AppliedLoads) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("solver client not initialised")
	}
	if c.baseURL == "" {
		return false, fmt.Errorf("solver base URL not configured")
	}

	factors := make(map[string]float64, len(applied))
	for lc, value := range applied {
		factors[string(lc)] = value
	}

	var response solverapi.SolveResponse
	if err := c.postJSON(ctx, c.resolvePath(c.solvePath), solverapi.SolveRequest{Factors: factors}, &response); err != nil {
		return false, fmt.Errorf("solver solve request failed: %w", err)
	}
	return response.OK, nil
}

func (c *SolverClient) resolvePath(p string) string {
	if c.baseURL == "" {
		return ""
	}
	cleaned := "/" + strings.TrimLeft(p, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL + cleaned
	}
	u.Path = path.Join(u.Path, cleaned)
	return u.String()
}

func (c *SolverClient) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	if endpoint == "" {
		return fmt.Errorf("empty endpoint")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("solver returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
