// mock-solver serves a synthetic one-bay, one-story frame over the solver
// sidecar API. End forces scale linearly with the applied factored loads,
// which makes combination envelopes easy to verify by hand.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/framestack/envelope-engine/pkg/solverapi"
)

type node struct {
	id      int
	x, y, z float64
}

type element struct {
	id    int
	nodeI int
	nodeJ int
}

var nodes = []node{
	{1, 0, 0, 0}, {2, 5, 0, 0}, {3, 0, 4, 0}, {4, 5, 4, 0},
	{5, 0, 0, 3}, {6, 5, 0, 3}, {7, 0, 4, 3}, {8, 5, 4, 3},
}

var elements = []element{
	// columns
	{1, 1, 5}, {2, 2, 6}, {3, 3, 7}, {4, 4, 8},
	// beams along X at the top slab
	{5, 5, 6}, {6, 7, 8},
	// beams along Y
	{7, 5, 7}, {8, 6, 8},
}

// model is the shared, mutable solver state: each solve overwrites the
// load level that the force extraction reads.
type model struct {
	mu        sync.Mutex
	loadLevel float64
	solved    bool
}

func (m *model) solve(factors map[string]float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, v := range factors {
		total += v
	}
	if total <= 0 {
		m.solved = false
		return false
	}
	m.loadLevel = total
	m.solved = true
	return true
}

func (m *model) forces(elementID int) ([]float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.solved {
		return nil, false
	}
	forces := make([]float64, 12)
	for i := range forces {
		sign := 1.0
		if i >= 6 {
			sign = -1.0
		}
		forces[i] = sign * m.loadLevel * (float64(elementID) + 0.1*float64(i%6+1)) * 1e-3
	}
	return forces, true
}

func main() {
	shared := &model{}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/v1/model/elements", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		ids := make([]int, 0, len(elements))
		for _, e := range elements {
			ids = append(ids, e.id)
		}
		writeJSON(w, solverapi.ElementsResponse{ElementIDs: ids})
	})

	mux.HandleFunc("/api/v1/model/nodes", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		var req solverapi.NodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for _, n := range nodes {
			if n.id == req.NodeID {
				writeJSON(w, solverapi.NodeResponse{X: n.x, Y: n.y, Z: n.z})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("/api/v1/model/endpoints", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		var req solverapi.ElementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for _, e := range elements {
			if e.id == req.ElementID {
				writeJSON(w, solverapi.EndpointsResponse{NodeI: e.nodeI, NodeJ: e.nodeJ})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("/api/v1/model/forces", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		var req solverapi.ElementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		forces, ok := shared.forces(req.ElementID)
		if !ok {
			w.WriteHeader(http.StatusConflict)
			return
		}
		writeJSON(w, solverapi.ForcesResponse{Forces: forces})
	})

	mux.HandleFunc("/api/v1/model/solve", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		var req solverapi.SolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if shared.solve(req.Factors) {
			writeJSON(w, solverapi.SolveResponse{OK: true})
			return
		}
		writeJSON(w, solverapi.SolveResponse{OK: false, Message: "no positive load factors"})
	})

	logger := log.New(log.Writer(), "mock-solver ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:    ":9090",
		Handler: logRequests(logger, mux),
	}

	logger.Println("listening on :9090")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func enforcePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
