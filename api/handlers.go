package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seenimoa/smebench/internal/benchmark"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "ok",
			"version":    s.version,
			"uptime_sec": int(time.Since(s.started).Seconds()),
			"ws_clients": s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleBenchmarkHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "healthy",
			"service":    "benchmark-api",
			"version":    s.version,
			"source":     s.engine.Generator.Name(),
			"cache_size": s.engine.Repository.CacheSize(),
			"industries": len(benchmark.Industries()),
		},
	})
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	industries := benchmark.Industries()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    IndustriesResponse{Industries: industries, Count: len(industries)},
	})
}

func (s *Server) handleIndustryInfo(w http.ResponseWriter, r *http.Request) {
	industry := strings.ToLower(chi.URLParam(r, "industry"))
	info, err := benchmark.IndustryDetails(industry)
	if err != nil {
		writeError(w, http.StatusNotFound, string(benchmark.KindValidation), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: info})
}

func (s *Server) handleIndustryMetrics(w http.ResponseWriter, r *http.Request) {
	industry := strings.ToLower(chi.URLParam(r, "industry"))
	metrics := benchmark.Metrics(industry)
	if len(metrics) == 0 {
		writeError(w, http.StatusNotFound, string(benchmark.KindValidation),
			(&benchmark.ErrUnsupportedIndustry{Industry: industry}).Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    MetricsResponse{Industry: industry, Metrics: metrics, Count: len(metrics)},
	})
}

func (s *Server) handleSeriesData(w http.ResponseWriter, r *http.Request) {
	var req SeriesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.normalize()
	if err := apiValidate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(benchmark.KindValidation), validationMessage(err))
		return
	}
	mreq, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, string(benchmark.KindValidation), err.Error())
		return
	}

	series, err := s.engine.Repository.Series(r.Context(), mreq)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.wsHub.Broadcast(WSMessage{
		Type: EventSeriesGenerated,
		Data: map[string]any{
			"industry":     mreq.Industry,
			"company_size": mreq.CompanySize,
			"region":       mreq.Region,
			"series":       len(series),
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: series})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.normalize()
	if err := apiValidate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(benchmark.KindValidation), validationMessage(err))
		return
	}
	mreq, period, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, string(benchmark.KindValidation), err.Error())
		return
	}

	batch, err := s.engine.Comparator.CompareMany(r.Context(), req.UserValues, mreq, period)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	resp := CompareResponse{
		Results: make([]ComparisonView, 0, len(batch.Results)),
		Skipped: batch.Skipped,
	}
	for _, res := range batch.Results {
		resp.Results = append(resp.Results, ComparisonView{
			ComparisonResult:   res,
			InterpretationText: res.Summary(),
		})
	}

	s.wsHub.Broadcast(WSMessage{
		Type: EventComparisonComplete,
		Data: map[string]any{
			"industry": mreq.Industry,
			"compared": len(resp.Results),
			"skipped":  len(resp.Skipped),
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.engine.Repository.ClearCache()
	s.wsHub.Broadcast(WSMessage{Type: EventCacheCleared})
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"status": "success", "message": "Cache cleared"},
	})
}

// decodeBody reads a JSON body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, string(benchmark.KindValidation), "invalid request body")
		return false
	}
	return true
}
