// Package api exposes the codecs over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/input"
	"github.com/guileen/keyguess/inspect"
	"github.com/guileen/keyguess/mvcc"
	"github.com/guileen/keyguess/storage"
)

const (
	// maxBodyBytes bounds request bodies; inputs are single keys or values.
	maxBodyBytes     = 1 << 20
	defaultScanLimit = 100
)

// EntryScanner is the part of storage.Store the scan endpoint uses.
type EntryScanner interface {
	Inspect(ctx context.Context, in *inspect.Inspector, prefix []byte, limit int) ([]storage.Entry, error)
}

// Handler serves the codec endpoints.
type Handler struct {
	inspector *inspect.Inspector
	metrics   *Metrics
	store     EntryScanner
}

// NewHandler creates a handler. metrics may be nil.
func NewHandler(inspector *inspect.Inspector, metrics *Metrics) *Handler {
	if inspector == nil {
		inspector = inspect.New()
	}
	return &Handler{inspector: inspector, metrics: metrics}
}

// WithStore enables GET /api/v1/store/scan over store.
func (h *Handler) WithStore(store EntryScanner) *Handler {
	h.store = store
	return h
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.instrument("GET", "/api/v1/health", h.Health))

		r.Post("/memcomparable/encode", h.instrument("POST", "/api/v1/memcomparable/encode", h.EncodeMemcomparable))
		r.Post("/memcomparable/decode", h.instrument("POST", "/api/v1/memcomparable/decode", h.DecodeMemcomparable))
		r.Post("/varint/encode", h.instrument("POST", "/api/v1/varint/encode", h.EncodeVarint))
		r.Post("/varint/decode", h.instrument("POST", "/api/v1/varint/decode", h.DecodeVarint))
		r.Post("/endian/encode", h.instrument("POST", "/api/v1/endian/encode", h.EncodeEndian))
		r.Post("/endian/decode", h.instrument("POST", "/api/v1/endian/decode", h.DecodeEndian))
		r.Post("/record/parse", h.instrument("POST", "/api/v1/record/parse", h.ParseRecord))
		r.Post("/record/encode", h.instrument("POST", "/api/v1/record/encode", h.EncodeRecord))
		r.Post("/write/parse", h.instrument("POST", "/api/v1/write/parse", h.ParseWrite))
		r.Post("/write/encode", h.instrument("POST", "/api/v1/write/encode", h.EncodeWrite))
		r.Post("/guess", h.instrument("POST", "/api/v1/guess", h.Guess))

		if h.store != nil {
			r.Get("/store/scan", h.instrument("GET", "/api/v1/store/scan", h.ScanStore))
		}
	})
}

func (h *Handler) instrument(method, endpoint string, fn http.HandlerFunc) http.HandlerFunc {
	if h.metrics == nil {
		return fn
	}
	return h.metrics.InstrumentHandler(method, endpoint, fn)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) EncodeMemcomparable(w http.ResponseWriter, r *http.Request) {
	raw, notation, ok := h.readInput(w, r)
	if !ok {
		return
	}
	start := time.Now()
	out := codec.EncodeBytes(raw)
	h.observe("memcomparable_encode", len(raw), start, nil)
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(out), Notation: string(notation)})
}

func (h *Handler) DecodeMemcomparable(w http.ResponseWriter, r *http.Request) {
	raw, notation, ok := h.readInput(w, r)
	if !ok {
		return
	}
	start := time.Now()
	out, err := codec.DecodeBytes(raw)
	h.observe("memcomparable_decode", len(raw), start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(out), Notation: string(notation)})
}

func (h *Handler) EncodeVarint(w http.ResponseWriter, r *http.Request) {
	var req VarintEncodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start := time.Now()
	out := codec.EncodeUvarint(req.Value)
	h.observe("varint_encode", -1, start, nil)
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(out)})
}

func (h *Handler) DecodeVarint(w http.ResponseWriter, r *http.Request) {
	raw, _, ok := h.readInput(w, r)
	if !ok {
		return
	}
	start := time.Now()
	v, n, err := codec.DecodeUvarint(raw)
	h.observe("varint_decode", len(raw), start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VarintDecodeResponse{Value: v, Width: n})
}

func (h *Handler) EncodeEndian(w http.ResponseWriter, r *http.Request) {
	var req EndianEncodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start := time.Now()
	out, err := codec.EncodeUint64(req.Order, req.Value)
	h.observe("endian_encode", -1, start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(out)})
}

func (h *Handler) DecodeEndian(w http.ResponseWriter, r *http.Request) {
	var req EndianDecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	raw, err := input.Parse(req.Input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	start := time.Now()
	v, err := codec.DecodeUint64(req.Order, raw)
	h.observe("endian_decode", len(raw), start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EndianDecodeResponse{Value: v})
}

func (h *Handler) ParseRecord(w http.ResponseWriter, r *http.Request) {
	raw, _, ok := h.readInput(w, r)
	if !ok {
		return
	}
	start := time.Now()
	rec, err := codec.ParseRecord(raw)
	h.observe("record_parse", len(raw), start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordResponse{Record: rec, Key: rec.String()})
}

func (h *Handler) EncodeRecord(w http.ResponseWriter, r *http.Request) {
	var rec codec.Record
	if !decodeBody(w, r, &rec) {
		return
	}
	start := time.Now()
	out := codec.EncodeRecord(rec)
	h.observe("record_encode", -1, start, nil)
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(out)})
}

// ParseWrite decodes a write record; ?trace=true adds field spans.
func (h *Handler) ParseWrite(w http.ResponseWriter, r *http.Request) {
	raw, _, ok := h.readInput(w, r)
	if !ok {
		return
	}
	var tr *mvcc.Trace
	if trace, _ := strconv.ParseBool(r.URL.Query().Get("trace")); trace {
		tr = &mvcc.Trace{}
	}

	start := time.Now()
	rec, n, err := mvcc.ParseWritePrefix(raw, tr)
	h.observe("write_parse", len(raw), start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := WriteParseResponse{Write: rec, Unparsed: len(raw) - n}
	if tr != nil {
		resp.Spans = tr.Spans
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) EncodeWrite(w http.ResponseWriter, r *http.Request) {
	var req WriteEncodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var short []byte
	if req.ShortValue != nil {
		var err error
		if short, err = input.Parse(*req.ShortValue); err != nil {
			writeError(w, r, err)
			return
		}
	}

	start := time.Now()
	rec, err := mvcc.NewWrite(req.WriteType, mvcc.TimeStamp(req.StartTS), short)
	if err == nil {
		rec.HasOverlappedRollback = req.HasOverlappedRollback
		if req.GCFence != nil {
			rec.SetGCFence(mvcc.TimeStamp(*req.GCFence))
		}
	}
	h.observe("write_encode", -1, start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BytesResponse{Output: NewBytes(rec.ToBytes())})
}

func (h *Handler) Guess(w http.ResponseWriter, r *http.Request) {
	raw, _, ok := h.readInput(w, r)
	if !ok {
		return
	}
	start := time.Now()
	report := h.inspector.Guess(raw)
	h.observe("guess", len(raw), start, nil)
	writeJSON(w, http.StatusOK, report)
}

// ScanStore decodes stored pairs. Query parameters: prefix (any input
// notation, default empty) and limit (default 100).
func (h *Handler) ScanStore(w http.ResponseWriter, r *http.Request) {
	var prefix []byte
	if p := r.URL.Query().Get("prefix"); p != "" {
		var err error
		if prefix, err = input.Parse(p); err != nil {
			writeError(w, r, err)
			return
		}
	}
	limit := getIntQueryParam(r, "limit", defaultScanLimit)

	start := time.Now()
	entries, err := h.store.Inspect(r.Context(), h.inspector, prefix, limit)
	h.observe("store_scan", -1, start, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	writeJSON(w, http.StatusOK, ScanResponse{Entries: entries, Count: len(entries)})
}

func (h *Handler) observe(op string, inputLen int, start time.Time, err error) {
	if h.metrics == nil {
		return
	}
	code := ""
	if err != nil {
		code = errors.Code(err)
	}
	h.metrics.RecordCodecOperation(op, inputLen, code, time.Since(start))
}

// readInput decodes an InputRequest body and parses its bytes.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) ([]byte, input.Notation, bool) {
	var req InputRequest
	if !decodeBody(w, r, &req) {
		return nil, "", false
	}
	raw, notation, err := input.Detect(req.Input)
	if err != nil {
		writeError(w, r, err)
		return nil, "", false
	}
	return raw, notation, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, errors.Wrapf(err, errors.ErrCodeValidation, "decode", "invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	valueStr := r.URL.Query().Get(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// writeError maps coded errors to 400 and anything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	code := errors.Code(err)
	if code == errors.ErrCodeUnknown || code == errors.ErrCodeStorage {
		status = http.StatusInternalServerError
		errors.LogError(r.Context(), err)
	} else {
		errors.LogWarning(r.Context(), err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
