package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/ledger"
	"github.com/rawblock/revelio-por/internal/por"
	"github.com/rawblock/revelio-por/internal/store"
	"github.com/rawblock/revelio-por/pkg/models"
)

// APIHandler wires the core orchestrator to HTTP, persisting and
// broadcasting the outcome of every epoch it runs.
type APIHandler struct {
	gens    *curve.Generators
	source  ledger.Source
	kExch   por.KExch
	dbStore *store.PostgresStore
	wsHub   *Hub
}

// SetupRouter mirrors the teacher's CORS-then-public-then-protected layout,
// with auth.go/ratelimit.go/websocket.go kept unchanged.
func SetupRouter(gens *curve.Generators, source ledger.Source, kExch por.KExch, dbStore *store.PostgresStore, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{
		gens:    gens,
		source:  source,
		kExch:   kExch,
		dbStore: dbStore,
		wsHub:   wsHub,
	}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
	}

	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(30, 5).Middleware())
	{
		auth.POST("/por/revelio", handler.handleProveRevelio)
		auth.POST("/por/simple", handler.handleProveSimple)
		auth.GET("/por/epochs/:id", handler.handleGetEpoch)
	}

	return r
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"engine":      "revelio-por",
		"dbConnected": h.dbStore != nil,
		"synthetic":   IsSyntheticEnabled(),
	})
}

func pointToDTO(p *curve.Point) models.PointDTO {
	return models.PointDTO(hex.EncodeToString(curve.CompressBytes(p)))
}

func scalarToDTO(s *curve.Scalar) models.ScalarDTO {
	b := s.Bytes()
	return models.ScalarDTO(hex.EncodeToString(b[:]))
}

func revelioBundleToDTO(bundle *por.RevelioBundle) models.RevelioBundleDTO {
	dto := models.RevelioBundleDTO{
		Gens: models.GeneratorsDTO{
			G:      pointToDTO(bundle.Gens.G),
			H:      pointToDTO(bundle.Gens.H),
			Gprime: pointToDTO(bundle.Gens.Gprime),
		},
	}
	for _, p := range bundle.AnonList {
		dto.AnonList = append(dto.AnonList, pointToDTO(p))
	}
	for _, p := range bundle.KeyImageList {
		dto.KeyImageList = append(dto.KeyImageList, pointToDTO(p))
	}
	for _, spk := range bundle.SpkList {
		dto.SpkList = append(dto.SpkList, models.RevelioProofDTO{
			C1: scalarToDTO(spk.C1),
			C2: scalarToDTO(spk.C2),
			S1: scalarToDTO(spk.S1),
			S2: scalarToDTO(spk.S2),
			S3: scalarToDTO(spk.S3),
		})
	}
	return dto
}

func simpleBundleToDTO(bundle *por.SimpleBundle) models.SimpleBundleDTO {
	dto := models.SimpleBundleDTO{
		Gens: models.GeneratorsDTO{
			G: pointToDTO(bundle.Gens.G),
			H: pointToDTO(bundle.Gens.H),
		},
		RepSpk: models.RepProofDTO{
			C:  scalarToDTO(bundle.RepSpk.C),
			S1: scalarToDTO(bundle.RepSpk.S1),
			S2: scalarToDTO(bundle.RepSpk.S2),
		},
	}
	for _, p := range bundle.OwnList {
		dto.OwnList = append(dto.OwnList, pointToDTO(p))
	}
	return dto
}

// handleProveRevelio builds, proves, verifies, persists, and broadcasts one
// Revelio epoch. POST /api/v1/por/revelio {anonSize, ownSize}.
func (h *APIHandler) handleProveRevelio(c *gin.Context) {
	var req struct {
		AnonSize int `json:"anonSize"`
		OwnSize  int `json:"ownSize"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	start := time.Now()
	state, err := por.BuildRevelio(ctx, h.gens, h.source, h.kExch, req.AnonSize, req.OwnSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bundle, err := por.ProveRevelio(state)
	proveMillis := time.Since(start).Milliseconds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	verifyStart := time.Now()
	verified, err := por.VerifyRevelio(bundle)
	verifyMillis := time.Since(verifyStart).Milliseconds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dto := revelioBundleToDTO(bundle)
	epochID := uuid.New()
	h.persistAndBroadcast(epochID, "revelio", req.AnonSize, req.OwnSize, verified, proveMillis, verifyMillis, dto)

	c.JSON(http.StatusOK, gin.H{
		"epochId":      epochID,
		"verified":     verified,
		"proveMillis":  proveMillis,
		"verifyMillis": verifyMillis,
		"bundle":       dto,
	})
}

// handleProveSimple builds, proves, verifies, persists, and broadcasts one
// Simple epoch. POST /api/v1/por/simple {ownSize}.
func (h *APIHandler) handleProveSimple(c *gin.Context) {
	var req struct {
		OwnSize int `json:"ownSize"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := time.Now()
	state, err := por.BuildSimple(h.gens, req.OwnSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bundle, err := por.ProveSimple(state)
	proveMillis := time.Since(start).Milliseconds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	verifyStart := time.Now()
	verified, err := por.VerifySimple(bundle)
	verifyMillis := time.Since(verifyStart).Milliseconds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dto := simpleBundleToDTO(bundle)
	epochID := uuid.New()
	h.persistAndBroadcast(epochID, "simple", req.OwnSize, req.OwnSize, verified, proveMillis, verifyMillis, dto)

	c.JSON(http.StatusOK, gin.H{
		"epochId":      epochID,
		"verified":     verified,
		"proveMillis":  proveMillis,
		"verifyMillis": verifyMillis,
		"bundle":       dto,
	})
}

func (h *APIHandler) persistAndBroadcast(epochID uuid.UUID, kind string, anonSize, ownSize int, verified bool, proveMillis, verifyMillis int64, dto any) {
	bundleJSON, err := json.Marshal(dto)
	if err != nil {
		log.Printf("failed to marshal bundle for epoch %s: %v", epochID, err)
		return
	}

	if h.dbStore != nil {
		rec := models.EpochRecord{
			ID:           epochID,
			Kind:         kind,
			AnonSize:     anonSize,
			OwnSize:      ownSize,
			Verified:     verified,
			ProveMillis:  proveMillis,
			VerifyMillis: verifyMillis,
			BundleJSON:   bundleJSON,
			CreatedAt:    time.Now(),
		}
		if err := h.dbStore.SaveEpoch(context.Background(), rec); err != nil {
			log.Printf("failed to persist epoch %s: %v", epochID, err)
		}
	}

	event := models.StreamEvent{
		EpochID:      epochID,
		Kind:         kind,
		Verified:     verified,
		ProveMillis:  proveMillis,
		VerifyMillis: verifyMillis,
	}
	if payload, err := json.Marshal(event); err == nil {
		h.wsHub.Broadcast(payload)
	}
}

// handleGetEpoch fetches a persisted epoch record. GET /api/v1/por/epochs/:id.
func (h *APIHandler) handleGetEpoch(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not connected"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid epoch id"})
		return
	}

	rec, err := h.dbStore.GetEpoch(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "epoch not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           rec.ID,
		"kind":         rec.Kind,
		"anonSize":     rec.AnonSize,
		"ownSize":      rec.OwnSize,
		"verified":     rec.Verified,
		"proveMillis":  rec.ProveMillis,
		"verifyMillis": rec.VerifyMillis,
		"createdAt":    rec.CreatedAt,
		"bundle":       json.RawMessage(rec.BundleJSON),
	})
}
