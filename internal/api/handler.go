package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contactkeval/option-lattice/internal/logger"
	"github.com/contactkeval/option-lattice/internal/pricing"
)

// PriceRequest mirrors the arguments of pricing.CalculateOptionPriceAndGreeks.
type PriceRequest struct {
	Spot     float64 `json:"s0" binding:"required"`
	Strike   float64 `json:"k" binding:"required"`
	Rate     float64 `json:"r"`
	Maturity float64 `json:"t" binding:"required"`
	Steps    int     `json:"n" binding:"required"`
	UpProb   float64 `json:"pu"`
	DownProb float64 `json:"pd"`
	Div      float64 `json:"div"`
	Sigma    float64 `json:"sigma" binding:"required"`
	Type     string  `json:"options_type" binding:"required"`
	American bool    `json:"is_am"`
}

// PriceResponse carries the result of one request.
type PriceResponse struct {
	RequestID string         `json:"request_id"`
	Scheme    string         `json:"scheme"`
	Result    pricing.Result `json:"result"`
}

// ErrorResponse is returned for rejected or failed requests.
type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Greek     string `json:"greek,omitempty"`
}

// PricingHandler serves the REST surface of a Pricer.
type PricingHandler struct {
	pricer *pricing.Pricer
}

func NewPricingHandler(p *pricing.Pricer) *PricingHandler {
	return &PricingHandler{pricer: p}
}

// RegisterRoutes binds the handler to a gin engine.
func (h *PricingHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/price", h.Price)
	r.GET("/health", h.Health)
}

// NewRouter returns a gin engine with recovery and the pricing routes.
func NewRouter(p *pricing.Pricer, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	NewPricingHandler(p).RegisterRoutes(r)
	return r
}

// Price handles POST /price.
func (h *PricingHandler) Price(c *gin.Context) {
	id := uuid.NewString()
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{RequestID: id, Error: err.Error()})
		return
	}

	start := time.Now()
	o, err := pricing.NewOptionParams(req.Spot, req.Strike, req.Rate, req.Maturity, req.Steps,
		req.UpProb, req.DownProb, req.Div, req.Sigma, req.Type, req.American)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	res, err := h.pricer.Price(o)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	logger.With("request_id", id, "scheme", h.pricer.Scheme().String()).
		Debug("priced", "type", o.Type, "american", o.American, "elapsed", time.Since(start))
	c.JSON(http.StatusOK, PriceResponse{RequestID: id, Scheme: h.pricer.Scheme().String(), Result: res})
}

// Health handles GET /health.
func (h *PricingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"scheme":    h.pricer.Scheme().String(),
		"timestamp": time.Now().Unix(),
	})
}

func (h *PricingHandler) fail(c *gin.Context, id string, err error) {
	resp := ErrorResponse{RequestID: id, Error: err.Error()}
	var ge *pricing.GreekError
	if errors.As(err, &ge) {
		resp.Greek = string(ge.Greek)
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("request %s failed: %v", id, err)
	} else {
		logger.Infof("request %s rejected: %v", id, err)
	}
	c.JSON(status, resp)
}

// statusFor maps pricing errors to HTTP status codes. A GreekError is checked
// first because it may wrap an invalid-parameter cause from a bumped lattice.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrGreekComputationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricing.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, pricing.ErrNumericalInstability):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
