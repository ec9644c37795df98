// Package rest binds user gestures to the shop controller over HTTP. It
// holds no business rules: every handler decodes a request, invokes one
// controller method, and encodes the result.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	cartdomain "github.com/nightscoops/shopcore/internal/cart/domain"
	"github.com/nightscoops/shopcore/internal/pricing"
	shopapp "github.com/nightscoops/shopcore/internal/shop/app"
	"github.com/nightscoops/shopcore/internal/shop/domain"
)

var errInvalidBody = errors.New("invalid request body")

type Server struct {
	ctrl *shopapp.Controller
	log  *slog.Logger
}

func NewServer(ctrl *shopapp.Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{ctrl: ctrl, log: log}
}

// Register attaches the shop routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/catalog/select", s.handleCatalogSelect)
	mux.HandleFunc("GET /v1/customize", s.handleDialogState)
	mux.HandleFunc("POST /v1/customize/confirm", s.handleConfirm)
	mux.HandleFunc("POST /v1/customize/cancel", s.handleCancel)
	mux.HandleFunc("POST /v1/builder/submit", s.handleBuilderSubmit)
	mux.HandleFunc("POST /v1/cart/lines", s.handleAddLine)
	mux.HandleFunc("GET /v1/cart", s.handleGetCart)
	mux.HandleFunc("DELETE /v1/cart/lines/{id}", s.handleRemoveLine)
	mux.HandleFunc("POST /v1/cart/clear", s.handleClearCart)
	mux.HandleFunc("POST /v1/cart/checkout", s.handleCheckout)
	mux.HandleFunc("GET /v1/preferences/flavors", s.handleFlavorHistory)
	mux.HandleFunc("GET /v1/preferences/stats", s.handlePreferenceStats)
}

type selectRequest struct {
	Name           string `json:"name"`
	BasePriceCents int64  `json:"base_price_cents"`
}

func (s *Server) handleCatalogSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("item name is required"))
		return
	}

	sessionID := s.ctrl.OpenCustomize(domain.Selection{
		Name:      req.Name,
		BasePrice: pricing.Cents(req.BasePriceCents),
	})
	s.writeJSON(w, http.StatusOK, map[string]any{
		"dialog_open": true,
		"session_id":  sessionID.String(),
		"item":        req.Name,
	})
}

func (s *Server) handleDialogState(w http.ResponseWriter, r *http.Request) {
	sessionID, item, open := s.ctrl.DialogOpen()
	resp := map[string]any{"dialog_open": open}
	if open {
		resp["session_id"] = sessionID.String()
		resp["item"] = item
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type confirmRequest struct {
	Base     string   `json:"base"`
	Scoops   int      `json:"scoops"`
	Toppings []string `json:"toppings"`
	Notes    string   `json:"notes"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	line, ok := s.ctrl.Confirm(domain.CustomizeForm{
		Base:     req.Base,
		Scoops:   req.Scoops,
		Toppings: req.Toppings,
		Notes:    req.Notes,
	})
	if !ok {
		// No open session: inert by contract, not an error.
		s.writeJSON(w, http.StatusOK, map[string]any{"added": false})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"added": true, "line": toLineView(line)})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Cancel()
	s.writeJSON(w, http.StatusOK, map[string]any{"dialog_open": false})
}

type builderRequest struct {
	Base     string   `json:"base"`
	Flavor1  string   `json:"flavor1"`
	Flavor2  string   `json:"flavor2"`
	Toppings []string `json:"toppings"`
	Notes    string   `json:"notes"`
}

func (s *Server) handleBuilderSubmit(w http.ResponseWriter, r *http.Request) {
	var req builderRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	line := s.ctrl.SubmitBuilder(domain.BuilderForm{
		Base:     req.Base,
		Flavor1:  req.Flavor1,
		Flavor2:  req.Flavor2,
		Toppings: req.Toppings,
		Notes:    req.Notes,
	})
	s.writeJSON(w, http.StatusOK, map[string]any{"added": true, "line": toLineView(line)})
}

type addLineRequest struct {
	Name       string   `json:"name"`
	Base       string   `json:"base"`
	Scoops     int      `json:"scoops"`
	Toppings   []string `json:"toppings"`
	Notes      string   `json:"notes"`
	PriceCents int64    `json:"price_cents"`
}

func (s *Server) handleAddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("line name is required"))
		return
	}
	if req.PriceCents < 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	line := s.ctrl.AddToCart(cartdomain.Line{
		Name:     req.Name,
		Base:     req.Base,
		Scoops:   req.Scoops,
		Toppings: req.Toppings,
		Notes:    req.Notes,
		Price:    pricing.Cents(req.PriceCents),
	})
	s.writeJSON(w, http.StatusOK, map[string]any{"added": true, "line": toLineView(line)})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.cartView())
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid line id"))
		return
	}

	removed := s.ctrl.RemoveLine(cartdomain.LineID(id))
	view := s.cartView()
	view["removed"] = removed
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ClearCart()
	s.writeJSON(w, http.StatusOK, s.cartView())
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	// Demo storefront: checkout is a stub on purpose.
	s.writeJSON(w, http.StatusNotImplemented, map[string]any{
		"message": "checkout is a demo stub",
		"total":   s.ctrl.CartTotal().String(),
	})
}

func (s *Server) handleFlavorHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ctrl.FlavorHistory())
}

func (s *Server) handlePreferenceStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ctrl.PreferenceStats())
}

type lineView struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Base       string   `json:"base"`
	Scoops     int      `json:"scoops"`
	Toppings   []string `json:"toppings"`
	Notes      string   `json:"notes,omitempty"`
	PriceCents int64    `json:"price_cents"`
	Price      string   `json:"price"`
}

// toLineView renders a line for JSON responses. Display position is the
// array index in cart views; lines carry no positional identity themselves.
func toLineView(l cartdomain.Line) lineView {
	return lineView{
		ID:         int64(l.ID),
		Name:       l.Name,
		Base:       l.Base,
		Scoops:     l.Scoops,
		Toppings:   l.Toppings,
		Notes:      l.Notes,
		PriceCents: int64(l.Price),
		Price:      l.Price.String(),
	}
}

func (s *Server) cartView() map[string]any {
	lines := s.ctrl.CartLines()
	views := make([]lineView, 0, len(lines))
	var total pricing.Cents
	for _, l := range lines {
		views = append(views, toLineView(l))
		total += l.Price
	}
	return map[string]any{
		"lines":       views,
		"total_cents": int64(total),
		"total":       total.String(),
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", slog.Any("err", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
