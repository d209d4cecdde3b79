package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"flipper/pkg/httpx/reply"
	"flipper/pkg/httpx/req"
	"flipper/pkg/rest"
)

func (s Server) postScan(w http.ResponseWriter, r *http.Request) error {
	var body rest.ScanRequest
	if err := req.Read(r, &body); err != nil {
		return err
	}

	result, err := s.agent.Scan(r.Context(), newScanRequest(body))
	if err != nil {
		return fmt.Errorf("agent.Scan: %w", err)
	}

	reply.Data(r.Context(), w, http.StatusOK, newRESTScanResponse(result))

	return nil
}

func (s Server) getStatus(w http.ResponseWriter, r *http.Request) error {
	reply.Data(r.Context(), w, http.StatusOK, s.agent.Status(r.Context()))
	return nil
}

func (s Server) getInventory(w http.ResponseWriter, r *http.Request) error {
	reply.Data(r.Context(), w, http.StatusOK, s.agent.Inventory(r.Context()))
	return nil
}

func (s Server) getTransactions(w http.ResponseWriter, r *http.Request) error {
	reply.Data(r.Context(), w, http.StatusOK, s.agent.Transactions(r.Context()))
	return nil
}

func (s Server) postConfig(w http.ResponseWriter, r *http.Request) error {
	var body rest.ConfigRequest
	if err := req.Read(r, &body); err != nil {
		return err
	}

	if err := s.agent.Configure(r.Context(), newConfigUpdate(body)); err != nil {
		return fmt.Errorf("agent.Configure: %w", err)
	}

	reply.Data(r.Context(), w, http.StatusOK, rest.MessageResponse{Message: "configuration updated"})

	return nil
}

func (s Server) getListings(w http.ResponseWriter, r *http.Request) error {
	filter, err := newListingFilter(r.URL.Query())
	if err != nil {
		return err
	}

	reply.Data(r.Context(), w, http.StatusOK, s.agent.QueryListings(r.Context(), filter))

	return nil
}

func (s Server) postRelist(w http.ResponseWriter, r *http.Request) error {
	listings, err := s.agent.Relist(r.Context())
	if err != nil {
		return fmt.Errorf("agent.Relist: %w", err)
	}

	reply.Data(r.Context(), w, http.StatusOK, listings)

	return nil
}

func (s Server) postInventorySold(w http.ResponseWriter, r *http.Request) error {
	var body rest.SoldRequest
	if err := req.Read(r, &body); err != nil {
		return err
	}

	item, err := s.agent.MarkSold(r.Context(), chi.URLParam(r, "id"), *body.Price)
	if err != nil {
		return fmt.Errorf("agent.MarkSold: %w", err)
	}

	reply.Data(r.Context(), w, http.StatusOK, item)

	return nil
}
