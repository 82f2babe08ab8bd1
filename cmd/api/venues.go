package main

import (
	"net/http"
	"strconv"

	"sportmap/internal/service"
	"sportmap/internal/store"

	"github.com/go-chi/chi/v5"
)

type VenuePayload struct {
	Name             string   `json:"name" validate:"required,max=100"`
	Description      string   `json:"description" validate:"max=1000"`
	Latitude         *float64 `json:"latitude" validate:"required"`
	Longitude        *float64 `json:"longitude" validate:"required"`
	Address          *string  `json:"address,omitempty" validate:"omitempty,max=255"`
	City             string   `json:"city" validate:"max=100"`
	Province         string   `json:"province" validate:"max=100"`
	Region           string   `json:"region" validate:"max=100"`
	SportType        string   `json:"sport_type" validate:"max=50"`
	SurfaceType      *string  `json:"surface_type,omitempty" validate:"omitempty,max=50"`
	VenueType        *string  `json:"venue_type,omitempty" validate:"omitempty,max=50"`
	IsPublic         *bool    `json:"is_public,omitempty"`
	HasLighting      bool     `json:"has_lighting"`
	HasChangingRooms bool     `json:"has_changing_rooms"`
	HasParking       bool     `json:"has_parking"`
	OpeningHours     *string  `json:"opening_hours,omitempty" validate:"omitempty,max=255"`
	Prices           *string  `json:"prices,omitempty" validate:"omitempty,max=255"`
}

func (p VenuePayload) toInput() service.VenueInput {
	return service.VenueInput{
		Name:             p.Name,
		Description:      p.Description,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Address:          p.Address,
		City:             p.City,
		Province:         p.Province,
		Region:           p.Region,
		SportType:        p.SportType,
		SurfaceType:      p.SurfaceType,
		VenueType:        p.VenueType,
		IsPublic:         p.IsPublic,
		HasLighting:      p.HasLighting,
		HasChangingRooms: p.HasChangingRooms,
		HasParking:       p.HasParking,
		OpeningHours:     p.OpeningHours,
		Prices:           p.Prices,
	}
}

// ListVenues godoc
//
//	@Summary		List venues
//	@Description	Lists venues, newest first, optionally filtered. City, province and region match substrings case-insensitively; surface_type, venue_type and sport_type match exactly.
//	@Tags			Venue
//	@Produce		json
//	@Param			city			query		string	false	"City substring"
//	@Param			province		query		string	false	"Province substring"
//	@Param			region			query		string	false	"Region substring"
//	@Param			surface_type	query		string	false	"Surface type"
//	@Param			venue_type		query		string	false	"Venue type"
//	@Param			sport_type		query		string	false	"Sport type"
//	@Success		200				{array}		store.Venue
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	queryParam := func(key string) *string {
		if value := q.Get(key); value != "" {
			return &value
		}
		return nil
	}

	filter := store.VenueFilter{
		City:        queryParam("city"),
		Province:    queryParam("province"),
		Region:      queryParam("region"),
		SurfaceType: queryParam("surface_type"),
		VenueType:   queryParam("venue_type"),
		SportType:   queryParam("sport_type"),
	}

	venues, err := app.services.Venues.List(r.Context(), filter)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}
	if venues == nil {
		venues = []store.Venue{}
	}

	if err := app.jsonResponse(w, http.StatusOK, venues); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetVenue godoc
//
//	@Summary		Get one venue
//	@Description	Returns a venue with its owner name and image collection.
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		int64	true	"Venue ID"
//	@Success		200		{object}	store.Venue
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := app.services.Venues.Get(r.Context(), venueID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// CreateVenue godoc
//
//	@Summary		Register a venue
//	@Description	Registers a new venue owned by the authenticated user.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		VenuePayload	true	"Venue details"
//	@Success		201		{object}	store.Venue
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/venues [post]
func (app *application) createVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload VenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	venue, err := app.services.Venues.Create(r.Context(), payload.toInput(), user)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateVenue godoc
//
//	@Summary		Update a venue
//	@Description	Overwrites all mutable fields of the venue.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		int64			true	"Venue ID"
//	@Param			payload	body		VenuePayload	true	"Venue details"
//	@Success		200		{object}	store.Venue
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID} [put]
func (app *application) updateVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload VenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	venue, err := app.services.Venues.Update(r.Context(), venueID, payload.toInput(), user)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteVenue godoc
//
//	@Summary		Delete a venue
//	@Description	Deletes a venue with its images and reports. Allowed for the owner or an admin; everyone else receives the same not-found response as for a missing id.
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path	int64	true	"Venue ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID} [delete]
func (app *application) deleteVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.services.Venues.Delete(r.Context(), venueID, user); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
