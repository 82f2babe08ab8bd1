package main

import (
	"net/http"
	"strconv"
)

// reverseGeocodeHandler godoc
//
//	@Summary		Reverse geocode a coordinate
//	@Description	Resolves a latitude/longitude pair to a postal address via the configured geocoder.
//	@Tags			geocode
//	@Produce		json
//	@Param			lat	query		number	true	"Latitude"
//	@Param			lng	query		number	true	"Longitude"
//	@Success		200	{object}	geocode.Address
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	ErrorBadRequestResponse
//	@Router			/geocode/reverse [get]
func (app *application) reverseGeocodeHandler(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	addr, err := app.geocoder.Resolve(r.Context(), lat, lng)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if addr == nil {
		writeJSONError(w, http.StatusNotFound, "no address found for coordinates")
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, addr); err != nil {
		app.internalServerError(w, r, err)
	}
}
