package main

import (
	"fmt"
	"net/http"

	"sportmap/internal/service"
)

// uploadVenueImage godoc
//
//	@Summary		Attach an image to a venue
//	@Description	Uploads a single image (jpg, jpeg, png or gif, at most 5 MiB). The venue's first image becomes its primary photo.
//	@Tags			Image
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			venueID	path		int64	true	"Venue ID"
//	@Param			image	formData	file	true	"Image file"
//	@Success		201		{object}	store.Image
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/images [post]
func (app *application) uploadVenueImageHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// one slack megabyte so an oversized payload is rejected by the
	// service with a proper message instead of a connection reset
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required: %w", err))
		return
	}
	defer file.Close()

	user := getUserFromContext(r)

	upload := service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}

	image, err := app.services.Images.Attach(r.Context(), venueID, user, upload)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, image); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteVenueImage godoc
//
//	@Summary		Delete an image
//	@Description	Removes an image. Only its uploader may delete it. If the primary image is removed, the oldest remaining image is promoted.
//	@Tags			Image
//	@Produce		json
//	@Param			imageID	path	int64	true	"Image ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		403		{object}	error
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/images/{imageID} [delete]
func (app *application) deleteVenueImageHandler(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseIDParam(r, "imageID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.services.Images.Remove(r.Context(), imageID, user); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setPrimaryImage godoc
//
//	@Summary		Set a venue's primary image
//	@Description	Marks the given image as the venue's representative photo. Idempotent.
//	@Tags			Image
//	@Produce		json
//	@Param			venueID	path	int64	true	"Venue ID"
//	@Param			imageID	path	int64	true	"Image ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/images/{imageID}/primary [put]
func (app *application) setPrimaryImageHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	imageID, err := parseIDParam(r, "imageID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.services.Images.SetPrimary(r.Context(), venueID, imageID, user); err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
