package main

import (
	"net/http"
)

type CreateReportPayload struct {
	ReportType  string  `json:"report_type" validate:"required,oneof=does-not-exist incorrect-info other"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=10,max=500"`
}

// createReport godoc
//
//	@Summary		Report a venue
//	@Description	Files a report against a venue. A user may report a given venue only once.
//	@Tags			Report
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		int64				true	"Venue ID"
//	@Param			payload	body		CreateReportPayload	true	"Report details"
//	@Success		201		{object}	store.Report
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	error	"Already reported"
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/reports [post]
func (app *application) createReportHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReportPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	report, err := app.services.Reports.File(r.Context(), venueID, user, payload.ReportType, payload.Description)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, report); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVenueReports godoc
//
//	@Summary		List a venue's reports
//	@Description	Returns the venue's reports, newest first. Restricted to the venue owner and admins.
//	@Tags			Report
//	@Produce		json
//	@Param			venueID	path		int64	true	"Venue ID"
//	@Success		200		{array}		store.Report
//	@Failure		403		{object}	error
//	@Failure		404		{object}	ErrorBadRequestResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID}/reports [get]
func (app *application) getVenueReportsHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := parseIDParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	reports, err := app.services.Reports.ListForVenue(r.Context(), venueID, user)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reports); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAllReports godoc
//
//	@Summary		List all reports
//	@Description	Returns every report across all venues, newest first. Admin only.
//	@Tags			Report
//	@Produce		json
//	@Success		200	{array}		store.Report
//	@Failure		403	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reports [get]
func (app *application) getAllReportsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	reports, err := app.services.Reports.ListAll(r.Context(), user)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reports); err != nil {
		app.internalServerError(w, r, err)
	}
}
