package main

import (
	"encoding/json"
	"errors"
	"net/http"
)

type RegisterPushTokenPayload struct {
	Token      string          `json:"token" validate:"required"`
	DeviceInfo json.RawMessage `json:"device_info"`
}

// registerPushTokenHandler godoc
//
//	@Summary		Register an Expo push token
//	@Description	Stores or refreshes the Expo push token for the authenticated user.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterPushTokenPayload	true	"Push token"
//	@Success		204		{string}	string						"No Content"
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/push-token [post]
func (app *application) registerPushTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	if err := app.store.PushTokens.AddOrUpdate(r.Context(), user.ID, payload.Token, payload.DeviceInfo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type BulkRemoveTokensPayload struct {
	Tokens []string `json:"tokens" validate:"required,min=1,dive,required"`
}

// bulkRemoveTokensHandler godoc
//
//	@Summary		Bulk remove push tokens
//	@Description	Deletes the listed Expo push tokens, typically ones Expo has flagged as dead. Admin only.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		BulkRemoveTokensPayload	true	"Tokens to remove"
//	@Success		204		{string}	string					"No Content"
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-token/bulk-remove [post]
func (app *application) bulkRemoveTokensHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil || !user.IsAdmin {
		app.forbiddenResponse(w, r, errors.New("admin privileges required"))
		return
	}

	var payload BulkRemoveTokensPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.RemoveByTokenList(r.Context(), payload.Tokens); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// logoutHandler godoc
//
//	@Summary		Logout
//	@Description	Revokes the stored refresh token for the authenticated user.
//	@Tags			users
//	@Produce		json
//	@Success		204	{string}	string	"No Content"
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
