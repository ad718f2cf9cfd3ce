package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/middleware"
	"nambikkai-store/services"
	"nambikkai-store/utils"
)

// respondError maps a service failure onto the API's status contract.
// Anything that is not a service error is an unexpected 500.
func respondError(w http.ResponseWriter, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		utils.RespondMessage(w, svcErr.HTTPStatus(), svcErr.Message)
		return
	}
	utils.RespondMessage(w, http.StatusInternalServerError, "Server error")
}

// identity pulls the authenticated caller out of the request context.
// On failure it writes the 401 itself and returns ok=false.
func identity(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, *utils.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, nil, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondMessage(w, http.StatusUnauthorized, "Invalid token identity")
		return primitive.NilObjectID, nil, false
	}
	return userID, claims, true
}

// pathID parses an ObjectID route variable.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}
