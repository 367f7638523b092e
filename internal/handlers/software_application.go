package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

const softwareApplicationFolder = "PORTFOLIO SOFTWARE APPLICATION IMAGES"

// AddApplication stores a software application with its uploaded icon.
func (h *Handler) AddApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid multipart form", err))
		return
	}

	header := formFile(r, "svg")
	if header == nil {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Software Application Icon/Image is required!"))
		return
	}
	name := r.FormValue("name")
	if name == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Please provide the software application's name!"))
		return
	}

	svg, err := h.Media.UploadFileFromHeader(r.Context(), header, softwareApplicationFolder)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload application icon", err))
		return
	}

	app := models.SoftwareApplication{
		CreatedAt: time.Now(),
		Name:      name,
		Svg:       svg,
	}
	res, err := h.DB.Collection("software_applications").InsertOne(r.Context(), app)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	app.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":             true,
		"message":             "New Software Application added successfully!",
		"softwareApplication": app,
	})
}

// DeleteApplication removes a software application and its icon.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var app models.SoftwareApplication
	err = h.DB.Collection("software_applications").FindOne(r.Context(), bson.M{"_id": id}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Software application not found or already deleted!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.Media.Destroy(r.Context(), app.Svg.PublicID); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to delete application icon", err))
		return
	}
	if _, err := h.DB.Collection("software_applications").DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Software application deleted successfully!",
	})
}

// GetAllApplications lists every software application.
func (h *Handler) GetAllApplications(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.DB.Collection("software_applications").Find(r.Context(), bson.M{})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apps := []models.SoftwareApplication{}
	if err := cursor.All(r.Context(), &apps); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":              true,
		"softwareApplications": apps,
	})
}
