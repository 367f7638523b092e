package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

const skillFolder = "PORTFOLIO SKILL IMAGES"

// AddSkill stores a new skill with its uploaded icon.
func (h *Handler) AddSkill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid multipart form", err))
		return
	}

	header := formFile(r, "svg")
	if header == nil {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Skill Icon/Image is required!"))
		return
	}
	title := r.FormValue("title")
	proficiency := r.FormValue("proficiency")
	if title == "" || proficiency == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Please fill the entire form!"))
		return
	}

	svg, err := h.Media.UploadFileFromHeader(r.Context(), header, skillFolder)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload skill icon", err))
		return
	}

	skill := models.Skill{
		CreatedAt:   time.Now(),
		Title:       title,
		Proficiency: proficiency,
		Svg:         svg,
	}
	res, err := h.DB.Collection("skills").InsertOne(r.Context(), skill)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	skill.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "New Skill Added!",
		"skill":   skill,
	})
}

// UpdateSkill changes a skill's proficiency.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var req struct {
		Proficiency string `json:"proficiency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var skill models.Skill
	err = h.DB.Collection("skills").
		FindOneAndUpdate(r.Context(), bson.M{"_id": id}, bson.M{"$set": bson.M{"proficiency": req.Proficiency}}, opts).
		Decode(&skill)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Skill not found!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Skill Updated!",
		"skill":   skill,
	})
}

// DeleteSkill removes a skill and its icon from the media host.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var skill models.Skill
	err = h.DB.Collection("skills").FindOne(r.Context(), bson.M{"_id": id}).Decode(&skill)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Skill not found or already deleted!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.Media.Destroy(r.Context(), skill.Svg.PublicID); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to delete skill icon", err))
		return
	}
	if _, err := h.DB.Collection("skills").DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Skill Deleted!",
	})
}

// GetAllSkills lists every skill for the public portfolio.
func (h *Handler) GetAllSkills(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.DB.Collection("skills").Find(r.Context(), bson.M{})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	skills := []models.Skill{}
	if err := cursor.All(r.Context(), &skills); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"skills":  skills,
	})
}

// objectIDFromParam parses the {id} route parameter.
func objectIDFromParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.KindValidation, "Invalid id", err)
	}
	return id, nil
}
