package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

type addTimelineRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	From        string `json:"from"`
	To          string `json:"to"`
}

// AddTimeline stores a new timeline entry.
func (h *Handler) AddTimeline(w http.ResponseWriter, r *http.Request) {
	var req addTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}
	if req.Title == "" || req.Description == "" || req.From == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Title, Description and Starting Point are required!"))
		return
	}

	entry := models.Timeline{
		CreatedAt:   time.Now(),
		Title:       req.Title,
		Description: req.Description,
		Timeline:    models.TimelineRange{From: req.From, To: req.To},
	}
	res, err := h.DB.Collection("timelines").InsertOne(r.Context(), entry)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "Timeline Added!",
		"timeline": entry,
	})
}

// DeleteTimeline removes a timeline entry.
func (h *Handler) DeleteTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	res, err := h.DB.Collection("timelines").DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if res.DeletedCount == 0 {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Timeline not found or already deleted!"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Timeline Deleted!",
	})
}

// GetAllTimelines lists every timeline entry.
func (h *Handler) GetAllTimelines(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.DB.Collection("timelines").Find(r.Context(), bson.M{})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	timelines := []models.Timeline{}
	if err := cursor.All(r.Context(), &timelines); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timelines": timelines,
	})
}
