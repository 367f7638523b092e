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

type sendMessageRequest struct {
	SenderName string `json:"senderName"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
}

// SendMessage stores a contact-form submission from the public portfolio.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid request body", err))
		return
	}
	if req.SenderName == "" || req.Subject == "" || req.Message == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Please fill the entire form!"))
		return
	}

	msg := models.Message{
		CreatedAt:  time.Now(),
		SenderName: req.SenderName,
		Subject:    req.Subject,
		Message:    req.Message,
	}
	res, err := h.DB.Collection("messages").InsertOne(r.Context(), msg)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message Sent!",
		"data":    msg,
	})
}

// DeleteMessage removes a message from the dashboard inbox.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	res, err := h.DB.Collection("messages").DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if res.DeletedCount == 0 {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Message already deleted!"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Message Deleted!",
	})
}

// GetAllMessages lists every received message.
func (h *Handler) GetAllMessages(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.DB.Collection("messages").Find(r.Context(), bson.M{})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	messages := []models.Message{}
	if err := cursor.All(r.Context(), &messages); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}
