package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
)

const projectFolder = "PORTFOLIO PROJECT IMAGES"

// AddProject stores a new project with its uploaded banner.
func (h *Handler) AddProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid multipart form", err))
		return
	}

	header := formFile(r, "projectBanner")
	if header == nil {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Project Banner Image is required!"))
		return
	}
	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		apperr.WriteError(w, apperr.New(apperr.KindValidation, "Please provide title and description!"))
		return
	}

	banner, err := h.Media.UploadFileFromHeader(r.Context(), header, projectFolder)
	if err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to upload project banner", err))
		return
	}

	project := models.Project{
		CreatedAt:     time.Now(),
		Title:         title,
		Description:   description,
		GitRepoLink:   r.FormValue("gitRepoLink"),
		ProjectLink:   r.FormValue("projectLink"),
		Technologies:  r.FormValue("technologies"),
		Stack:         r.FormValue("stack"),
		Deployed:      r.FormValue("deployed"),
		ProjectBanner: banner,
	}
	res, err := h.DB.Collection("projects").InsertOne(r.Context(), project)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	project.ID = res.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "New Project Added!",
		"project": project,
	})
}

// UpdateProject rewrites a project's fields; a new banner replaces the old
// media object.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		apperr.WriteError(w, apperr.Wrap(apperr.KindValidation, "Invalid form", err))
		return
	}

	update := bson.M{
		"title":         r.FormValue("title"),
		"description":   r.FormValue("description"),
		"git_repo_link": r.FormValue("gitRepoLink"),
		"project_link":  r.FormValue("projectLink"),
		"technologies":  r.FormValue("technologies"),
		"stack":         r.FormValue("stack"),
		"deployed":      r.FormValue("deployed"),
	}

	if header := formFile(r, "projectBanner"); header != nil {
		var existing models.Project
		err := h.DB.Collection("projects").FindOne(r.Context(), bson.M{"_id": id}).Decode(&existing)
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Project not found!"))
			return
		}
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		banner, err := h.replaceMedia(r, header, existing.ProjectBanner.PublicID, projectFolder)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		update["project_banner"] = banner
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var project models.Project
	err = h.DB.Collection("projects").
		FindOneAndUpdate(r.Context(), bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Project not found!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project Updated!",
		"project": project,
	})
}

// DeleteProject removes a project and its banner from the media host.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var project models.Project
	err = h.DB.Collection("projects").FindOne(r.Context(), bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Project not found or already deleted!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.Media.Destroy(r.Context(), project.ProjectBanner.PublicID); err != nil {
		apperr.WriteError(w, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to delete project banner", err))
		return
	}
	if _, err := h.DB.Collection("projects").DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Project Deleted!",
	})
}

// GetAllProjects lists every project for the public portfolio.
func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	cursor, err := h.DB.Collection("projects").Find(r.Context(), bson.M{})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	projects := []models.Project{}
	if err := cursor.All(r.Context(), &projects); err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"projects": projects,
	})
}

// GetProject returns a single project by id.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDFromParam(r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var project models.Project
	err = h.DB.Collection("projects").FindOne(r.Context(), bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.WriteError(w, apperr.New(apperr.KindNotFound, "Project not found!"))
		return
	}
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"project": project,
	})
}
