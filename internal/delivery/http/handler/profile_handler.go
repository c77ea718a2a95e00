package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/delivery/http/middleware"
	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/usecase/draft"
	"github.com/swappi-app/swappi-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// SaveProfileForm is the text part of the onboarding upload.
type SaveProfileForm struct {
	Vibe      string   `form:"vibe" binding:"max=64"`
	Mood      string   `form:"mood" binding:"max=64"`
	Note      string   `form:"note" binding:"max=500"`
	Skills    []string `form:"skills" binding:"dive,max=64"`
	Interests []string `form:"interests" binding:"dive,max=64"`
}

type profileURI struct {
	ID string `uri:"id" binding:"required,notblank"`
}

type savedURI struct {
	ProfileID string `uri:"profile_id" binding:"required,notblank"`
}

type ToggleSavedRequest struct {
	IsSaved *bool `json:"is_saved" binding:"required"`
}

type ToggleSavedResponse struct {
	ProfileID string `json:"profile_id"`
	IsSaved   bool   `json:"is_saved"`
}

// GetMyProfile handles GET /profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveMyProfile handles PUT /profile/me with a multipart body: text fields vibe, mood,
// note, repeated skills and interests, up to six photos and a video or audio file.
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var form SaveProfileForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "invalid profile form")
		return
	}
	multipartForm, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "expected multipart form data")
		return
	}

	d, err := buildDraft(&form, multipartForm)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	d.Name = c.GetString(middleware.ContextUserName)
	d.Email = c.GetString(middleware.ContextUserEmail)

	saved, err := h.profileUseCase.SaveProfile(c.Request.Context(), userID, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": saved,
		"state":   domain.ResolveSessionState(true, saved),
	})
}

// GetProfile handles GET /profile/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	var uri profileURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "invalid profile id")
		return
	}

	p, err := h.profileUseCase.GetProfile(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	// bookmarks are private to their owner
	p.SavedProfiles = nil
	c.JSON(http.StatusOK, p)
}

// ListSaved handles GET /saved
func (h *ProfileHandler) ListSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	saved, err := h.profileUseCase.ListSaved(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, p := range saved {
		p.SavedProfiles = nil
	}
	c.JSON(http.StatusOK, gin.H{"profiles": saved})
}

// ToggleSaved handles POST /saved/:profile_id/toggle
func (h *ProfileHandler) ToggleSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var uri savedURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "invalid profile id")
		return
	}
	var req ToggleSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "is_saved is required")
		return
	}

	state, err := h.profileUseCase.ToggleSaved(c.Request.Context(), userID, uri.ProfileID, *req.IsSaved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToggleSavedResponse{ProfileID: uri.ProfileID, IsSaved: state})
}

func buildDraft(form *SaveProfileForm, mf *multipart.Form) (*draft.Draft, error) {
	d := &draft.Draft{
		Vibe: strings.TrimSpace(form.Vibe),
		Mood: strings.TrimSpace(form.Mood),
		Note: strings.TrimSpace(form.Note),
	}
	for _, s := range form.Skills {
		d.AddSkill(s)
	}
	for _, s := range form.Interests {
		d.AddInterest(s)
	}

	for _, fh := range mf.File["photos"] {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		d.AddPhoto(draft.Photo{Filename: fh.Filename, Data: data})
	}

	var err error
	if d.Video, err = readMedia(mf, "video", domain.MediaVideo); err != nil {
		return nil, err
	}
	if d.Audio, err = readMedia(mf, "audio", domain.MediaAudio); err != nil {
		return nil, err
	}
	return d, nil
}

func readMedia(mf *multipart.Form, field string, kind domain.MediaKind) (*draft.Media, error) {
	files := mf.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	data, err := readPart(fh)
	if err != nil {
		return nil, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &draft.Media{Filename: fh.Filename, ContentType: contentType, Kind: kind, Data: data}, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read %s", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %s", fh.Filename)
	}
	return data, nil
}
