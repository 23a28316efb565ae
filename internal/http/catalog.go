package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taaza-khabar/internal/domain"
)

type TagResponse struct {
	TagName  string `json:"tag_name"`
	TagColor string `json:"tag_color"`
}

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]TagResponse, len(tags))
	for i := range tags {
		resp[i] = TagResponse{TagName: tags[i].Name, TagColor: tags[i].Color}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "tags": resp})
}

// submitFeedback hands the decoded values to the store without checking
// their presence or type. Only a body that is not JSON gets a 400; a row the
// store refuses surfaces as a 500 carrying the store's error.
func (h *Handler) submitFeedback(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	fields, ok := jsonObject(body)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	submission := domain.FeedbackSubmission{
		Name:    "",
		Email:   "",
		Rating:  fieldValue(fields, "rating"),
		Message: fieldValue(fields, "message"),
	}
	if _, ok := fields["name"]; ok {
		submission.Name = fieldValue(fields, "name")
	}
	if _, ok := fields["email"]; ok {
		submission.Email = fieldValue(fields, "email")
	}

	err = h.feedback.Submit(c.Request.Context(), submission)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondSuccess(c, "Thank you for your feedback!")
}
