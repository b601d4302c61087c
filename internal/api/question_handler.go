package api

import (
	"net/http"

	"github.com/VitaminP8/dsaboard/internal/questions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) Companies(c *gin.Context) {
	c.JSON(http.StatusOK, questions.Companies())
}

func (h *Handler) Questions(c *gin.Context) {
	list, err := h.forum.Questions(c.Request.Context(), c.Param("company"))
	if err != nil {
		respondError(c, err, "Error fetching questions file")
		return
	}
	c.JSON(http.StatusOK, list)
}
