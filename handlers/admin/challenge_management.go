package admin

import (
	"net/http"

	"ctfapi/database"
	"ctfapi/models"

	"github.com/gin-gonic/gin"
)

// GetChallenges lists the full catalog, flags included
// @Summary Get all challenges
// @Description Get the full challenge catalog ordered by level, including flags
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Challenge
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/challenges [get]
// @Security Bearer
func GetChallenges(c *gin.Context) {
	var challenges []models.Challenge
	if err := database.DB.Order("level asc").Find(&challenges).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenges)
		return
	}

	// The model hides flags from JSON; admins get them explicitly
	out := make([]gin.H, 0, len(challenges))
	for _, ch := range challenges {
		out = append(out, gin.H{
			"id":          ch.ID,
			"level":       ch.Level,
			"title":       ch.Title,
			"description": ch.Description,
			"hint":        ch.Hint,
			"flag":        ch.Flag,
			"is_active":   ch.IsActive,
			"difficulty":  ch.Difficulty,
			"category":    ch.Category,
			"points":      ch.Points,
			"solve_count": ch.SolveCount,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CreateChallenge adds a catalog entry
// @Summary Create a challenge
// @Description Add a new challenge to the catalog; levels must be unique
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge"
// @Success 201 {object} models.Challenge
// @Failure 400,401,403,409 {object} map[string]string
// @Router /admin/challenges [post]
// @Security Bearer
func CreateChallenge(c *gin.Context) {
	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var count int64
	database.DB.Model(&models.Challenge{}).Where("level = ?", req.Level).Count(&count)
	if count > 0 {
		respondWithError(c, http.StatusConflict, ErrLevelInUse)
		return
	}

	challenge := models.Challenge{
		Level:       req.Level,
		Title:       req.Title,
		Description: req.Description,
		Hint:        req.Hint,
		Flag:        req.Flag,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
		Points:      req.Points,
		IsActive:    true,
	}
	if req.IsActive != nil {
		challenge.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreateChallenge)
		return
	}

	c.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge mutates a catalog entry
// @Summary Update a challenge
// @Description Update fields of an existing challenge
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body UpdateChallengeRequest true "Fields to update"
// @Success 200 {object} models.Challenge
// @Failure 400,401,403,404 {object} map[string]string
// @Router /admin/challenges/{id} [put]
// @Security Bearer
func UpdateChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Hint != nil {
		challenge.Hint = *req.Hint
	}
	if req.Flag != nil {
		challenge.Flag = *req.Flag
	}
	if req.Difficulty != nil {
		challenge.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		challenge.Category = *req.Category
	}
	if req.Points != nil {
		challenge.Points = *req.Points
	}
	if req.IsActive != nil {
		challenge.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateChallenge)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

// DeleteChallenge removes a catalog entry
// @Summary Delete a challenge
// @Description Remove a challenge from the catalog
// @Tags Admin
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /admin/challenges/{id} [delete]
// @Security Bearer
func DeleteChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	if err := database.DB.Delete(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedDeleteChallenge)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted"})
}
