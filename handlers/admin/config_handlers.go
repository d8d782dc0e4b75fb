package admin

import (
	"net/http"

	"ctfapi/database"
	"ctfapi/services"

	"github.com/gin-gonic/gin"
)

// GetConfig returns the singleton challenge config
// @Summary Get the challenge config
// @Description Get the process-wide challenge parameters
// @Tags Admin
// @Produce json
// @Success 200 {object} models.ChallengeConfig
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/config [get]
// @Security Bearer
func GetConfig(c *gin.Context) {
	cfg, err := services.GetChallengeConfig(database.DB)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchConfig)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig mutates the singleton challenge config
// @Summary Update the challenge config
// @Description Update challenge parameters; the active window must have start < end
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body services.ConfigUpdate true "Config update"
// @Success 200 {object} models.ChallengeConfig
// @Failure 400,401,403 {object} map[string]string
// @Router /admin/config [put]
// @Security Bearer
func UpdateConfig(c *gin.Context) {
	var update services.ConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	cfg, err := services.GetChallengeConfig(database.DB)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchConfig)
		return
	}

	if err := services.ApplyConfigUpdate(cfg, update); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.DB.Save(cfg).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateConfig)
		return
	}

	c.JSON(http.StatusOK, cfg)
}
