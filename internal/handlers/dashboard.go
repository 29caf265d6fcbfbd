package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskboard-dev/taskboard/internal/services"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

func GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dashboard, err := services.BuildDashboard(userID, time.Now(), upcomingWindowDays)

	if err != nil {
		respondModelError(ctx, err, "Dashboard")
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}
