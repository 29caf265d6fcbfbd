package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (int64, error) {
	projectIDStr := ctx.Param("project_id")

	if projectIDStr == "" {
		return 0, errors.New("Project ID not found")
	}

	projectID, err := strconv.ParseInt(projectIDStr, 10, 64)

	if err != nil {
		return 0, errors.New("Invalid Project ID")
	}

	return projectID, nil
}

func GetTaskID(ctx *gin.Context) (int64, error) {
	taskIDStr := ctx.Param("task_id")

	if taskIDStr == "" {
		return 0, errors.New("Task ID not found")
	}

	taskID, err := strconv.ParseInt(taskIDStr, 10, 64)

	if err != nil {
		return 0, errors.New("Invalid Task ID")
	}

	return taskID, nil
}
