package handlers

import (
	"net/http"

	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/profile
func GetProfile(c *gin.Context) {
	student, err := repositories.StudentRepository{}.GetByID(middleware.SubjectID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"studentId":    student.ID,
		"name":         student.Name,
		"email":        student.Email,
		"room":         student.Room,
		"phone":        student.Phone,
		"penaltyCount": student.PenaltyCount,
		"isBlocked":    student.IsBlocked,
	})
}

type updateProfileRequest struct {
	Room  string `json:"room"`
	Phone string `json:"phone"`
}

// PUT /api/profile
func UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	studentID := middleware.SubjectID(c)
	repo := repositories.StudentRepository{}
	if err := repo.UpdateProfile(studentID, utils.TrimOrEmpty(req.Room), utils.TrimOrEmpty(req.Phone)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "profile", "update", "student_id="+studentID)
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
