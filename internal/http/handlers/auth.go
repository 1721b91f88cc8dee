package handlers

import (
	"net/http"
	"strings"

	"campusbus/internal/domain/models"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Room     string `json:"room"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = utils.TrimOrEmpty(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "name, email and password are required", nil)
		return
	}
	if !strings.Contains(req.Email, "@") {
		RespondError(c, http.StatusBadRequest, "invalid email", nil)
		return
	}
	if len(req.Password) < 6 {
		RespondError(c, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	repo := repositories.StudentRepository{}
	if _, err := repo.GetByEmail(req.Email); err == nil {
		RespondError(c, http.StatusConflict, "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	student := models.Student{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Room:         utils.TrimOrEmpty(req.Room),
		Phone:        utils.TrimOrEmpty(req.Phone),
		PasswordHash: string(hash),
	}
	if err := repo.Insert(student); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create account", err)
		return
	}

	token, err := middleware.GenerateToken(student.ID, middleware.RoleStudent)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "student_id="+student.ID)
	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"studentId": student.ID,
		"name":      student.Name,
		"email":     student.Email,
		"message":   "registration successful",
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	student, err := repositories.StudentRepository{}.GetByEmail(utils.NormalizeEmail(req.Email))
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	token, err := middleware.GenerateToken(student.ID, middleware.RoleStudent)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "student_id="+student.ID)
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"studentId": student.ID,
		"name":      student.Name,
		"email":     student.Email,
		"message":   "login successful",
	})
}
