package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
	"todo-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth   service.AuthService
	tasks  service.TaskService
	tokens *auth.TokenManager
	logger *logrus.Logger
}

func NewHandler(authSvc service.AuthService, tasks service.TaskService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:   authSvc,
		tasks:  tasks,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	tasks := router.Group("/tasks")
	{
		// Deliberately unauthenticated and unfiltered: the public board
		// shows every user's tasks. Reviewable policy, not an oversight.
		tasks.GET("/public-tasks", h.listPublicTasks)

		protected := tasks.Group("", authMiddleware(h.tokens, h.logger))
		{
			protected.POST("", h.createTask)
			protected.GET("", h.listTasks)
			protected.PUT("/:id", h.updateTask)
			protected.DELETE("/:id", h.deleteTask)
		}
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Text string `json:"text"`
}

type updateTaskRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields (email, password, name) are required."})
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "User with this email already exists."})
			return
		}
		h.logger.Errorf("register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
			return
		}
		h.logger.Errorf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome, %s!", result.Name),
		"name":    result.Name,
		"token":   result.Token,
	})
}

func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Task text is required."})
		return
	}

	claims := claimsFromContext(c)
	task, err := h.tasks.Create(c.Request.Context(), claims.UserID, req.Text)
	if err != nil {
		h.logger.Errorf("create task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error creating task."})
		return
	}

	c.JSON(http.StatusCreated, taskToResponse(*task))
}

func (h *Handler) listTasks(c *gin.Context) {
	claims := claimsFromContext(c)
	tasks, err := h.tasks.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Errorf("list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching tasks."})
		return
	}

	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

func (h *Handler) listPublicTasks(c *gin.Context) {
	tasks, err := h.tasks.ListPublic(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list public tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching public tasks."})
		return
	}

	c.JSON(http.StatusOK, tasksToResponse(tasks))
}

func (h *Handler) updateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	claims := claimsFromContext(c)
	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), claims.UserID, domain.TaskPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found or unauthorized."})
			return
		}
		h.logger.Errorf("update task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error updating task."})
		return
	}

	c.JSON(http.StatusOK, taskToResponse(*task))
}

func (h *Handler) deleteTask(c *gin.Context) {
	claims := claimsFromContext(c)
	if err := h.tasks.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found or unauthorized."})
			return
		}
		h.logger.Errorf("delete task: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error deleting task."})
		return
	}

	c.Status(http.StatusNoContent)
}

type TaskResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		UserID:    task.UserID,
		Text:      task.Text,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	return resp
}
