package register_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/auth"
	"github.com/m04kA/SMC-SalonService/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmailTaken         = "пользователь с таким email уже существует"
	msgForbidden          = "недостаточно прав для создания пользователя с этой ролью"
	msgInvalidInput       = "некорректные данные регистрации"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/register
// На публичном роуте создаются только клиенты; staff-роли
// доступны администратору через защищённый роут POST /users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Инициатор присутствует только на защищённом роуте
	if actorID, ok := middleware.GetUserID(r.Context()); ok {
		req.ActorID = actorID
	}
	if actorRole, ok := middleware.GetUserRole(r.Context()); ok {
		req.ActorRole = actorRole
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			h.logger.Warn("POST /auth/register - Email taken: email=%s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, auth.ErrAccessDenied):
			h.logger.Warn("POST /auth/register - Access denied: role=%s, actor_id=%d", req.Role, req.ActorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/register - Failed to register user: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered successfully: user_id=%d, role=%s",
		result.User.ID, result.User.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
