package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	domainUser "foodnest/internal/domain/user"
	"foodnest/internal/logger"
	"foodnest/internal/middleware"
	"foodnest/internal/realtime"
	"foodnest/internal/usecase/prep"
	"foodnest/pkg/utils"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are already vetted by the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type PrepHandler struct {
	service *prep.Service
	hub     *realtime.Hub
}

func NewPrepHandler(service *prep.Service, hub *realtime.Hub) *PrepHandler {
	return &PrepHandler{service: service, hub: hub}
}

func (h *PrepHandler) RegisterRoutes(router *gin.RouterGroup) {
	prepGroup := router.Group("/prep-requests")
	{
		prepGroup.GET("", h.List)
		prepGroup.POST("", middleware.SupervisorOrAbove(), h.Create)
		prepGroup.GET("/:prep_id", h.Get)
		prepGroup.PATCH("/:prep_id", h.Update)
		prepGroup.GET("/ws", h.Feed)
	}
}

func (h *PrepHandler) Create(c *gin.Context) {
	requestedBy, ok := currentUserID(c)
	if !ok {
		return
	}

	var req prep.CreatePrepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), requestedBy, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Prep request created successfully", created)
}

func (h *PrepHandler) Get(c *gin.Context) {
	prepID, ok := parseIDParam(c, "prep_id")
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), prepID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Prep request retrieved successfully", found)
}

// List returns prep requests newest first. Cooks are pinned to their own
// queue regardless of the cook_id query parameter.
func (h *PrepHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var filter prep.ListFilter

	if c.GetString("role") == domainUser.RoleCook {
		filter.CookID = &userID
	} else if cookParam := c.Query("cook_id"); cookParam != "" {
		cookID, err := uuid.Parse(cookParam)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid cook_id")
			return
		}
		filter.CookID = &cookID
	}

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	requests, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Prep requests retrieved successfully", requests)
}

func (h *PrepHandler) Update(c *gin.Context) {
	prepID, ok := parseIDParam(c, "prep_id")
	if !ok {
		return
	}

	var req prep.UpdatePrepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), prepID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Prep request updated successfully", updated)
}

// Feed upgrades to a websocket and streams prep-queue events until the
// client disconnects.
func (h *PrepHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role := c.GetString("role")

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	unsubscribe := h.hub.Subscribe(conn, userID, role)
	defer unsubscribe()

	// Reads are discarded; the feed is one-way. The loop ends when the peer
	// closes the connection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
