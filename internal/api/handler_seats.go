package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studyroom-backend/internal/model"
	"studyroom-backend/internal/mw"
	"studyroom-backend/internal/seats"
)

// SessionResponse represents the API response for a single seat session.
type SessionResponse struct {
	SeatNumber       int                  `json:"seatNumber"`
	StudentID        *uuid.UUID           `json:"studentId"`
	Status           model.SeatStatus     `json:"status"`
	CheckInTime      *time.Time           `json:"checkInTime"`
	SessionStartTime *time.Time           `json:"sessionStartTime"`
	AllocatedMinutes *int                 `json:"allocatedMinutes"`
	Effects          []seats.EffectResult `json:"effects,omitempty"`
}

func sessionResponse(session *model.SeatSession, effects []seats.EffectResult) SessionResponse {
	return SessionResponse{
		SeatNumber:       session.SeatNumber,
		StudentID:        session.StudentID,
		Status:           session.Status,
		CheckInTime:      session.CheckInTime,
		SessionStartTime: session.SessionStartTime,
		AllocatedMinutes: session.AllocatedMinutes,
		Effects:          effects,
	}
}

// ListSeats handles the GET /api/seat-assignments request.
func (h *Handler) ListSeats(c *gin.Context) {
	views, err := h.seats.List(c.Request.Context(), mw.OrgID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to list seat assignments"})
		return
	}
	c.JSON(http.StatusOK, views)
}

type assignRequest struct {
	SeatNumber       int       `json:"seatNumber" binding:"required"`
	StudentID        uuid.UUID `json:"studentId" binding:"required"`
	AllocatedMinutes *int      `json:"allocatedMinutes"`
}

// AssignSeat handles the POST /api/seat-assignments request.
func (h *Handler) AssignSeat(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, effects, err := h.seats.Assign(c.Request.Context(), mw.OrgID(c), req.SeatNumber, req.StudentID, req.AllocatedMinutes)
	if err != nil {
		abortForServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session, effects))
}

type setStatusRequest struct {
	Status    model.SeatStatus `json:"status" binding:"required"`
	StudentID *uuid.UUID       `json:"studentId"`
}

// SetSeatStatus handles the PUT /api/seat-assignments/{seat_number}/status request.
func (h *Handler) SetSeatStatus(c *gin.Context) {
	seatNumber, err := strconv.Atoi(c.Param("seat_number"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid seat number"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, effects, err := h.seats.SetStatus(c.Request.Context(), mw.OrgID(c), seatNumber, req.Status, req.StudentID)
	if err != nil {
		abortForServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session, effects))
}

// RemoveSeat handles the DELETE /api/seat-assignments/{seat_number} request.
func (h *Handler) RemoveSeat(c *gin.Context) {
	seatNumber, err := strconv.Atoi(c.Param("seat_number"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid seat number"})
		return
	}

	if err := h.seats.Remove(c.Request.Context(), mw.OrgID(c), seatNumber); err != nil {
		abortForServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortForServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, seats.ErrSeatNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Seat assignment not found"})
	case errors.Is(err, seats.ErrStudentNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Student not found"})
	case errors.Is(err, seats.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
