package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/eventease-dev/eventease/db"
	"github.com/eventease-dev/eventease/internal/authz"
	"github.com/eventease-dev/eventease/internal/lifecycle"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/eventease-dev/eventease/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Location     string     `json:"location"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate"`
	MaxAttendees *int       `json:"maxAttendees" binding:"omitempty,gt=0"`
	IsPublic     *bool      `json:"isPublic"`
	Status       string     `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
}

type UpdateEventRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	MaxAttendees *int       `json:"maxAttendees" binding:"omitempty,gt=0"`
	IsPublic     *bool      `json:"isPublic"`
	Status       *string    `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
}

type CreatorSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type EventResponse struct {
	ID             uint            `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate"`
	MaxAttendees   *int            `json:"maxAttendees"`
	IsPublic       bool            `json:"isPublic"`
	Status         string          `json:"status"`
	CreatorID      uint            `json:"creatorId"`
	Creator        *CreatorSummary `json:"creator,omitempty"`
	ConfirmedCount int64           `json:"confirmedCount"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type RegistrationResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func eventResponse(event *models.Event, confirmed int64) EventResponse {
	resp := EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		Location:       event.Location,
		StartDate:      event.StartDate,
		EndDate:        event.EndDate,
		MaxAttendees:   event.MaxAttendees,
		IsPublic:       event.IsPublic,
		Status:         event.Status,
		CreatorID:      event.CreatorID,
		ConfirmedCount: confirmed,
		CreatedAt:      event.CreatedAt,
	}

	if event.Creator.ID != 0 {
		resp.Creator = &CreatorSummary{
			ID:    event.Creator.ID,
			Name:  event.Creator.Name,
			Email: event.Creator.Email,
		}
	}

	return resp
}

func registrationResponse(reg *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        reg.ID,
		Name:      reg.Name,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Message:   reg.Message,
		Status:    reg.Status,
		CreatedAt: reg.CreatedAt,
	}
}

func confirmedCount(eventID uint) (int64, error) {
	var count int64

	err := db.DB.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", eventID, types.RegistrationConfirmed).
		Count(&count).Error

	return count, err
}

func confirmedCounts(eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))

	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Count   int64
	}

	err := db.DB.Model(&models.Registration{}).
		Select("event_id, count(*) as count").
		Where("event_id IN ? AND status = ?", eventIDs, types.RegistrationConfirmed).
		Group("event_id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EventID] = row.Count
	}

	return counts, nil
}

// validateDates rejects an event that ends before it starts.
func validateDates(start time.Time, end *time.Time) (string, bool) {
	if end != nil && end.Before(start) {
		return "endDate must not be before startDate", false
	}
	return "", true
}

func CreateEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if decision := authz.Authorize(currentUser.Identity(), authz.ActionCreateEvent, nil); !decision.Allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var body CreateEventRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	if detail, ok := validateDates(body.StartDate, body.EndDate); !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": gin.H{"endDate": detail}})
		return
	}

	status := body.Status

	if status == "" {
		status = types.EventPublished
	}

	isPublic := true

	if body.IsPublic != nil {
		isPublic = *body.IsPublic
	}

	event := models.Event{
		Title:        body.Title,
		Description:  body.Description,
		Location:     body.Location,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		MaxAttendees: body.MaxAttendees,
		IsPublic:     isPublic,
		Status:       status,
		CreatorID:    currentUser.ID,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	event.Creator = models.User{Model: gorm.Model{ID: currentUser.ID}, Name: currentUser.Name, Email: currentUser.Email}

	ctx.JSON(http.StatusCreated, eventResponse(&event, 0))
}

func ListEvents(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	status := ctx.Query("status")

	if !types.ValidEventStatus(status) {
		status = ""
	}

	// EVENT_OWNER identities only see their own events; ADMIN and STAFF see
	// the unscoped set.
	applyFilters := func(query *gorm.DB) *gorm.DB {
		if authz.RestrictToOwned(currentUser.Identity()) {
			query = query.Where("creator_id = ?", currentUser.ID)
		}
		if status != "" {
			query = query.Where("status = ?", status)
		}
		return query
	}

	var total int64

	if err := applyFilters(db.DB.Model(&models.Event{})).Count(&total).Error; err != nil {
		log.Printf("Failed to count events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	var events []models.Event

	err = applyFilters(db.DB.Model(&models.Event{})).Preload("Creator").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error

	if err != nil {
		log.Printf("Failed to list events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	eventIDs := make([]uint, 0, len(events))

	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	counts, err := confirmedCounts(eventIDs)

	if err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	response := make([]EventResponse, 0, len(events))

	for i := range events {
		response = append(response, eventResponse(&events[i], counts[events[i].ID]))
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	ctx.JSON(http.StatusOK, gin.H{
		"events": response,
		"pagination": PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// GetEvent serves full detail, registrations included, to the owner and to
// elevated roles. Everyone else sees the public fields of a published public
// event, and a 404 otherwise so private events do not leak their existence.
func GetEvent(ctx *gin.Context) {
	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event

	if err := db.DB.Preload("Creator").First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			log.Printf("Failed to fetch event: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		}
		return
	}

	count, err := confirmedCount(event.ID)

	if err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	identity := utils.GetIdentity(ctx)

	if authz.Authorize(identity, authz.ActionReadEvent, &event).Allowed {
		var registrations []models.Registration

		if err := db.DB.Where("event_id = ?", event.ID).Order("created_at DESC").Find(&registrations).Error; err != nil {
			log.Printf("Failed to fetch registrations: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
			return
		}

		regs := make([]RegistrationResponse, 0, len(registrations))

		for i := range registrations {
			regs = append(regs, registrationResponse(&registrations[i]))
		}

		ctx.JSON(http.StatusOK, gin.H{
			"event":         eventResponse(&event, count),
			"registrations": regs,
		})
		return
	}

	if !lifecycle.IsPubliclyVisible(&event) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	public := eventResponse(&event, count)

	if public.Creator != nil {
		public.Creator.Email = ""
	}

	ctx.JSON(http.StatusOK, gin.H{"event": public})
}

func UpdateEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateEventRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	var event models.Event

	if err := db.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			log.Printf("Failed to fetch event: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		}
		return
	}

	if decision := authz.Authorize(currentUser.Identity(), authz.ActionUpdateEvent, &event); !decision.Allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if body.Status != nil && !lifecycle.CanTransition(event.Status, *body.Status) {
		detail := "cannot change status of a " + event.Status + " event"
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": gin.H{"status": detail}})
		return
	}

	if body.Title != nil {
		event.Title = *body.Title
	}
	if body.Description != nil {
		event.Description = *body.Description
	}
	if body.Location != nil {
		event.Location = *body.Location
	}
	if body.StartDate != nil {
		event.StartDate = *body.StartDate
	}
	if body.EndDate != nil {
		event.EndDate = body.EndDate
	}
	if body.MaxAttendees != nil {
		event.MaxAttendees = body.MaxAttendees
	}
	if body.IsPublic != nil {
		event.IsPublic = *body.IsPublic
	}
	if body.Status != nil {
		event.Status = *body.Status
	}

	if detail, ok := validateDates(event.StartDate, event.EndDate); !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": gin.H{"endDate": detail}})
		return
	}

	if err := db.DB.Save(&event).Error; err != nil {
		log.Printf("Failed to update event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	count, err := confirmedCount(event.ID)

	if err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	ctx.JSON(http.StatusOK, eventResponse(&event, count))
}

// DeleteEvent removes an event and every registration it owns. Only ADMIN or
// the owner may delete; STAFF may not.
func DeleteEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event

	if err := db.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			log.Printf("Failed to fetch event: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		}
		return
	}

	if decision := authz.Authorize(currentUser.Identity(), authz.ActionDeleteEvent, &event); !decision.Allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})

	if err != nil {
		log.Printf("Failed to delete event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PublicEvents lists upcoming published public events, soonest first.
func PublicEvents(ctx *gin.Context) {
	var events []models.Event

	err := db.DB.Preload("Creator").
		Where("is_public = ? AND status = ? AND start_date >= ?", true, types.EventPublished, time.Now()).
		Order("start_date ASC").
		Find(&events).Error

	if err != nil {
		log.Printf("Failed to list public events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch public events"})
		return
	}

	eventIDs := make([]uint, 0, len(events))

	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	counts, err := confirmedCounts(eventIDs)

	if err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch public events"})
		return
	}

	response := make([]EventResponse, 0, len(events))

	for i := range events {
		resp := eventResponse(&events[i], counts[events[i].ID])
		if resp.Creator != nil {
			resp.Creator.Email = ""
		}
		response = append(response, resp)
	}

	ctx.JSON(http.StatusOK, gin.H{"events": response})
}
