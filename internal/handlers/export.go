package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/eventease-dev/eventease/db"
	"github.com/eventease-dev/eventease/internal/authz"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExportAttendees streams the event's registrations as CSV to the owner or an
// elevated role.
func ExportAttendees(ctx *gin.Context) {
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
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export attendees"})
		}
		return
	}

	if decision := authz.Authorize(currentUser.Identity(), authz.ActionExportAttendees, &event); !decision.Allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var registrations []models.Registration

	if err := db.DB.Where("event_id = ?", event.ID).Order("created_at DESC").Find(&registrations).Error; err != nil {
		log.Printf("Failed to fetch registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export attendees"})
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"event-%d-attendees.csv\"", event.ID))
	ctx.Status(http.StatusOK)

	writer := csv.NewWriter(ctx.Writer)

	if err := writer.Write([]string{"Name", "Email", "Phone", "Message", "Status", "RSVP Date"}); err != nil {
		log.Printf("Failed to write CSV header: %v", err)
		return
	}

	for _, reg := range registrations {
		record := []string{
			reg.Name,
			reg.Email,
			reg.Phone,
			reg.Message,
			reg.Status,
			reg.CreatedAt.UTC().Format(time.RFC3339),
		}

		if err := writer.Write(record); err != nil {
			log.Printf("Failed to write CSV row: %v", err)
			return
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		log.Printf("Failed to flush CSV: %v", err)
	}
}
