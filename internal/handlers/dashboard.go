package handlers

import (
	"log"
	"net/http"

	"github.com/eventease-dev/eventease/db"
	"github.com/eventease-dev/eventease/internal/authz"
	"github.com/eventease-dev/eventease/internal/models"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/eventease-dev/eventease/internal/utils"
	"github.com/gin-gonic/gin"
)

type DashboardStatsResponse struct {
	TotalEvents     int64           `json:"totalEvents"`
	PublishedEvents int64           `json:"publishedEvents"`
	TotalRSVPs      int64           `json:"totalRsvps"`
	RecentEvents    []EventResponse `json:"recentEvents"`
}

// GetDashboardStats aggregates event and registration counts. EVENT_OWNER
// identities see their own numbers; ADMIN and STAFF see the whole deployment.
func GetDashboardStats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	scoped := authz.RestrictToOwned(currentUser.Identity())

	eventsQuery := db.DB.Model(&models.Event{})

	if scoped {
		eventsQuery = eventsQuery.Where("creator_id = ?", currentUser.ID)
	}

	var totalEvents int64

	if err := eventsQuery.Count(&totalEvents).Error; err != nil {
		log.Printf("Failed to count events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	publishedQuery := db.DB.Model(&models.Event{}).Where("status = ?", types.EventPublished)

	if scoped {
		publishedQuery = publishedQuery.Where("creator_id = ?", currentUser.ID)
	}

	var publishedEvents int64

	if err := publishedQuery.Count(&publishedEvents).Error; err != nil {
		log.Printf("Failed to count published events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	rsvpQuery := db.DB.Model(&models.Registration{})

	if scoped {
		rsvpQuery = rsvpQuery.
			Joins("JOIN events ON events.id = registrations.event_id").
			Where("events.creator_id = ?", currentUser.ID)
	}

	var totalRSVPs int64

	if err := rsvpQuery.Count(&totalRSVPs).Error; err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	recentQuery := db.DB.Model(&models.Event{}).Preload("Creator")

	if scoped {
		recentQuery = recentQuery.Where("creator_id = ?", currentUser.ID)
	}

	var recent []models.Event

	if err := recentQuery.Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		log.Printf("Failed to fetch recent events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	eventIDs := make([]uint, 0, len(recent))

	for _, event := range recent {
		eventIDs = append(eventIDs, event.ID)
	}

	counts, err := confirmedCounts(eventIDs)

	if err != nil {
		log.Printf("Failed to count registrations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	recentEvents := make([]EventResponse, 0, len(recent))

	for i := range recent {
		recentEvents = append(recentEvents, eventResponse(&recent[i], counts[recent[i].ID]))
	}

	ctx.JSON(http.StatusOK, DashboardStatsResponse{
		TotalEvents:     totalEvents,
		PublishedEvents: publishedEvents,
		TotalRSVPs:      totalRSVPs,
		RecentEvents:    recentEvents,
	})
}
