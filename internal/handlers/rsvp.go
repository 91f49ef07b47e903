package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/eventease-dev/eventease/internal/admission"
	"github.com/eventease-dev/eventease/internal/utils"
	"github.com/gin-gonic/gin"
)

// Admission is wired by the router at startup.
var Admission *admission.Controller

func InitAdmission(controller *admission.Controller) {
	Admission = controller
}

type CreateRSVPRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateRSVP submits a registration against an event. No authentication:
// registrants do not need accounts. All admission outcomes are typed and map
// directly onto response codes here.
func CreateRSVP(ctx *gin.Context) {
	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreateRSVPRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reg, err := Admission.Submit(ctx.Request.Context(), eventID, admission.Registrant{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Message: body.Message,
	})

	if err != nil {
		var validationErr *admission.ValidationError
		var notRegistrable *admission.NotRegistrableError

		switch {
		case errors.As(err, &validationErr):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": validationErr.Fields})
		case errors.Is(err, admission.ErrEventNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.As(err, &notRegistrable):
			ctx.JSON(http.StatusForbidden, gin.H{"error": notRegistrable.Error()})
		case errors.Is(err, admission.ErrEventFull):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Event is full"})
		case errors.Is(err, admission.ErrDuplicateRegistration):
			ctx.JSON(http.StatusConflict, gin.H{"error": "You have already RSVPed to this event"})
		case errors.Is(err, admission.ErrContention):
			ctx.JSON(http.StatusConflict, gin.H{"error": "Registration is busy, please retry", "retryable": true})
		default:
			log.Printf("Failed to create RSVP: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create RSVP"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, registrationResponse(reg))
}
