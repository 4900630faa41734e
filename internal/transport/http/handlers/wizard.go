package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/core/domain"
	"github.com/brightshield/insurance-portal/internal/repository"
	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
	"github.com/brightshield/insurance-portal/internal/usecase"
)

// WizardHandler exposes the three-step quote wizard. The flow works for
// anonymous visitors; only saving the reviewed quote requires a session.
type WizardHandler struct {
	wizard *usecase.WizardService
}

// NewWizardHandler constructs WizardHandler.
func NewWizardHandler(wizard *usecase.WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

// RegisterRoutes binds wizard routes onto a group with optional authentication.
func (h *WizardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/wizard", h.start)
	r.GET("/wizard/:id", h.get)
	r.POST("/wizard/:id/type", h.selectType)
	r.POST("/wizard/:id/change-type", h.changeType)
	r.POST("/wizard/:id/details", h.submitDetails)
	r.POST("/wizard/:id/save", h.save)
	r.GET("/wizard/:id/download", h.download)
}

var wizardErrorCases = []ErrorCase{
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "wizard session not found"},
	{Err: usecase.ErrWizardOwnership, Status: http.StatusForbidden, Message: "wizard session belongs to another user"},
	{Err: usecase.ErrWizardStep, Status: http.StatusConflict, Message: "operation not allowed in current wizard step"},
	{Err: usecase.ErrUnknownInsuranceType, Status: http.StatusBadRequest, Message: "unknown insurance type"},
	{Err: usecase.ErrInvalidInput, Status: http.StatusBadRequest, Message: "wizard input failed validation"},
}

func (h *WizardHandler) start(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var req WizardStartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid wizard payload"))
			return
		}
	}
	if preset := c.Query("type"); preset != "" {
		req.Type = domain.InsuranceType(preset)
	}

	session, err := h.wizard.Start(c.Request.Context(), userID, req.Type)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to start wizard")
		return
	}

	c.JSON(http.StatusCreated, newWizardSessionPayload(*session))
}

func (h *WizardHandler) get(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	session, err := h.wizard.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to load wizard session")
		return
	}

	c.JSON(http.StatusOK, newWizardSessionPayload(*session))
}

func (h *WizardHandler) selectType(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var req WizardTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "type is required"))
		return
	}

	session, err := h.wizard.SelectType(c.Request.Context(), c.Param("id"), userID, req.Type)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to select type")
		return
	}

	c.JSON(http.StatusOK, newWizardSessionPayload(*session))
}

func (h *WizardHandler) changeType(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	session, err := h.wizard.ChangeType(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to change type")
		return
	}

	c.JSON(http.StatusOK, newWizardSessionPayload(*session))
}

func (h *WizardHandler) submitDetails(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	var req WizardDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid details payload"))
		return
	}

	input := usecase.DetailsInput{
		PersonalInfo: domain.PersonalInfo{
			FirstName:   req.PersonalInfo.FirstName,
			LastName:    req.PersonalInfo.LastName,
			Email:       req.PersonalInfo.Email,
			Phone:       req.PersonalInfo.Phone,
			DateOfBirth: req.PersonalInfo.DateOfBirth,
			ZipCode:     req.PersonalInfo.ZipCode,
		},
		CoverageDetails: domain.CoverageDetails{
			CoverageType:   req.CoverageDetails.CoverageType,
			CoverageAmount: req.CoverageDetails.CoverageAmount,
			Deductible:     req.CoverageDetails.Deductible,
		},
	}
	if req.VehicleInfo != nil {
		input.VehicleInfo = &domain.VehicleInfo{
			Make:    req.VehicleInfo.Make,
			Model:   req.VehicleInfo.Model,
			Year:    req.VehicleInfo.Year,
			Mileage: req.VehicleInfo.Mileage,
			VIN:     req.VehicleInfo.VIN,
		}
	}
	if req.HomeInfo != nil {
		input.HomeInfo = &domain.HomeInfo{
			Address:          req.HomeInfo.Address,
			YearBuilt:        req.HomeInfo.YearBuilt,
			SquareFootage:    req.HomeInfo.SquareFootage,
			ConstructionType: req.HomeInfo.ConstructionType,
		}
	}

	session, err := h.wizard.SubmitDetails(c.Request.Context(), c.Param("id"), userID, input)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to submit details")
		return
	}

	c.JSON(http.StatusOK, newWizardSessionPayload(*session))
}

func (h *WizardHandler) save(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required to save a quote"))
		return
	}

	quote, err := h.wizard.Save(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithMappedError(c, err, append(wizardErrorCases, ErrorCase{
			Err: usecase.ErrAuthRequired, Status: http.StatusUnauthorized, Message: "authentication required to save a quote",
		}), http.StatusInternalServerError, "failed to save quote")
		return
	}

	c.JSON(http.StatusCreated, newQuotePayload(*quote))
}

func (h *WizardHandler) download(c *gin.Context) {
	userID, _ := middleware.GetAuthenticatedUserID(c)

	session, err := h.wizard.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondWithMappedError(c, err, wizardErrorCases, http.StatusInternalServerError, "failed to load wizard session")
		return
	}

	if session.Quote == nil {
		c.JSON(http.StatusConflict, NewErrorResponse(c, "no computed quote to download"))
		return
	}

	filename := fmt.Sprintf("quote-%d.json", session.UpdatedAt.Unix())
	respondJSONDownload(c, filename, newQuotePayload(*session.Quote))
}
