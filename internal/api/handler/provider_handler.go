package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ProviderHandler handles provider profiles, portfolios, and verification
// documents.
type ProviderHandler struct {
	providerService ports.ProviderService
}

func NewProviderHandler(providerService ports.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

type providerProfileRequest struct {
	CompanyName  string `json:"company_name" validate:"required"`
	ServiceType  string `json:"service_type" validate:"required"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobile_number"`
}

type updateProfileRequest struct {
	CompanyName  string `json:"company_name"`
	ServiceType  string `json:"service_type"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobile_number"`
}

type portfolioRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type documentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
	DocumentURL  string `json:"document_url" validate:"required,url"`
}

// CreateProfile registers the authenticated provider's business profile.
//
// @Summary      Create own provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      providerProfileRequest  true  "Profile details"
// @Success      201   {object}  domain.ServiceProvider
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/providers/profile [post]
func (h *ProviderHandler) CreateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req providerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.providerService.CreateProfile(c.Request().Context(), actor, ports.ProviderProfileInput{
		CompanyName:  req.CompanyName,
		ServiceType:  req.ServiceType,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateProfile changes the non-empty fields of the provider's own profile.
//
// @Summary      Update own provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.ServiceProvider
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/providers/profile [patch]
func (h *ProviderHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.providerService.UpdateProfile(c.Request().Context(), actor, ports.ProviderProfileInput{
		CompanyName:  req.CompanyName,
		ServiceType:  req.ServiceType,
		Address:      req.Address,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// GetOwnProfile returns the authenticated provider's own profile.
//
// @Summary      Get own provider profile
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ServiceProvider
// @Failure      404  {object}  errorResponse
// @Router       /v1/providers/profile [get]
func (h *ProviderHandler) GetOwnProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	profile, err := h.providerService.GetOwnProfile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfile returns one provider profile by id.
//
// @Summary      Get a provider profile
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  domain.ServiceProvider
// @Failure      404  {object}  errorResponse
// @Router       /v1/providers/{id} [get]
func (h *ProviderHandler) GetProfile(c echo.Context) error {
	profile, err := h.providerService.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListProfiles returns all provider profiles, paginated.
//
// @Summary      Browse provider profiles
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Router       /v1/providers [get]
func (h *ProviderHandler) ListProfiles(c echo.Context) error {
	page, err := h.providerService.ListProfiles(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// CreatePortfolio adds an entry to the provider's own portfolio.
//
// @Summary      Add a portfolio entry
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      portfolioRequest  true  "Portfolio entry"
// @Success      201   {object}  domain.Portfolio
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/providers/portfolios [post]
func (h *ProviderHandler) CreatePortfolio(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req portfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.providerService.CreatePortfolio(c.Request().Context(), actor, ports.PortfolioInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListPortfolios returns a provider's portfolio entries.
//
// @Summary      List a provider's portfolio
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Profile id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Router       /v1/providers/{id}/portfolios [get]
func (h *ProviderHandler) ListPortfolios(c echo.Context) error {
	page, err := h.providerService.ListPortfolios(c.Request().Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// DeletePortfolio removes an entry from the provider's own portfolio.
//
// @Summary      Delete a portfolio entry
// @Tags         providers
// @Security     BearerAuth
// @Param        id  path  string  true  "Portfolio entry id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/providers/portfolios/{id} [delete]
func (h *ProviderHandler) DeletePortfolio(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.providerService.DeletePortfolio(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadDocument attaches a verification document to the provider's profile.
//
// @Summary      Upload a verification document
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      documentRequest  true  "Document reference"
// @Success      201   {object}  domain.VerificationDocument
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/providers/documents [post]
func (h *ProviderHandler) UploadDocument(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req documentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.providerService.UploadDocument(c.Request().Context(), actor, ports.DocumentInput{
		DocumentType: req.DocumentType,
		DocumentURL:  req.DocumentURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListDocuments returns the authenticated provider's own documents.
//
// @Summary      List own verification documents
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      404    {object}  errorResponse
// @Router       /v1/providers/documents [get]
func (h *ProviderHandler) ListDocuments(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, err := h.providerService.ListDocuments(c.Request().Context(), actor, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// ModerateDocument records the admin verdict on a pending document.
//
// @Summary      Moderate a verification document
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Document id"
// @Param        body  body      statusUpdateRequest  true  "Verdict (APPROVED or REJECTED)"
// @Success      200   {object}  domain.VerificationDocument
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/providers/documents/{id}/status [patch]
func (h *ProviderHandler) ModerateDocument(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.providerService.ModerateDocument(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
