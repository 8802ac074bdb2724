package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sorenmh/infrastructure-shared/package-browser/db"
	"github.com/sorenmh/infrastructure-shared/package-browser/mendix"
	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

const (
	// defaultPackagesLimit matches the "latest packages" view
	defaultPackagesLimit = 3
	maxPackagesLimit     = 100

	errConfigNotSet = "API configuration is not set"
)

func (s *Server) handleListPackages(c *gin.Context) {
	limit, offset, err := parsePaging(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, ok := s.lookupApp(c)
	if !ok {
		return
	}

	apiCfg, err := s.db.GetAPIConfig()
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": errConfigNotSet})
		return
	}
	if err != nil {
		s.logger.Error("failed to load api config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load API configuration"})
		return
	}

	source := s.newSource(apiCfg.BaseURL, apiCfg.Token)
	page, err := source.FetchPackages(c.Request.Context(), app.AppID, limit, offset)
	if err != nil {
		status, message := upstreamStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	views := s.formatter.PackageViews(page.Packages, s.now())

	c.JSON(http.StatusOK, models.ListPackagesResponse{
		App:        *app,
		Packages:   views,
		Pagination: page.Pagination,
		Message:    fmt.Sprintf("%d packages found for %s", len(views), app.Name),
	})
}

func parsePaging(c *gin.Context) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPackagesLimit)))
	if err != nil || limit < 1 || limit > maxPackagesLimit {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d", maxPackagesLimit)
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("offset must be a non-negative integer")
	}

	return limit, offset, nil
}

// upstreamStatus maps a packages source error to the status and message returned to callers
func upstreamStatus(err error) (int, string) {
	switch {
	case errors.Is(err, mendix.ErrUnauthorized):
		return http.StatusUnauthorized, mendix.ErrUnauthorized.Error()
	case errors.Is(err, mendix.ErrForbidden):
		return http.StatusForbidden, mendix.ErrForbidden.Error()
	case errors.Is(err, mendix.ErrNotFound):
		return http.StatusNotFound, mendix.ErrNotFound.Error()
	}

	var apiErr *mendix.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway, apiErr.Message
	}
	return http.StatusBadGateway, err.Error()
}
