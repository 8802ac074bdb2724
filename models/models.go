package models

import "time"

// NoExpirySentinel is the expiryDate text the packages API returns for packages that are
// still in use and therefore locked.
const NoExpirySentinel = "No expiry date is set as the package is still used/locked."

type Application struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AppID     string    `json:"appId"`
	CreatedAt time.Time `json:"createdAt"`
}

type APIConfig struct {
	BaseURL   string    `json:"baseUrl"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Masked returns a copy of the config that is safe to display.
func (c APIConfig) Masked() APIConfig {
	out := c
	out.Token = MaskToken(c.Token)
	return out
}

// MaskToken hides all but the last four characters of a token. Short tokens are
// hidden completely.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return "********" + token[len(token)-4:]
}

// Package is a deployable build as returned by the packages API.
type Package struct {
	ID             string      `json:"id"`
	AppID          string      `json:"appId"`
	ModelVersion   string      `json:"modelVersion"`
	RuntimeVersion string      `json:"runtimeVersion"`
	CreatedOn      string      `json:"createdOn"`
	Description    string      `json:"description,omitempty"`
	FileName       string      `json:"fileName"`
	FileSize       int64       `json:"fileSize"`
	ExpiryDate     string      `json:"expiryDate"`
	URL            DownloadURL `json:"url"`
}

type DownloadURL struct {
	Location string `json:"location"`
	TTL      int    `json:"ttl"`
}

type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Size   int `json:"size"`
}

// PackagesPage is the packages API response envelope. Pagination.Size is the number of
// packages in this page, not the total available.
type PackagesPage struct {
	Packages   []Package  `json:"packages"`
	Pagination Pagination `json:"pagination"`
}

// APIErrorBody is the error envelope of the packages API.
type APIErrorBody struct {
	Error struct {
		Code          int            `json:"code"`
		Message       string         `json:"message"`
		InvalidParams []InvalidParam `json:"invalid-params"`
	} `json:"error"`
}

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Request/response models for the HTTP API

type RegisterAppRequest struct {
	Name  string `json:"name" validate:"notblank,max=200"`
	AppID string `json:"appId" validate:"notblank,max=200"`
}

type ListAppsResponse struct {
	Apps  []Application `json:"apps"`
	Total int           `json:"total"`
}

type SaveConfigRequest struct {
	BaseURL string `json:"baseUrl" validate:"notblank"`
	Token   string `json:"token" validate:"notblank"`
}

type Expiry struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// PackageView is a Package decorated with display strings.
type PackageView struct {
	Package
	FileSizeDisplay  string `json:"fileSizeDisplay"`
	CreatedOnDisplay string `json:"createdOnDisplay"`
	Expiry           Expiry `json:"expiry"`
}

type ListPackagesResponse struct {
	App        Application   `json:"app"`
	Packages   []PackageView `json:"packages"`
	Pagination Pagination    `json:"pagination"`
	Message    string        `json:"message"`
}

type HealthResponse struct {
	Status             string `json:"status"`
	Version            string `json:"version"`
	DatabaseAccessible bool   `json:"databaseAccessible"`
}

type ErrorResponse struct {
	Error   string    `json:"error"`
	Details string    `json:"details,omitempty"`
	Time    time.Time `json:"time"`
}
