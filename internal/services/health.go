package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/refsync/refsync/internal/config"
	"github.com/refsync/refsync/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	ReferenceAPI string            `json:"referenceApi"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check reference API connectivity
	if err := utils.PingZotero(cfg.ZoteroAPIURL); err != nil {
		result.Status = "unhealthy"
		result.ReferenceAPI = "unreachable"
		result.Details["reference_api_error"] = err.Error()
		appendError(&result, fmt.Sprintf("Reference API ping failed: %v", err))
		log.Printf("Health check failed - reference API ping: %v", err)
	} else {
		result.ReferenceAPI = "ok"
		result.Details["reference_api_url"] = cfg.ZoteroAPIURL
	}

	// Check object storage connectivity
	if err := utils.PingStorage(cfg.StorageEndpoint, cfg.StorageUseSSL); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_error"] = err.Error()
		appendError(&result, fmt.Sprintf("Storage ping failed: %v", err))
		log.Printf("Health check failed - storage ping: %v", err)
	} else {
		result.Storage = "ok"
		result.Details["storage_endpoint"] = cfg.StorageEndpoint
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}

func appendError(result *HealthCheckResult, msg string) {
	if result.ErrorMessage == "" {
		result.ErrorMessage = msg
	} else {
		result.ErrorMessage += "; " + msg
	}
}
