package services

import (
	"log"
	"os"
	"strings"
)

var datasetDebugEnabled = false

func init() {
	// Enable debug logging if DATASET_DEBUG=1 or DATASET_DEBUG=true
	if v := os.Getenv("DATASET_DEBUG"); v != "" {
		v = strings.ToLower(v)
		datasetDebugEnabled = v == "1" || v == "true" || v == "yes"
		if datasetDebugEnabled {
			log.Println("[DATASET] Debug logging: ENABLED")
		}
	}
}

// debugLog logs only when DATASET_DEBUG is enabled.
// Use this for verbose per-record details, dedup hits, truncations, etc.
func debugLog(format string, args ...interface{}) {
	if datasetDebugEnabled {
		log.Printf("[DATASET DEBUG] "+format, args...)
	}
}

// infoLog always logs important ingest events.
// Use this for writer lifecycle, append failures, shutdown progress.
func infoLog(format string, args ...interface{}) {
	log.Printf("[DATASET] "+format, args...)
}
