package logginghelper

import (
	"github.com/Egor213/LogOps/internal/domain"
	log "github.com/sirupsen/logrus"
)

func LogReceived(raw domain.RawEvent) {
	log.WithFields(log.Fields{
		"service": raw["service"],
		"level":   raw["level"],
	}).Debug("Received log via HTTP")
}

func LogSaved(entry *domain.LogEvent) {
	log.WithFields(log.Fields{
		"service": entry.Service,
		"level":   entry.Level,
		"id":      entry.ID,
	}).Info("Log saved successfully")
}

// LogRejected is for caller mistakes, so it stays below warning level.
func LogRejected(raw domain.RawEvent, err error) {
	log.WithFields(log.Fields{
		"service": raw["service"],
		"level":   raw["level"],
		"reason":  err.Error(),
	}).Info("Log rejected")
}

func LogError(raw domain.RawEvent, err error) {
	log.WithFields(log.Fields{
		"service": raw["service"],
		"level":   raw["level"],
		"error":   err,
	}).Error("Failed to save log")
}
