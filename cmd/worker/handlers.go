package main

import (
	"github.com/hibiken/asynq"

	notifJob "fitlink-backend/internal/domains/notification/job"
	postingJob "fitlink-backend/internal/domains/posting/job"
	"fitlink-backend/internal/shared"
	"fitlink-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Notification fan-out
	moderationDecision *notifJob.ModerationDecisionHandler
	applicationStatus  *notifJob.ApplicationStatusHandler
	messageReceived    *notifJob.MessageReceivedHandler

	// Maintenance
	cleanupOld   *notifJob.CleanupOldNotificationsHandler
	closeExpired *postingJob.CloseExpiredHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		moderationDecision: notifJob.NewModerationDecisionHandler(c.NotificationService),
		applicationStatus:  notifJob.NewApplicationStatusHandler(c.NotificationService),
		messageReceived:    notifJob.NewMessageReceivedHandler(c.NotificationService),

		cleanupOld:   notifJob.NewCleanupOldNotificationsHandler(c.NotificationService),
		closeExpired: postingJob.NewCloseExpiredHandler(c.PostingRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Notification tasks
	mux.HandleFunc(shared.TypeModerationDecision, h.moderationDecision.ProcessTask)
	mux.HandleFunc(shared.TypeApplicationStatus, h.applicationStatus.ProcessTask)
	mux.HandleFunc(shared.TypeMessageReceived, h.messageReceived.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeCleanupOldNotifications, h.cleanupOld.ProcessTask)
	mux.HandleFunc(shared.TypeCloseExpiredPostings, h.closeExpired.ProcessTask)
}
