package services

import (
	"log"

	"github.com/wasteeasy/api/db"
	"github.com/wasteeasy/api/models"
)

type NotificationService interface {
	NotifyUser(userID uint, message string, notificationType string) error
	GetUnreadNotifications(userID uint) ([]models.Notification, error)
	MarkNotificationAsRead(notificationID uint) error
}

type notificationService struct {
	notificationRepo db.NotificationRepository
}

// NewNotificationService instantiate a notificationService
func NewNotificationService(notificationRepo db.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) NotifyUser(userID uint, message string, notificationType string) error {
	_, err := s.notificationRepo.CreateNotification(&models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notificationType,
	})
	if err != nil {
		log.Printf("error creating notification for user %d: %v", userID, err)
	}
	return err
}

func (s *notificationService) GetUnreadNotifications(userID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetUnreadNotifications(userID)
}

func (s *notificationService) MarkNotificationAsRead(notificationID uint) error {
	return s.notificationRepo.MarkNotificationAsRead(notificationID)
}
