package db

import (
	"github.com/wasteeasy/api/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) (*models.Notification, error)
	GetUnreadNotifications(userID uint) ([]models.Notification, error)
	MarkNotificationAsRead(notificationID uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := r.DB.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *notificationRepo) GetUnreadNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepo) MarkNotificationAsRead(notificationID uint) error {
	result := r.DB.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
