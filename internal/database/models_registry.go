package database

import "ripple/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.FollowEdge{},
		&models.Post{},
		&models.Like{},
		&models.Share{},
		&models.Comment{},
		&models.Notification{},
	}
}
