package configs

import (
	"strings"

	"backend/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin() error {
	email := strings.ToLower(getEnv("ADMIN_EMAIL", ""))
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		logrus.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		logrus.WithField("email", email).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("admin seeded")
	return nil
}
