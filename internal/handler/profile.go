package handler

import (
	"net/http"
	"strings"

	"expenza/internal/middleware"
	"expenza/internal/models"
	"expenza/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileReq struct {
	Name  string `json:"name" binding:"max=64"`
	Bio   string `json:"bio" binding:"max=255"`
	Photo string `json:"photo"`
}

func profileJSON(user *models.User, p *models.Profile) gin.H {
	return gin.H{
		"id":    p.ID,
		"email": user.Email,
		"name":  p.Name,
		"bio":   p.Bio,
		"photo": p.Photo,
	}
}

// GetMyProfile returns the caller's profile, 404 if never created.
func GetMyProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		var profile models.Profile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusNotFound, "profile not found")
			} else {
				util.Error(c, http.StatusInternalServerError, "failed to fetch profile")
			}
			return
		}

		c.JSON(http.StatusOK, profileJSON(user, &profile))
	}
}

// UpsertMyProfile creates or replaces the caller's profile.
func UpsertMyProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req profileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, "invalid profile")
			return
		}

		profile := models.Profile{
			UserID: user.ID,
			Name:   strings.TrimSpace(req.Name),
			Bio:    strings.TrimSpace(req.Bio),
			Photo:  req.Photo,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "bio", "photo", "updated_at"}),
		}).Create(&profile).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to save profile")
			return
		}

		// re-read so the response carries the row's real primary key
		// after an upsert that hit the conflict path
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to save profile")
			return
		}

		c.JSON(http.StatusOK, profileJSON(user, &profile))
	}
}

// DeleteMyProfile removes the caller's profile if present.
func DeleteMyProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := db.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "failed to delete profile")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
	}
}
