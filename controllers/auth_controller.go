package controllers

import (
	"net/http"
	"strings"

	"backend/configs"
	"backend/entity"
	"backend/pkg/resp"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"omitempty,oneof=admin partner"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

func userPayload(u *entity.User, p *entity.Partner) gin.H {
	out := gin.H{
		"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role,
	}
	if u.Avatar != "" {
		out["avatar"] = u.Avatar
	}
	if p != nil {
		out["isAvailable"] = p.IsAvailable
		if p.Phone != "" {
			out["phone"] = p.Phone
		}
		if p.VehicleNumber != "" {
			out["vehicleNumber"] = p.VehicleNumber
		}
	}
	return out
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var exist entity.User
	if err := a.DB.Where("email = ?", email).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "partner"
	}

	user := entity.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	var partner *entity.Partner

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == "partner" {
			partner = &entity.Partner{
				UserID:        user.ID,
				Phone:         strings.TrimSpace(req.Phone),
				VehicleNumber: strings.TrimSpace(req.VehicleNumber),
				IsAvailable:   true,
			}
			return tx.Create(partner).Error
		}
		return nil
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":    true,
		"token": token,
		"user":  userPayload(&user, partner),
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var user entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	var partner *entity.Partner
	if user.Role == "partner" {
		var p entity.Partner
		if err := a.DB.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			partner = &p
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user":  userPayload(&user, partner),
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var user entity.User
	if err := a.DB.First(&user, uid).Error; err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	var partner *entity.Partner
	if user.Role == "partner" {
		var p entity.Partner
		if err := a.DB.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			partner = &p
		}
	}
	resp.OK(c, userPayload(&user, partner))
}

// POST /auth/logout — tokens are stateless; the endpoint exists so
// sign-out can notify the backend and be audited.
func (a *AuthController) Logout(c *gin.Context) {
	logrus.WithField("userId", utils.CurrentUserID(c)).Info("user signed out")
	resp.OK(c, gin.H{"message": "signed out"})
}
