package authController

import (
	"errors"
	"log"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	authValidator "lms/validators/auth"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user account. Duplicate checks are reported through
// the same field map as format errors, so the client gets one consistent
// validation shape.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	errors := make(map[string]string)

	// Email comparison is case-insensitive: the stored value is lowercased
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		errors["email"] = "This email is already registered!"
	}
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		errors["username"] = "This username is already taken!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}

	newUser := models.User{
		Username:  reqData.Username,
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Role:      role,
		IsStaff:   role == models.RoleAdmin,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	go func(user models.User) {
		if err := utils.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Printf("Welcome email for %s failed: %v", user.Email, err)
		}
	}(newUser)

	go syncRegistration(newUser)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser.Public())
}

// syncRegistration notifies an external system about the new account. Best
// effort only: errors are logged and never surfaced to the client.
func syncRegistration(user models.User) {
	webhookURL := config.AppConfig.RegistrationWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetBody(map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Error calling registration webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("Registration webhook rejected user %s: %s", user.Email, resp.String())
	}
}

// Login verifies credentials and sets the token cookies. The identifier may
// be a username or an email; email matching is case-insensitive.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var user models.User

	identifier := reqData.Username
	if identifier == "" {
		identifier = reqData.Email
	}

	err := db.Where("(username = ? OR email = ?) AND is_deleted = ?",
		identifier, strings.ToLower(strings.TrimSpace(identifier)), false).
		First(&user).Error
	if err != nil {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "Invalid username or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "Invalid username or password.")
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating token pair: %v", err)
		return middleware.DetailResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens.")
	}

	user.LastLogin = time.Now()
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	record := models.LoginRecord{
		UserID:    user.ID,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: time.Now(),
	}
	if err := db.Create(&record).Error; err != nil {
		log.Printf("Error saving login record: %v", err)
	}

	middleware.AttachTokenCookies(c, access, refresh)

	return middleware.DetailResponse(c, fiber.StatusOK, "Login successful.")
}

// Refresh reads the refresh cookie (never the body) and rotates the pair.
// A missing cookie is a distinct failure from an invalid one.
func Refresh(c *fiber.Ctx) error {
	raw := middleware.ExtractToken(c, config.AppConfig.RefreshCookieName)

	userID, _, err := middleware.ParseToken(raw, middleware.TokenTypeRefresh)
	if errors.Is(err, middleware.ErrTokenMissing) {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "refresh token not found")
	}
	if err != nil {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "Refresh token is invalid or expired.")
	}

	// The role claim is re-read from the store so a role change takes effect
	// on the next refresh rather than surviving for the refresh lifetime
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "Refresh token is invalid or expired.")
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		log.Printf("Error rotating token pair: %v", err)
		return middleware.DetailResponse(c, fiber.StatusInternalServerError, "Failed to generate tokens.")
	}

	middleware.AttachTokenCookies(c, access, refresh)

	return middleware.DetailResponse(c, fiber.StatusOK, "Token refreshed.")
}

// Logout clears both token cookies. Idempotent: logging out without a
// session is still a 200. The signed tokens themselves stay valid until
// expiry; there is no server-side denylist.
func Logout(c *fiber.Ctx) error {
	middleware.ClearTokenCookies(c)
	return middleware.DetailResponse(c, fiber.StatusOK, "Logged out.")
}

// Me returns the authenticated user's public profile
func Me(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", auth.UserID, false).First(&user).Error; err != nil {
		return middleware.DetailResponse(c, fiber.StatusUnauthorized, "User not found.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user.Public())
}

// LoginHistoryList returns the user's paginated login history
func LoginHistoryList(c *fiber.Ctx) error {
	auth := middleware.GetAuth(c)
	db := database.Database.Db

	page, limit := 1, 10
	if reqData, ok := c.Locals("validatedList").(*authValidator.PageRequest); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	query := db.Model(&models.LoginRecord{}).Where("user_id = ?", auth.UserID)

	var total int64
	query.Count(&total)

	var records []models.LoginRecord
	if err := query.Offset(offset).Limit(limit).Order("timestamp desc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully!", fiber.Map{
		"logins": records,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
