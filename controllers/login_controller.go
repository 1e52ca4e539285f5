package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"Scribbler/auth"
	"Scribbler/models"
	"Scribbler/security"
	"Scribbler/utils/formaterror"

	"github.com/gin-gonic/gin"
)

// Login godoc
// @Summary      Log in
// @Description  Authenticate with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Router       /login [post]
func (server *Server) Login(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Unable to get request",
		})
		return
	}
	user := models.User{}
	err = json.Unmarshal(body, &user)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	user.Prepare()
	errorMessages := user.Validate("login")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}
	userData, err := server.SignIn(user.Username, user.Password)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(username, password string) (map[string]interface{}, error) {
	userData := make(map[string]interface{})

	user := models.User{}

	normalized := strings.ToLower(username)
	err := server.DB.Model(models.User{}).Where("username = ?", normalized).Take(&user).Error
	if err != nil {
		return nil, err
	}
	err = security.VerifyPassword(user.Password, password)
	if err != nil {
		return nil, err
	}
	token, err := auth.CreateToken(user.ID)
	if err != nil {
		return nil, err
	}
	userData["token"] = token
	userData["id"] = user.ID
	userData["public_id"] = user.PublicID
	userData["username"] = user.Username
	userData["email"] = user.Email

	return userData, nil
}
