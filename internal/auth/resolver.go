package auth

import (
	"github.com/eventease-dev/eventease/db"
	"github.com/eventease-dev/eventease/internal/models"
)

// ResolveUser resolves a bearer token to its account. Any failure, whether a
// malformed or expired token, a bad signature or an unknown subject, resolves
// to anonymous (ok false) rather than an error; callers decide whether
// anonymity is acceptable for the requested action.
func ResolveUser(tokenString string) (models.User, bool) {
	token, err := VerifyJWT(tokenString)

	if err != nil {
		return models.User{}, false
	}

	userID, err := SubjectID(token)

	if err != nil {
		return models.User{}, false
	}

	var user models.User

	if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, false
	}

	return user, true
}
