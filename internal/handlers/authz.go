package handlers

import "postboard/internal/models"

// canModify is the ownership check run before every mutating post
// operation. Reading does not require ownership.
func canModify(user models.User, ownerID int64) bool {
	return user.ID == ownerID
}
