// internal/app/policy/clubpolicy.go
package clubpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/campushub/internal/domain/models"
)

// IsAdmin reports whether the user is in the club's admin set. Admins
// are members too, so IsMember is also true for them.
func IsAdmin(club *models.Club, userID primitive.ObjectID) bool {
	return contains(club.Admins, userID)
}

// IsMember reports whether the user is in the club's member set.
func IsMember(club *models.Club, userID primitive.ObjectID) bool {
	return contains(club.Members, userID)
}

// IsPending reports whether the user has an open join request.
func IsPending(club *models.Club, userID primitive.ObjectID) bool {
	return contains(club.PendingRequests, userID)
}

// CanManage reports whether the user may approve requests, promote
// members, and post announcements for the club.
func CanManage(club *models.Club, userID primitive.ObjectID) bool {
	return IsAdmin(club, userID)
}

// Participants returns the members who are not admins, preserving
// member-set order.
func Participants(club *models.Club) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(club.Members))
	for _, id := range club.Members {
		if !contains(club.Admins, id) {
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
