// Package clubflow is the club membership workflow engine. It owns
// every write to a club's role sets (admins, members, pending_requests)
// and to the mirrored club lists on user documents.
//
// State machine per (club, user):
//
//	none    --Join-->    pending
//	pending --Approve--> member     (also mirrors into user.clubs_participated)
//	pending --Decline--> none
//	member  --Promote--> admin      (stays a member; mirrors into user.clubs_administered)
//
// Invariants kept on every transition:
//   - admins ⊆ members
//   - pending_requests ∩ members = ∅
//   - user.clubs_participated / clubs_administered mirror membership
//
// Two-document transitions run in a Mongo transaction when the
// deployment supports one. On a standalone server the engine falls
// back to sequential writes, club document first, so a crash between
// the two writes leaves the club sets authoritative and the user
// mirror repairable.
package clubflow

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/campushub/campushub/internal/app/policy/clubpolicy"
	"github.com/campushub/campushub/internal/app/system/txn"
	"github.com/campushub/campushub/internal/domain/models"
)

// Sentinel errors. Handlers map these to the API error taxonomy.
var (
	ErrClubNotFound   = errors.New("club not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateName  = errors.New("a club with this name already exists")
	ErrAlreadyMember  = errors.New("user is already a member of this club")
	ErrAlreadyPending = errors.New("user already has a pending request for this club")
	ErrAlreadyAdmin   = errors.New("user is already an admin of this club")
	ErrNotPending     = errors.New("user has no pending request for this club")
	ErrNotMember      = errors.New("user is not a member of this club")
	ErrEmptyName      = errors.New("club name is required")
)

// MemberInfo is the projection returned by member listings.
type MemberInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	RegNo string             `json:"regno"`
}

// Engine coordinates club and user documents.
type Engine struct {
	client *mongo.Client
	clubs  *mongo.Collection
	users  *mongo.Collection
	log    *zap.Logger
}

// New builds the engine over the given database.
func New(client *mongo.Client, db *mongo.Database, log *zap.Logger) *Engine {
	return &Engine{
		client: client,
		clubs:  db.Collection("clubs"),
		users:  db.Collection("users"),
		log:    log,
	}
}

// ClubProfile carries the descriptive fields of a new club. Role sets
// are not part of the profile; the engine seeds them itself.
type ClubProfile struct {
	Name           string
	Description    string
	FacultyAdvisor []primitive.ObjectID
	ImageURL       string
}

// CreateClub inserts a club with the creator as its first admin and
// member, and mirrors both roles onto the creator's user document.
func (e *Engine) CreateClub(ctx context.Context, profile ClubProfile, creatorID primitive.ObjectID) (*models.Club, error) {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	advisors := profile.FacultyAdvisor
	if advisors == nil {
		advisors = []primitive.ObjectID{}
	}

	now := time.Now()
	club := models.Club{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Description:     strings.TrimSpace(profile.Description),
		CreatedBy:       creatorID,
		ImageURL:        profile.ImageURL,
		Admins:          []primitive.ObjectID{creatorID},
		Members:         []primitive.ObjectID{creatorID},
		PendingRequests: []primitive.ObjectID{},
		FacultyAdvisor:  advisors,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := e.twoStep(ctx,
		func(sc context.Context) error {
			if _, err := e.clubs.InsertOne(sc, club); err != nil {
				if wafflemongo.IsDup(err) {
					return ErrDuplicateName
				}
				return err
			}
			return nil
		},
		func(sc context.Context) error {
			res, err := e.users.UpdateOne(sc, bson.M{"_id": creatorID}, bson.M{
				"$addToSet": bson.M{
					"clubs_participated": club.ID,
					"clubs_administered": club.ID,
				},
				"$set": bson.M{"updated_at": now},
			})
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return ErrUserNotFound
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	e.log.Info("club created",
		zap.String("club_id", club.ID.Hex()),
		zap.String("name", club.Name),
		zap.String("creator_id", creatorID.Hex()))
	return &club, nil
}

// Join records a membership request. The transition none -> pending
// is a single filtered update, so concurrent joins collapse to one
// pending entry.
func (e *Engine) Join(ctx context.Context, clubID, userID primitive.ObjectID) error {
	club, err := e.getClub(ctx, clubID)
	if err != nil {
		return err
	}
	if clubpolicy.IsMember(club, userID) {
		return ErrAlreadyMember
	}

	res, err := e.clubs.UpdateOne(ctx,
		bson.M{
			"_id":              clubID,
			"members":          bson.M{"$ne": userID},
			"pending_requests": bson.M{"$ne": userID},
		},
		bson.M{
			"$push": bson.M{"pending_requests": userID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// The filter lost a race: re-read to report the right state.
		club, err = e.getClub(ctx, clubID)
		if err != nil {
			return err
		}
		if clubpolicy.IsMember(club, userID) {
			return ErrAlreadyMember
		}
		return ErrAlreadyPending
	}
	return nil
}

// Approve moves a pending user into the member set and mirrors the
// club onto the user document. The club-side update is one document
// write, so pending removal and member addition are atomic even
// without a transaction.
func (e *Engine) Approve(ctx context.Context, clubID, userID primitive.ObjectID) error {
	now := time.Now()

	return e.twoStep(ctx,
		func(sc context.Context) error {
			res, err := e.clubs.UpdateOne(sc,
				bson.M{"_id": clubID, "pending_requests": userID},
				bson.M{
					"$pull": bson.M{"pending_requests": userID},
					"$push": bson.M{"members": userID},
					"$set":  bson.M{"updated_at": now},
				},
			)
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return e.explainMissingPending(sc, clubID, userID)
			}
			return nil
		},
		func(sc context.Context) error {
			res, err := e.users.UpdateOne(sc, bson.M{"_id": userID}, bson.M{
				"$addToSet": bson.M{"clubs_participated": clubID},
				"$set":      bson.M{"updated_at": now},
			})
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return ErrUserNotFound
			}
			return nil
		},
	)
}

// Decline removes a pending request. Single-document transition.
func (e *Engine) Decline(ctx context.Context, clubID, userID primitive.ObjectID) error {
	res, err := e.clubs.UpdateOne(ctx,
		bson.M{"_id": clubID, "pending_requests": userID},
		bson.M{
			"$pull": bson.M{"pending_requests": userID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return e.explainMissingPending(ctx, clubID, userID)
	}
	return nil
}

// Promote adds a member to the admin set and mirrors the club into
// the user's administered list. The member entry is kept: admins are
// always members.
func (e *Engine) Promote(ctx context.Context, clubID, userID primitive.ObjectID) error {
	now := time.Now()

	return e.twoStep(ctx,
		func(sc context.Context) error {
			res, err := e.clubs.UpdateOne(sc,
				bson.M{"_id": clubID, "members": userID, "admins": bson.M{"$ne": userID}},
				bson.M{
					"$push": bson.M{"admins": userID},
					"$set":  bson.M{"updated_at": now},
				},
			)
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				club, err := e.getClub(sc, clubID)
				if err != nil {
					return err
				}
				if clubpolicy.IsAdmin(club, userID) {
					return ErrAlreadyAdmin
				}
				return ErrNotMember
			}
			return nil
		},
		func(sc context.Context) error {
			res, err := e.users.UpdateOne(sc, bson.M{"_id": userID}, bson.M{
				"$addToSet": bson.M{"clubs_administered": clubID},
				"$set":      bson.M{"updated_at": now},
			})
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return ErrUserNotFound
			}
			return nil
		},
	)
}

// Pending lists the users with open join requests for a club.
func (e *Engine) Pending(ctx context.Context, clubID primitive.ObjectID) ([]MemberInfo, error) {
	club, err := e.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return e.memberInfos(ctx, club.PendingRequests)
}

// Participants lists the members of a club who are not admins.
func (e *Engine) Participants(ctx context.Context, clubID primitive.ObjectID) ([]MemberInfo, error) {
	club, err := e.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return e.memberInfos(ctx, clubpolicy.Participants(club))
}

// Admins lists a club's admins.
func (e *Engine) Admins(ctx context.Context, clubID primitive.ObjectID) ([]MemberInfo, error) {
	club, err := e.getClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return e.memberInfos(ctx, club.Admins)
}

// ClubsForUser returns the union of the clubs a user participates in
// and administers, deduplicated.
func (e *Engine) ClubsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Club, error) {
	var u models.User
	if err := e.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	total := len(u.ClubsParticipated) + len(u.ClubsAdministered)
	seen := make(map[primitive.ObjectID]struct{}, total)
	ids := make([]primitive.ObjectID, 0, total)
	for _, id := range append(append([]primitive.ObjectID{}, u.ClubsParticipated...), u.ClubsAdministered...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []models.Club{}, nil
	}

	cur, err := e.clubs.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, nil
}

// twoStep runs the club write then the user write inside a transaction
// when the deployment supports one, otherwise sequentially with the
// club document first.
func (e *Engine) twoStep(ctx context.Context, clubWrite, userWrite func(context.Context) error) error {
	err := txn.WithTransaction(ctx, e.client, func(sc mongo.SessionContext) error {
		if err := clubWrite(sc); err != nil {
			return err
		}
		return userWrite(sc)
	})
	if err == nil || !txn.IsNotSupported(err) {
		return err
	}

	e.log.Debug("transactions unavailable, using sequential writes")
	if err := clubWrite(ctx); err != nil {
		return err
	}
	if err := userWrite(ctx); err != nil {
		// Club sets are authoritative; surface the mirror failure.
		e.log.Error("user mirror update failed after club write", zap.Error(err))
		return err
	}
	return nil
}

func (e *Engine) getClub(ctx context.Context, clubID primitive.ObjectID) (*models.Club, error) {
	var c models.Club
	if err := e.clubs.FindOne(ctx, bson.M{"_id": clubID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

// explainMissingPending distinguishes the failure modes behind a
// filtered pending update that matched nothing.
func (e *Engine) explainMissingPending(ctx context.Context, clubID, userID primitive.ObjectID) error {
	club, err := e.getClub(ctx, clubID)
	if err != nil {
		return err
	}
	if clubpolicy.IsMember(club, userID) {
		return ErrAlreadyMember
	}
	return ErrNotPending
}

func (e *Engine) memberInfos(ctx context.Context, ids []primitive.ObjectID) ([]MemberInfo, error) {
	if len(ids) == 0 {
		return []MemberInfo{}, nil
	}
	cur, err := e.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]MemberInfo, len(ids))
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		byID[u.ID] = MemberInfo{ID: u.ID, Name: u.Name, RegNo: u.RegNo}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// Preserve the role-set order; skip dangling references.
	out := make([]MemberInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := byID[id]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}
