package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/achievements"
	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/levels"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=users_test

const (
	DefaultProfileCacheTTL = 2 * time.Minute
	minPasswordLength      = 6
	maxUsernameLength      = 30
)

type usersRepo interface {
	Create(ctx context.Context, user User) (int64, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FollowCounts(ctx context.Context, userID int64) (followers, following int, err error)
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	Follow(ctx context.Context, followerID, followeeID int64, at time.Time) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	SavePushSubscription(ctx context.Context, userID int64, subscription json.RawMessage) error
}

type tokenIssuer interface {
	Issue(userID int64, username string, now time.Time) (string, *auth.Claims, error)
}

type tokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type achievementLister interface {
	ListForUser(ctx context.Context, userID int64) ([]achievements.Achievement, error)
}

type Service struct {
	repo         usersRepo
	tokens       tokenIssuer
	revoker      tokenRevoker
	achievements achievementLister
	levels       *levels.Table
	profileCache *gocache.Cache
	now          func() time.Time
}

func NewService(
	repo usersRepo,
	tokens tokenIssuer,
	revoker tokenRevoker,
	achievements achievementLister,
	levelTable *levels.Table,
	profileCache *gocache.Cache,
) *Service {
	return &Service{
		repo:         repo,
		tokens:       tokens,
		revoker:      revoker,
		achievements: achievements,
		levels:       levelTable,
		profileCache: profileCache,
		now:          time.Now,
	}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (_ *AuthResult, err error) {
	const op = "users.register"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateRegistration(op, username, email, password); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}

	user := User{
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		Role:           RoleUser,
		IsActive:       true,
		ProfilePicture: defaultProfilePicture(username),
		CreatedAt:      s.now(),
	}
	user.ID, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, apperrors.Conflict(op, "a user with this username or email already exists")
		}
		return nil, apperrors.Dependency(op, err)
	}

	log.Infof("new user registered: %d %s", user.ID, user.Username)
	return s.issue(op, &user)
}

// Login answers every credential mismatch the same way.
func (s *Service) Login(ctx context.Context, email, password string) (_ *AuthResult, err error) {
	const op = "users.login"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.login")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation(op, "email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.Unauthorized(op, "invalid credentials")
		}
		return nil, apperrors.Dependency(op, err)
	}
	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		log.Tracef("failed login attempt for user: %d", user.ID)
		return nil, apperrors.Unauthorized(op, "invalid credentials")
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(op, "account is disabled, contact support")
	}

	return s.issue(op, user)
}

func (s *Service) issue(op string, user *User) (*AuthResult, error) {
	token, claims, err := s.tokens.Issue(user.ID, user.Username, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: issue token: %w", op, err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revoker.Revoke(ctx, claims); err != nil {
		return apperrors.Dependency("users.logout", err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (_ *Profile, err error) {
	const op = "users.profile"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound(op, "user not found")
		}
		return nil, apperrors.Dependency(op, err)
	}

	levelInfo, err := s.levels.Resolve(user.XP)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}

	return &Profile{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		XP:             user.XP,
		ProfilePicture: user.ProfilePicture,
		LevelInfo:      levelInfo,
		CreatedAt:      user.CreatedAt,
	}, nil
}

// PublicProfile serves the viewer independent part from cache and resolves
// isFollowing for every call.
func (s *Service) PublicProfile(ctx context.Context, viewerID int64, username string) (_ *PublicProfile, err error) {
	const op = "users.publicProfile"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.publicProfile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var profile PublicProfile
	if cached, found := s.profileCache.Get(profileCacheKey(username)); found {
		profile = cached.(PublicProfile)
	} else {
		loaded, err := s.loadPublicProfile(ctx, op, username)
		if err != nil {
			return nil, err
		}
		profile = *loaded
		s.profileCache.SetDefault(profileCacheKey(username), profile)
	}

	if viewerID != profile.ID {
		profile.IsFollowing, err = s.repo.IsFollowing(ctx, viewerID, profile.ID)
		if err != nil {
			return nil, apperrors.Dependency(op, err)
		}
	}

	return &profile, nil
}

func (s *Service) loadPublicProfile(ctx context.Context, op, username string) (*PublicProfile, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound(op, "user not found")
		}
		return nil, apperrors.Dependency(op, err)
	}

	levelInfo, err := s.levels.Resolve(user.XP)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}

	followers, following, err := s.repo.FollowCounts(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}

	list, err := s.achievements.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	unlocked := make([]achievements.Achievement, 0, len(list))
	for _, a := range list {
		if a.Unlocked {
			unlocked = append(unlocked, a)
		}
	}

	return &PublicProfile{
		ID:             user.ID,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		XP:             user.XP,
		LevelInfo:      levelInfo,
		Followers:      followers,
		Following:      following,
		Achievements:   unlocked,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (s *Service) Follow(ctx context.Context, follower *auth.Claims, followeeID int64) error {
	const op = "users.follow"
	followee, err := s.followTarget(ctx, op, follower, followeeID)
	if err != nil {
		return err
	}

	if err := s.repo.Follow(ctx, follower.UserID, followee.ID, s.now()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFound(op, "user not found")
		}
		return apperrors.Dependency(op, err)
	}

	s.invalidateProfiles(follower.Username, followee.Username)
	return nil
}

func (s *Service) Unfollow(ctx context.Context, follower *auth.Claims, followeeID int64) error {
	const op = "users.unfollow"
	followee, err := s.followTarget(ctx, op, follower, followeeID)
	if err != nil {
		return err
	}

	if err := s.repo.Unfollow(ctx, follower.UserID, followee.ID); err != nil {
		return apperrors.Dependency(op, err)
	}

	s.invalidateProfiles(follower.Username, followee.Username)
	return nil
}

func (s *Service) followTarget(ctx context.Context, op string, follower *auth.Claims, followeeID int64) (*User, error) {
	if follower.UserID == followeeID {
		return nil, apperrors.Validation(op, "you cannot follow yourself")
	}
	followee, err := s.repo.GetByID(ctx, followeeID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound(op, "user not found")
		}
		return nil, apperrors.Dependency(op, err)
	}
	return followee, nil
}

func (s *Service) invalidateProfiles(usernames ...string) {
	for _, username := range usernames {
		s.profileCache.Delete(profileCacheKey(username))
	}
}

func validateRegistration(op, username, email, password string) error {
	if username == "" {
		return apperrors.Validation(op, "username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return apperrors.Validation(op, fmt.Sprintf("username must be at most %d characters", maxUsernameLength))
	}
	if strings.ContainsAny(username, " /") {
		return apperrors.Validation(op, "username must not contain spaces or slashes")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.Validation(op, "invalid email")
	}
	if len(password) < minPasswordLength {
		return apperrors.Validation(op, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > pkg.MaxPasswordBytes {
		return apperrors.Validation(op, fmt.Sprintf("password must be at most %d bytes", pkg.MaxPasswordBytes))
	}
	return nil
}

func profileCacheKey(username string) string {
	return "profile||" + username
}
