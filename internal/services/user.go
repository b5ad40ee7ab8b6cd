package services

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type CreateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	IsStaff   bool
}

type UserService interface {
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*UserView, error)
	Me(ctx context.Context, actor Actor) (*UserView, error)
	List(ctx context.Context, actor Actor, page Page) (*Paged[UserView], error)
	CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error)
}

type userService struct {
	db    *gorm.DB
	log   *logger.Logger
	users repos.UserRepo
	subs  repos.SubscriptionRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, users repos.UserRepo, subs repos.SubscriptionRepo) UserService {
	return &userService{
		db:    db,
		log:   log.With("service", "UserService"),
		users: users,
		subs:  subs,
	}
}

func (s *userService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*UserView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	u, err := s.users.GetByID(dbc, id)
	if err != nil {
		return nil, internalError("user_read_failed", err)
	}
	if u == nil {
		return nil, notFoundError("user_not_found", "user %s not found", id)
	}
	views, err := s.views(dbc, actor, []*types.User{u})
	if err != nil {
		return nil, internalError("user_read_failed", err)
	}
	return &views[0], nil
}

func (s *userService) Me(ctx context.Context, actor Actor) (*UserView, error) {
	if actor.Anonymous() {
		return nil, unauthorizedError()
	}
	u, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, actor.UserID)
	if err != nil {
		return nil, internalError("user_read_failed", err)
	}
	if u == nil {
		return nil, unauthorizedError()
	}
	v := newUserView(u, false)
	return &v, nil
}

func (s *userService) List(ctx context.Context, actor Actor, page Page) (*Paged[UserView], error) {
	dbc := dbctx.Context{Ctx: ctx}
	users, total, err := s.users.List(dbc, page.Offset(), page.Size)
	if err != nil {
		return nil, internalError("user_read_failed", err)
	}
	views, err := s.views(dbc, actor, users)
	if err != nil {
		return nil, internalError("user_read_failed", err)
	}
	return &Paged[UserView]{Count: total, Results: views}, nil
}

func (s *userService) views(dbc dbctx.Context, actor Actor, users []*types.User) ([]UserView, error) {
	following := map[uuid.UUID]bool{}
	if !actor.Anonymous() && len(users) > 0 {
		ids := make([]uuid.UUID, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		var err error
		following, err = s.subs.Following(dbc, actor.UserID, ids)
		if err != nil {
			return nil, err
		}
	}
	out := make([]UserView, len(users))
	for i, u := range users {
		out[i] = newUserView(u, following[u.ID])
	}
	return out, nil
}

func (s *userService) CreateUser(ctx context.Context, in CreateUserInput) (*types.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if _, err := mail.ParseAddress(in.Email); err != nil || len(in.Email) > 254 {
		return nil, validationError("invalid_email", "invalid email %q", in.Email)
	}
	if in.Username == "" || len(in.Username) > 150 || !usernamePattern.MatchString(in.Username) {
		return nil, validationError("invalid_username", "invalid username %q", in.Username)
	}
	if strings.EqualFold(in.Username, "me") {
		return nil, validationError("invalid_username", "username %q is reserved", in.Username)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, validationError("name_required", "first and last name are required")
	}
	if len(in.Password) < 8 {
		return nil, validationError("password_too_short", "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("user_write_failed", err)
	}

	u := &types.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Username:  in.Username,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Password:  string(hash),
		IsStaff:   in.IsStaff,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.users.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.User{u})
		if isDuplicate(err) {
			return conflictError("user_exists", "a user with this email or username already exists")
		}
		return err
	})
	if err != nil {
		return nil, passThrough("user_write_failed", err)
	}
	s.log.Info("User created", "user_id", u.ID, "staff", u.IsStaff)
	return u, nil
}
