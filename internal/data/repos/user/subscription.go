package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	// Create fails with gorm.ErrDuplicatedKey when the pair already exists.
	Create(dbc dbctx.Context, sub *types.Subscription) error
	Delete(dbc dbctx.Context, userID, authorID uuid.UUID) (int64, error)
	Exists(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error)
	// Following returns the subset of authorIDs that userID follows.
	Following(dbc dbctx.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	// ListAuthors pages the authors userID follows, most recent subscription first.
	ListAuthors(dbc dbctx.Context, userID uuid.UUID, offset, limit int) ([]*types.User, int64, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (r *subscriptionRepo) Create(dbc dbctx.Context, sub *types.Subscription) error {
	return dbc.Conn(r.db).Omit("Author").Create(sub).Error
}

func (r *subscriptionRepo) Delete(dbc dbctx.Context, userID, authorID uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepo) Exists(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepo) Following(dbc dbctx.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(authorIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := dbc.Conn(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *subscriptionRepo) ListAuthors(dbc dbctx.Context, userID uuid.UUID, offset, limit int) ([]*types.User, int64, error) {
	var total int64
	if err := dbc.Conn(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subs []*types.Subscription
	if err := dbc.Conn(r.db).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	authors := make([]*types.User, 0, len(subs))
	for _, s := range subs {
		if s.Author != nil {
			authors = append(authors, s.Author)
		}
	}
	return authors, total, nil
}
