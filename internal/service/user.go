package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Skotchmaster/premium_service/internal/events"
	"github.com/Skotchmaster/premium_service/internal/models"
	"github.com/Skotchmaster/premium_service/internal/repo"
	"github.com/Skotchmaster/premium_service/internal/tokens"
	"github.com/Skotchmaster/premium_service/internal/transport"
	"github.com/Skotchmaster/premium_service/internal/util"
)

type UserService struct {
	Repo   *repo.GormRepo
	Codec  *tokens.Codec
	Events *events.Emitter
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*transport.UserView, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.view(user)
}

// ListUsers loads one page ordered by id together with the total count.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int64) (*transport.UserPage, error) {
	var (
		total int64
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.Repo.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.Repo.ListUsers(gctx, int(offset), int(limit))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	views := make([]transport.UserView, 0, len(users))
	for i := range users {
		v, err := s.view(&users[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}

	return &transport.UserPage{
		Users: views,
		Paging: transport.Paging{
			TotalUsers:  total,
			TotalPages:  util.TotalPages(total, limit),
			CurrentPage: util.CurrentPage(offset, limit),
		},
	}, nil
}

func (s *UserService) UpdatePremium(ctx context.Context, id, premium int64) (*transport.UserView, error) {
	user, err := s.Repo.SetPremium(ctx, id, premium)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Events.PremiumEvent(ctx, events.TypeUserUpdated, id, user.Premium)
	return s.view(user)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.Events.UserEvent(ctx, events.TypeUserDeleted, id)
	return nil
}

// ConsumePremium takes one credit from the user. A user without credits
// and an unknown user both give ErrPremiumExhausted.
func (s *UserService) ConsumePremium(ctx context.Context, id int64) (int64, error) {
	left, err := s.Repo.ConsumePremium(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNoPremiumLeft) {
			return 0, ErrPremiumExhausted
		}
		return 0, err
	}

	s.Events.PremiumEvent(ctx, events.TypePremiumConsumed, id, left)
	return left, nil
}

// view reads username and role out of the cached token; they are not
// stored as columns.
func (s *UserService) view(user *models.User) (*transport.UserView, error) {
	claims, err := s.Codec.Decode(user.Token)
	if err != nil {
		return nil, fmt.Errorf("decode cached token of user %d: %w", user.ID, err)
	}
	return &transport.UserView{
		ID:        user.ID,
		Username:  claims.Username,
		Role:      claims.Role,
		Premium:   user.Premium,
		CreatedAt: user.CreatedAt,
	}, nil
}
