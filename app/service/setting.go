package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type settingReader interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
}

type settingRepository interface {
	settingReader
	List(ctx context.Context) ([]*entity.Setting, error)
	Upsert(ctx context.Context, item *entity.Setting) error
}

var numericSettings = map[string]bool{
	entity.SettingCourtHourlyRateCents: true,
	entity.SettingCourtMemberRateCents: true,
}

type SettingService struct {
	repo     settingRepository
	activity activityRecorder
	now      func() time.Time
	logger   logrus.FieldLogger
}

func NewSettingService(repo settingRepository, activity activityRecorder) *SettingService {
	return &SettingService{
		repo:     repo,
		activity: activity,
		now:      time.Now,
		logger:   factory.NewModuleLogger("setting-service"),
	}
}

func (s *SettingService) List(ctx context.Context) ([]*entity.Setting, error) {
	return s.repo.List(ctx)
}

func (s *SettingService) Update(ctx context.Context, actor entity.Actor, req *types.UpdateSettingRequest) (*entity.Setting, error) {
	if numericSettings[req.Key] {
		if _, err := strconv.ParseInt(req.Value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSettingValueNotNumeric, req.Key)
		}
	}

	existing, err := s.repo.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	item := &entity.Setting{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		UpdatedAt:   s.now().UTC(),
	}
	if item.Description == "" && existing != nil {
		item.Description = existing.Description
	}

	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Set %s to %s", item.Key, item.Value)
	if existing != nil {
		description = fmt.Sprintf("Changed %s from %s to %s", item.Key, existing.Value, item.Value)
	}
	if _, err := s.activity.Log(ctx, actor, "setting.updated", stringPtr(description), nil); err != nil {
		s.logger.WithError(err).WithField("key", item.Key).Warn("Failed to write activity log")
	}
	return item, nil
}

// intSetting reads key as an integer. found is false when the key is not configured.
func intSetting(ctx context.Context, reader settingReader, key string) (value int64, found bool, err error) {
	item, err := reader.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if item == nil {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(item.Value, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s", ErrSettingValueNotNumeric, key)
	}
	return value, true, nil
}
