package visits

import (
	"context"

	"github.com/arboleda/arboleda/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Count(ctx context.Context) (int64, error)
}

type ServiceImpl struct {
	repo Repository
}

// NewService records a visit for every served board published on eventBus.
func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo}
	event_bus.SubscribeTyped(eventBus, event_bus.BoardServedEvent, s.onBoardServed)
	return s
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) onBoardServed(e event_bus.EventT[event_bus.BoardServed]) error {
	count, err := s.repo.Increment(e.Context())
	if err != nil {
		return err
	}
	log.Debugf("Visit %d recorded", count)
	return nil
}
