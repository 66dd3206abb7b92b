package controllers

import (
	"context"
	"log"
	"time"

	"github.com/hafilati/hafilati-be/db"
)

const PublishSweepInterval = time.Minute

// ScheduledPublisher sweeps scheduled awareness posts whose time has
// elapsed and promotes them to published. The sweep is one UPDATE, so a
// crash between ticks leaves posts scheduled, never half-published.
type ScheduledPublisher struct {
	db          db.AwarenessDatabase
	sweepTicker *time.Ticker
	stop        chan struct{}
}

func NewScheduledPublisher(c context.Context, db db.AwarenessDatabase) *ScheduledPublisher {
	publisher := &ScheduledPublisher{
		db:          db,
		sweepTicker: time.NewTicker(PublishSweepInterval),
		stop:        make(chan struct{}),
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while sweeping scheduled posts", r)
			}
		}()
		for {
			select {
			case <-publisher.sweepTicker.C:
				publisher.attemptToSweep(c)
			case <-publisher.stop:
				return
			}
		}
	}()
	return publisher
}

func (sp *ScheduledPublisher) Stop() {
	sp.sweepTicker.Stop()
	close(sp.stop)
}

func (sp *ScheduledPublisher) attemptToSweep(c context.Context) {
	published, err := sp.db.PublishDueAwarenessPosts(c, time.Now())
	if err != nil {
		log.Println("an error occurred while publishing due posts", err)
		return
	}
	if published > 0 {
		log.Printf("published %v scheduled awareness posts\n", published)
	}
}
