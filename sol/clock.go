package sol

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/utils"
)

type (
	clockState uint8

	// Clock produces empty slots on the bank at a fixed interval.
	Clock struct {
		bank     *host.Bank
		interval time.Duration

		ctx          context.Context
		cancel       context.CancelFunc
		subprocesses utils.Subprocesses

		stateMu sync.Mutex
		state   clockState
	}
)

const (
	_ clockState = iota
	clockStatePending
	clockStateOpen
	clockStateClosed
)

func NewClock(ctx context.Context, bank *host.Bank, interval time.Duration) *Clock {
	ctx, cancel := context.WithCancel(ctx)
	return &Clock{
		bank:     bank,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		state:    clockStatePending,
	}
}

func (c *Clock) Start() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.state != clockStatePending {
		return errors.New("cannot Start() clock that has already been started")
	}
	if c.interval <= 0 {
		return errors.New("clock interval must be positive")
	}

	c.state = clockStateOpen
	c.subprocesses.Go(c.run)
	return nil
}

func (c *Clock) Close() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.state != clockStateOpen {
		return errors.New("cannot Close() clock that isn't open")
	}

	c.state = clockStateClosed
	c.cancel()
	c.subprocesses.Wait()
	return nil
}

func (c *Clock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.bank.Tick()
		case <-c.ctx.Done():
			return
		}
	}
}
