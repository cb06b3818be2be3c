package engine

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Controller is the shared run flag between the render loop, the audio loop and signal delivery
// Running starts true and only ever transitions to false
type Controller struct {
	stopped atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewController creates a running controller derived from parent
func NewController(parent context.Context) *Controller {
	ctx, cancel := context.WithCancel(parent)
	c := &Controller{ctx: ctx, cancel: cancel}
	// Parent cancellation also stops the run
	context.AfterFunc(ctx, func() { c.stopped.Store(true) })
	return c
}

// Running reports whether the run should continue
func (c *Controller) Running() bool {
	return !c.stopped.Load()
}

// Stop requests shutdown; safe to call repeatedly from any goroutine
func (c *Controller) Stop() {
	c.stopped.Store(true)
	c.cancel()
}

// Done is closed once Stop has been called
func (c *Controller) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Context returns the context cancelled on Stop
func (c *Controller) Context() context.Context {
	return c.ctx
}

// NotifySignals stops the controller on SIGINT or SIGTERM
// The returned function uninstalls the handler
func (c *Controller) NotifySignals() func() {
	return c.notify(os.Interrupt, syscall.SIGTERM)
}

func (c *Controller) notify(sigs ...os.Signal) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	quit := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			log.Printf("engine: received %v, stopping", sig)
			c.Stop()
		case <-quit:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(quit)
		})
	}
}
