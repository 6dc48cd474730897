// Package editor wires a document to its schema, conversion, commands and
// configuration.
//
// An Editor is the host the block format features register with. It owns
// one document and is not safe for concurrent use, apart from the
// configuration store it reads the default format from.
package editor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/config"
	"github.com/dshills/blockfmt/internal/conversion"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/tree"
	"github.com/dshills/blockfmt/internal/enter"
	"github.com/dshills/blockfmt/internal/heading"
	"github.com/dshills/blockfmt/internal/observable"
	"github.com/dshills/blockfmt/internal/schema"
	"github.com/dshills/blockfmt/internal/undo"
)

// Editor is a document with the block format features installed.
type Editor struct {
	doc      *engine.Document
	schema   *schema.Schema
	conv     *conversion.Conversion
	commands *command.Registry
	logger   *zap.Logger
	store    *config.Store

	heading *heading.Command

	// Config watching
	watchPath string
	watcher   *config.Watcher
	configSub *observable.Subscription
	cancel    context.CancelFunc

	destroyOnce sync.Once
	destroyed   bool
}

// New creates an editor. Without options it uses the built-in configuration
// and discards logs.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		schema:   schema.New(),
		conv:     conversion.New(),
		commands: command.NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = config.NewStore(nil)
	}

	if err := e.bootstrap(); err != nil {
		e.Destroy()
		return nil, err
	}
	return e, nil
}

// bootstrap initializes all components in dependency order.
func (e *Editor) bootstrap() error {
	cfg := e.store.Get()

	// 1. Document
	e.doc = engine.New(engine.WithLogger(e.logger.Named("engine")))

	// 2. Default block
	if err := e.registerDefaultBlock(cfg); err != nil {
		return &InitError{Component: "default block", Err: err}
	}

	// 3. Features
	cmd, err := heading.Register(e, Formats(cfg))
	if err != nil {
		return &InitError{Component: "heading", Err: err}
	}
	e.heading = cmd

	enterCmd := enter.New(e.doc,
		enter.WithDefaultID(func() string { return e.heading.DefaultFormat().ID }),
		enter.WithLogger(e.logger.Named("enter")),
	)
	if err := e.commands.Register(enter.CommandName, enterCmd); err != nil {
		return &InitError{Component: "enter", Err: err}
	}
	if err := undo.Register(e.commands, e.doc); err != nil {
		return &InitError{Component: "undo", Err: err}
	}

	// 4. Config reload
	e.configSub = e.store.Subscribe(e.onConfigChange)
	if e.watchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel
		w, err := config.Watch(ctx, e.watchPath, e.store, config.WithWatchLogger(e.logger.Named("config")))
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
		e.watcher = w
	}

	e.logger.Debug("editor ready", zap.Strings("commands", e.commands.Names()))
	return nil
}

// registerDefaultBlock declares the default format, which the heading
// feature leaves to the host.
func (e *Editor) registerDefaultBlock(cfg *config.Config) error {
	id := e.store.DefaultFormatID()
	view := "p"
	if opt, ok := cfg.Option(id); ok {
		view = opt.View
	}

	err := e.schema.Register(schema.Definition{
		Name:      id,
		AllowIn:   []string{tree.RootName},
		AllowText: true,
		IsBlock:   true,
	})
	if err != nil {
		return err
	}
	return e.conv.ElementToElement(id, view)
}

// onConfigChange runs on the goroutine that replaced the configuration.
// Only the default id is live; the format list is fixed for the session.
func (e *Editor) onConfigChange(cfg *config.Config) {
	e.logger.Info("configuration changed",
		zap.String("default", cfg.Heading.Default),
		zap.Int("formats", len(cfg.Heading.Options)),
	)
}

// Formats converts the heading options of cfg into block formats.
func Formats(cfg *config.Config) []heading.Format {
	formats := make([]heading.Format, 0, len(cfg.Heading.Options))
	for _, opt := range cfg.Heading.Options {
		label := opt.Title
		if label == "" {
			label = config.Label(opt.Model)
		}
		formats = append(formats, heading.Format{ID: opt.Model, ViewTag: opt.View, Label: label})
	}
	return formats
}

// Document returns the edited document.
func (e *Editor) Document() *engine.Document {
	return e.doc
}

// Schema returns the element schema.
func (e *Editor) Schema() *schema.Schema {
	return e.schema
}

// Conversion returns the model/view conversion.
func (e *Editor) Conversion() *conversion.Conversion {
	return e.conv
}

// Commands returns the command registry.
func (e *Editor) Commands() *command.Registry {
	return e.commands
}

// Logger returns the editor logger.
func (e *Editor) Logger() *zap.Logger {
	return e.logger
}

// Config returns the configuration store.
func (e *Editor) Config() *config.Store {
	return e.store
}

// DefaultFormatID returns the configured default format id.
func (e *Editor) DefaultFormatID() string {
	return e.store.DefaultFormatID()
}

// Heading returns the heading command.
func (e *Editor) Heading() *heading.Command {
	return e.heading
}

// Execute runs the named command with value as its argument.
func (e *Editor) Execute(name, value string) error {
	if e.destroyed {
		return ErrDestroyed
	}
	return e.commands.Execute(name, command.Options{Value: value})
}

// State returns the state of the named command.
func (e *Editor) State(name string) (any, error) {
	cmd := e.commands.Get(name)
	if cmd == nil {
		return nil, fmt.Errorf("%w: %s", command.ErrUnknownCommand, name)
	}
	return cmd.State(), nil
}

// Destroy destroys all commands and stops watching the configuration. It is
// safe to call more than once.
func (e *Editor) Destroy() {
	e.destroyOnce.Do(func() {
		e.destroyed = true
		if e.cancel != nil {
			e.cancel()
		}
		if e.watcher != nil {
			if err := e.watcher.Close(); err != nil {
				e.logger.Warn("closing config watcher", zap.Error(err))
			}
		}
		e.configSub.Unsubscribe()
		e.commands.DestroyAll()
	})
}
