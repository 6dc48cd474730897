package heading

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/command"
	"github.com/dshills/blockfmt/internal/conversion"
	"github.com/dshills/blockfmt/internal/engine"
	"github.com/dshills/blockfmt/internal/engine/tree"
	"github.com/dshills/blockfmt/internal/schema"
)

// Host is the part of an editor the heading feature registers itself with.
type Host interface {
	Document() *engine.Document
	Schema() *schema.Schema
	Conversion() *conversion.Conversion
	Commands() *command.Registry
	Logger() *zap.Logger
	DefaultFormatID() string
}

// Register declares every non-default format in the host schema and
// conversion, then registers the heading command. The default format is
// expected to be provided by the host.
func Register(host Host, formats []Format) (*Command, error) {
	logger := host.Logger().Named("heading")

	registry, err := NewRegistry(formats,
		WithDefaultID(host.DefaultFormatID),
		WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	defaultID := host.DefaultFormatID()
	for _, f := range registry.Formats() {
		if f.ID == defaultID {
			continue
		}
		err := host.Schema().Register(schema.Definition{
			Name:      f.ID,
			AllowIn:   []string{tree.RootName},
			AllowText: true,
			IsBlock:   true,
		})
		if err != nil {
			return nil, fmt.Errorf("register format %s: %w", f.ID, err)
		}
		if err := host.Conversion().ElementToElement(f.ID, f.ViewTag); err != nil {
			return nil, fmt.Errorf("register format %s: %w", f.ID, err)
		}
	}

	cmd := NewCommand(host.Document(), registry, WithCommandLogger(logger))
	if err := host.Commands().Register(CommandName, cmd); err != nil {
		cmd.Destroy()
		return nil, err
	}

	logger.Debug("heading feature registered", zap.Int("formats", registry.Len()))
	return cmd, nil
}
